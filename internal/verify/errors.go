package verify

import (
	"errors"
	"fmt"
)

// ErrorKind 验证错误分类，用于日志与展示
type ErrorKind string

const (
	KindEmptyText    ErrorKind = "empty_text"
	KindInvalidMode  ErrorKind = "invalid_mode"
	KindUnreachable  ErrorKind = "unreachable"
	KindServerStatus ErrorKind = "server_status"
	KindReported     ErrorKind = "reported"
)

// Error 验证请求失败时的最终结果
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Endpoint   string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage 返回展示给用户的错误文案
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindEmptyText:
		return "Please enter some text."
	case KindInvalidMode:
		return fmt.Sprintf("Unknown mode: %s. Choose news or qa.", e.Message)
	case KindUnreachable:
		return fmt.Sprintf("Error connecting to the verification server at %s. Make sure it is running and reachable.", e.Endpoint)
	case KindServerStatus:
		return fmt.Sprintf("The verification server at %s returned status %d. Check the server logs and try again.", e.Endpoint, e.StatusCode)
	case KindReported:
		return e.Message
	default:
		return e.Error()
	}
}

// IsInput 是否为用户可自行修正的输入错误
func (e *Error) IsInput() bool {
	return e.Kind == KindEmptyText || e.Kind == KindInvalidMode
}

func NewEmptyTextError() *Error {
	return &Error{
		Kind:    KindEmptyText,
		Message: "text is empty",
	}
}

func NewInvalidModeError(mode string) *Error {
	return &Error{
		Kind:    KindInvalidMode,
		Message: mode,
	}
}

func NewUnreachableError(endpoint, msg string, err error) *Error {
	return &Error{
		Kind:     KindUnreachable,
		Message:  msg,
		Endpoint: endpoint,
		Err:      err,
	}
}

func NewServerStatusError(endpoint string, code int) *Error {
	return &Error{
		Kind:       KindServerStatus,
		Message:    fmt.Sprintf("unexpected status %d", code),
		StatusCode: code,
		Endpoint:   endpoint,
	}
}

func NewReportedError(endpoint, msg string) *Error {
	return &Error{
		Kind:     KindReported,
		Message:  msg,
		Endpoint: endpoint,
	}
}

// KindOf 返回验证错误的分类，非验证错误返回空串
func KindOf(err error) ErrorKind {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}
