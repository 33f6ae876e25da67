package model

import (
	"fmt"
	"strings"
)

// Mode 运行模式，决定读取哪个输入以及如何解读响应
type Mode string

const (
	ModeNews Mode = "news"
	ModeQA   Mode = "qa"
)

// ParseMode 解析外部传入的模式字符串
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeNews:
		return ModeNews, nil
	case ModeQA:
		return ModeQA, nil
	default:
		return "", fmt.Errorf("unknown mode: %q", s)
	}
}

// Valid 是否为已知模式
func (m Mode) Valid() bool {
	return m == ModeNews || m == ModeQA
}

// Language 语言标签，例如 "en"、"zh-TW"，或哨兵值 "auto"
type Language string

const (
	LanguageAuto    Language = "auto"
	LanguageEnglish Language = "en"
	LanguageZhTW    Language = "zh-TW"
)

// ParseLanguage 解析外部传入的语言，空值与任意大小写的 auto 均视为 auto
func ParseLanguage(s string) Language {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(LanguageAuto)) {
		return LanguageAuto
	}
	return Language(s)
}

// Request 发送给验证后端的请求体
type Request struct {
	Mode     Mode     `json:"mode"`
	Text     string   `json:"text"`
	Language Language `json:"language"`
	// PublishDate 为 nil 时整个字段不出现在请求体中（不是 null）
	PublishDate *string `json:"publishDate,omitempty"`
}
