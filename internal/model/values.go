package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Text 宽松字符串：后端可能省略字段或给出非字符串类型，统一转换为字符串
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text(textFromRaw(b))
	return nil
}

// textFromRaw 将任意 JSON 值转换为展示用字符串
func textFromRaw(b []byte) string {
	if isNull(b) {
		return ""
	}
	b = bytes.TrimSpace(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return string(b)
	}
	return buf.String()
}

// Count 宽松计数：缺失、false、无法解析、负数或超出 int32 范围时均为 0
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	*c = 0
	if isNull(b) {
		return nil
	}
	b = bytes.TrimSpace(b)

	raw := string(b)
	switch {
	case raw == "true":
		*c = 1
		return nil
	case raw == "false":
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f <= math.MaxInt32 {
		*c = Count(int(f))
	}
	return nil
}

// Pair 有序键值对
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Mapping 保留后端键顺序的映射。字段缺失或为 null 时为 nil
type Mapping []Pair

func (m *Mapping) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*m = nil
		return nil
	}
	b = bytes.TrimSpace(b)
	if b[0] != '{' {
		// 非对象形态无法按键值展示，按缺失处理
		*m = nil
		return nil
	}

	om := orderedmap.New[string, json.RawMessage]()
	if err := om.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("unmarshal mapping failed: %w", err)
	}

	pairs := make(Mapping, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		pairs = append(pairs, Pair{Key: pair.Key, Value: textFromRaw(pair.Value)})
	}
	*m = pairs
	return nil
}

// Summary claims 形态的摘要，旧版本为字符串，新版本为键值映射
type Summary struct {
	Text    string
	Mapping Mapping
	Present bool
}

// IsMapping 是否为键值形态
func (s Summary) IsMapping() bool {
	return s.Mapping != nil
}

func (s *Summary) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*s = Summary{}
		return nil
	}
	b = bytes.TrimSpace(b)
	if b[0] == '{' {
		var m Mapping
		if err := m.UnmarshalJSON(b); err != nil {
			return err
		}
		*s = Summary{Mapping: m, Present: true}
		return nil
	}
	// 空字符串摘要视为缺失
	text := textFromRaw(b)
	*s = Summary{Text: text, Present: text != ""}
	return nil
}
