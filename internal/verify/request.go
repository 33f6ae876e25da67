package verify

import (
	"strings"

	"github.com/iWorld-y/news_verifier/internal/model"
)

// ResolveLanguage 解析最终语言。
// 非 auto 原样返回；auto 时优先使用页面提供的 hint，
// 否则只要文本含有 U+4E00–U+9FA5 范围内的字符即为 zh-TW，其余为 en。
func ResolveLanguage(selected model.Language, sourceText string, hint model.Language) model.Language {
	if selected != model.LanguageAuto {
		return selected
	}
	if hint != "" {
		return hint
	}
	for _, r := range sourceText {
		if r >= 0x4E00 && r <= 0x9FA5 {
			return model.LanguageZhTW
		}
	}
	return model.LanguageEnglish
}

// BuildRequest 构造验证请求。
// 文本去除首尾空白后为空时返回 EmptyText；publishDate 为空时请求体不含该字段。
func BuildRequest(mode model.Mode, sourceText string, selected, hint model.Language, publishDate string) (*model.Request, error) {
	if !mode.Valid() {
		return nil, NewInvalidModeError(string(mode))
	}

	text := strings.TrimSpace(sourceText)
	if text == "" {
		return nil, NewEmptyTextError()
	}

	req := &model.Request{
		Mode:     mode,
		Text:     text,
		Language: ResolveLanguage(selected, text, hint),
	}
	if publishDate = strings.TrimSpace(publishDate); publishDate != "" {
		req.PublishDate = &publishDate
	}
	return req, nil
}
