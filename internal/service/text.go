package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var plainTextPolicy = bluemonday.StrictPolicy()

// cleanText 去除用户输入中的 HTML 标记，保留可读文本，供入库前使用。
func cleanText(raw string) string {
	stripped := plainTextPolicy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
