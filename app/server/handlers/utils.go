package handlers

import (
	"strings"
	"unicode"
)

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPageMax    = "X-Page-Max"
)

// searchTerms 按空白与逗号拆分搜索词
func searchTerms(search string) []string {
	return strings.FieldsFunc(strings.ReplaceAll(search, "\x00", ""), func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern 生成不区分大小写的包含匹配模式，配合 ESCAPE '\' 使用
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
