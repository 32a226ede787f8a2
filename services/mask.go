package services

import (
	"sort"
	"strings"
	"unicode"
)

// LetterSet 已猜中的字母集合，只存小写
type LetterSet map[rune]struct{}

// NewLetterSet 创建字母集合，大小写统一折叠为小写
func NewLetterSet(letters ...rune) LetterSet {
	set := make(LetterSet, len(letters))
	for _, r := range letters {
		set.Add(r)
	}
	return set
}

// Add 加入一个字母
func (s LetterSet) Add(r rune) {
	s[unicode.ToLower(r)] = struct{}{}
}

// Has 是否包含某个字母（不区分大小写）
func (s LetterSet) Has(r rune) bool {
	_, ok := s[unicode.ToLower(r)]
	return ok
}

// Sorted 按字母顺序返回集合内容
func (s LetterSet) Sorted() []string {
	letters := make([]string, 0, len(s))
	for r := range s {
		letters = append(letters, string(r))
	}
	sort.Strings(letters)
	return letters
}

// isLetter 只把 A-Z 视为字母
func isLetter(r rune) bool {
	r = unicode.ToLower(r)
	return r >= 'a' && r <= 'z'
}

// MaskText 生成谜底的显示形式
//
// 未猜中的字母显示为 "_"，猜中的字母保留原大小写，标点和数字原样显示。
// 空格自身不产生内容，但按单个空格拼接后会在单词之间留下两个空格，例如
// "Hello World!" -> "_ _ _ _ _  _ _ _ _ _ !"。
func MaskText(secret string, guessed LetterSet) string {
	tokens := make([]string, 0, len(secret))
	for _, r := range secret {
		switch {
		case r == ' ':
			tokens = append(tokens, "")
		case !isLetter(r):
			tokens = append(tokens, string(r))
		case guessed.Has(r):
			tokens = append(tokens, string(r))
		default:
			tokens = append(tokens, "_")
		}
	}
	return strings.Join(tokens, " ")
}
