package services

import (
	"context"
	"strings"

	"github.com/qianlnk/hangman/models"
)

// letterFrequency 英文字母常见频率顺序
const letterFrequency = "etaoinshrdlcumwfgypbvkjxqz"

// AIPlayer 电脑玩家，根据词库和当前局面推荐下一个字母
type AIPlayer struct {
	words WordSource
}

// NewAIPlayer 创建电脑玩家
func NewAIPlayer(words WordSource) *AIPlayer {
	if words == nil {
		words = StaticWords{}
	}
	return &AIPlayer{words: words}
}

// Suggest 推荐一个尚未尝试过的字母，没有可推荐的字母时返回空串
//
// 先在词库里找与当前遮盖形式吻合的候选词，统计候选词中未尝试字母出现的次数；
// 找不到候选词时按字母频率顺序推荐。
func (ai *AIPlayer) Suggest(ctx context.Context, level models.Level, masked string, guessed, missed LetterSet) string {
	tried := func(r rune) bool {
		return guessed.Has(r) || missed.Has(r)
	}

	counts := make(map[rune]int)
	if words, err := ai.words.Words(ctx, level); err == nil {
		for _, w := range words {
			if !matchesPattern(w, masked, guessed, missed) {
				continue
			}
			seen := NewLetterSet()
			for _, r := range strings.ToLower(w) {
				if isLetter(r) && !tried(r) && !seen.Has(r) {
					seen.Add(r)
					counts[r]++
				}
			}
		}
	}

	best, bestCount := "", 0
	for _, r := range letterFrequency {
		if counts[r] > bestCount {
			best, bestCount = string(r), counts[r]
		}
	}
	if best != "" {
		return best
	}

	for _, r := range letterFrequency {
		if !tried(r) {
			return string(r)
		}
	}
	return ""
}

// matchesPattern 候选词在同样的已猜字母下是否得到相同的遮盖形式，且不含猜错过的字母
func matchesPattern(word, masked string, guessed, missed LetterSet) bool {
	if !strings.EqualFold(MaskText(word, guessed), masked) {
		return false
	}
	for _, r := range word {
		if missed.Has(r) {
			return false
		}
	}
	return true
}
