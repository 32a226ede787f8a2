package services

import (
	"unicode/utf8"

	"github.com/qianlnk/hangman/models"
)

// DefaultLives 默认生命数
const DefaultLives = 6

// Game 不计时的基础猜词游戏
//
// 调用方需保证 lives 为正数，这里不做校验。
type Game struct {
	secret  string
	letters LetterSet // 谜底中出现的全部字母（小写）
	lives   int
	guessed LetterSet
}

// NewGame 创建基础游戏
func NewGame(secret string, lives int) *Game {
	letters := NewLetterSet()
	for _, r := range secret {
		if isLetter(r) {
			letters.Add(r)
		}
	}
	return &Game{
		secret:  secret,
		letters: letters,
		lives:   lives,
		guessed: NewLetterSet(),
	}
}

// Secret 谜底原文
func (g *Game) Secret() string {
	return g.secret
}

// Lives 剩余生命
func (g *Game) Lives() int {
	return g.lives
}

// Guessed 已猜中的字母，按字母排序
func (g *Game) Guessed() []string {
	return g.guessed.Sorted()
}

// Masked 当前的遮盖显示
func (g *Game) Masked() string {
	return MaskText(g.secret, g.guessed)
}

// Won 谜底中的字母是否全部猜中
func (g *Game) Won() bool {
	for r := range g.letters {
		if !g.guessed.Has(r) {
			return false
		}
	}
	return true
}

// Lost 生命耗尽且尚未获胜
func (g *Game) Lost() bool {
	return g.lives <= 0 && !g.Won()
}

// Guess 处理一次猜测，返回 hit、miss、repeat 或 invalid
func (g *Game) Guess(raw string) models.Outcome {
	if utf8.RuneCountInString(raw) != 1 {
		return models.Invalid
	}
	r, _ := utf8.DecodeRuneInString(raw)
	if !isLetter(r) {
		return models.Invalid
	}

	if g.guessed.Has(r) {
		return models.Repeat
	}

	if g.letters.Has(r) {
		g.guessed.Add(r)
		return models.Hit
	}

	g.lives--
	return models.Miss
}
