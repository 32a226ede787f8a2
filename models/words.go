package models

// BasicWords 基础词库
var BasicWords = []string{
	"python",
	"testing",
	"variable",
	"function",
	"quality",
	"packet",
}

// Phrases 进阶词库（短语）
var Phrases = []string{
	"unit testing",
	"software quality",
	"clean code",
	"open source",
}

// DefaultWords 返回某个难度的内置词库
func DefaultWords(level Level) []string {
	if level == Intermediate {
		return Phrases
	}
	return BasicWords
}

// Word 词库条目
type Word struct {
	Level Level  `json:"level" binding:"required,oneof=basic intermediate"`
	Text  string `json:"text" binding:"required"`
}
