package services

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hangman/models"
)

// WordSource 词库来源
type WordSource interface {
	Words(ctx context.Context, level models.Level) ([]string, error)
}

// StaticWords 内置词库
type StaticWords struct{}

// Words 返回内置词库的副本
func (StaticWords) Words(_ context.Context, level models.Level) ([]string, error) {
	return append([]string(nil), models.DefaultWords(level)...), nil
}

// WordPicker 按难度随机抽取谜底
type WordPicker struct {
	source WordSource
	intn   func(n int) int
}

// NewWordPicker 创建抽词器，source 为 nil 时只使用内置词库
func NewWordPicker(source WordSource) *WordPicker {
	if source == nil {
		source = StaticWords{}
	}
	return &WordPicker{source: source, intn: rand.Intn}
}

// Choose 抽取一个谜底，词库不可用时退回内置词库
func (wp *WordPicker) Choose(ctx context.Context, level models.Level) string {
	words, err := wp.source.Words(ctx, level)
	if err != nil {
		log.Warn().Err(err).Str("level", string(level)).Msg("读取词库失败，使用内置词库")
	}
	if len(words) == 0 {
		words = models.DefaultWords(level)
	}
	return words[wp.intn(len(words))]
}
