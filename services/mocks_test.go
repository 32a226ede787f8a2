package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/qianlnk/hangman/models"
)

// --- WordSource ---

type MockWordSource struct {
	mock.Mock
}

func (m *MockWordSource) Words(ctx context.Context, level models.Level) ([]string, error) {
	args := m.Called(ctx, level)
	words, _ := args.Get(0).([]string)
	return words, args.Error(1)
}

// --- Broadcaster ---

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) BroadcastToGame(gameID string, message interface{}) {
	m.Called(gameID, message)
}

// fixedWords 固定词库
type fixedWords []string

func (f fixedWords) Words(context.Context, models.Level) ([]string, error) {
	return f, nil
}
