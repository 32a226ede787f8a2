package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/qianlnk/hangman/models"
)

func TestWordPicker_Choose(t *testing.T) {
	source := &MockWordSource{}
	source.On("Words", mock.Anything, models.Intermediate).Return([]string{"unit testing", "clean code"}, nil)

	wp := NewWordPicker(source)
	wp.intn = func(n int) int { return n - 1 }

	assert.Equal(t, "clean code", wp.Choose(context.Background(), models.Intermediate))
	source.AssertExpectations(t)
}

func TestWordPicker_FallsBackOnError(t *testing.T) {
	source := &MockWordSource{}
	source.On("Words", mock.Anything, models.Basic).Return(nil, errors.New("db down"))

	wp := NewWordPicker(source)
	wp.intn = func(int) int { return 0 }

	assert.Equal(t, models.BasicWords[0], wp.Choose(context.Background(), models.Basic))
}

func TestWordPicker_FallsBackOnEmpty(t *testing.T) {
	wp := NewWordPicker(fixedWords{})
	wp.intn = func(int) int { return 0 }

	assert.Equal(t, models.Phrases[0], wp.Choose(context.Background(), models.Intermediate))
}

func TestWordPicker_DefaultSource(t *testing.T) {
	wp := NewWordPicker(nil)

	for i := 0; i < 20; i++ {
		assert.Contains(t, models.BasicWords, wp.Choose(context.Background(), models.Basic))
	}
}

func TestStaticWords_ReturnsCopy(t *testing.T) {
	words, err := StaticWords{}.Words(context.Background(), models.Basic)
	assert.NoError(t, err)

	words[0] = "changed"
	assert.NotEqual(t, "changed", models.BasicWords[0])
}
