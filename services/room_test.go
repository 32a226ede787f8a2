package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qianlnk/hangman/models"
)

func newTestManager(words ...string) (*SessionManager, *ManualClock) {
	clock := NewManualClock(time.Unix(1_000, 0))
	settings := GameSettings{Lives: 6, TurnDuration: 15 * time.Second, SessionTTL: time.Minute}
	return NewSessionManager(NewWordPicker(fixedWords(words)), settings, clock), clock
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	sm, _ := newTestManager("banana")

	s := sm.Create(context.Background(), models.Intermediate)
	require.NotEmpty(t, s.ID)

	got, err := sm.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	status := got.Status()
	assert.Equal(t, models.Intermediate, status.Level)
	assert.Equal(t, "_ _ _ _ _ _", status.Masked)
	assert.Equal(t, 6, status.Lives)
	assert.Equal(t, models.PhaseInProgress, status.Phase)
}

func TestSessionManager_GetUnknown(t *testing.T) {
	sm, _ := newTestManager("banana")

	_, err := sm.Get("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestSessionManager_ListAndRemove(t *testing.T) {
	sm, clock := newTestManager("banana")

	first := sm.Create(context.Background(), models.Basic)
	clock.Advance(time.Second)
	second := sm.Create(context.Background(), models.Basic)

	list := sm.List()
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	require.NoError(t, sm.Remove(first.ID))
	assert.ErrorIs(t, sm.Remove(first.ID), ErrGameNotFound)
	assert.Len(t, sm.List(), 1)
}

func TestSessionManager_Sweep(t *testing.T) {
	sm, clock := newTestManager("banana")

	idle := sm.Create(context.Background(), models.Basic)
	clock.Advance(50 * time.Second)
	active := sm.Create(context.Background(), models.Basic)

	clock.Advance(20 * time.Second)
	assert.Equal(t, 1, sm.Sweep())

	_, err := sm.Get(idle.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, err = sm.Get(active.ID)
	assert.NoError(t, err)
}

func TestSessionManager_Suggest(t *testing.T) {
	sm, _ := newTestManager("banana")
	s := sm.Create(context.Background(), models.Basic)

	letter, err := sm.Suggest(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", letter)

	_, _, err = s.Guess(letter)
	require.NoError(t, err)

	letter, err = sm.Suggest(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "n", letter)

	s.Guess("n")
	s.Guess("b")
	_, err = sm.Suggest(context.Background(), s.ID)
	assert.ErrorIs(t, err, ErrGameOver)

	_, err = sm.Suggest(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}
