package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qianlnk/hangman/models"
)

func TestTimeoutPoller_Tick(t *testing.T) {
	sm, clock := newTestManager("banana")
	s := sm.Create(context.Background(), models.Basic)

	broadcaster := &MockBroadcaster{}
	broadcaster.On("BroadcastToGame", s.ID, mock.Anything).Once()

	p := NewTimeoutPoller(sm, broadcaster, DefaultPollInterval)

	assert.Equal(t, 0, p.Tick())
	broadcaster.AssertNotCalled(t, "BroadcastToGame", mock.Anything, mock.Anything)

	clock.Advance(16 * time.Second)
	assert.Equal(t, 1, p.Tick())
	assert.Equal(t, 0, p.Tick())

	broadcaster.AssertExpectations(t)
	assert.Equal(t, 5, s.Status().Lives)
}

func TestTimeoutPoller_NilBroadcaster(t *testing.T) {
	sm, clock := newTestManager("banana")
	s := sm.Create(context.Background(), models.Basic)

	p := NewTimeoutPoller(sm, nil, 0)
	clock.Advance(time.Minute)

	assert.Equal(t, 1, p.Tick())
	assert.Equal(t, models.Timeout, s.Status().LastOutcome)
}

func TestTimeoutPoller_SweepsIdleSessions(t *testing.T) {
	sm, clock := newTestManager("banana")
	s := sm.Create(context.Background(), models.Basic)

	broadcaster := &MockBroadcaster{}
	broadcaster.On("BroadcastToGame", s.ID, mock.Anything).Once()

	// 间隔为一分钟时每次轮询都会清理
	p := NewTimeoutPoller(sm, broadcaster, time.Minute)

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, p.Tick())
	assert.Empty(t, sm.List())
	broadcaster.AssertExpectations(t)
}

func TestTimeoutPoller_RunStopsOnCancel(t *testing.T) {
	sm, _ := newTestManager("banana")
	p := NewTimeoutPoller(sm, nil, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "poller did not stop after cancel")
	}
}
