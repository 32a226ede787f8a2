package services

import (
	"time"

	"github.com/qianlnk/hangman/models"
)

// DefaultTurnDuration 默认每回合时长
const DefaultTurnDuration = 15 * time.Second

// TimedGame 带回合倒计时的游戏，超时扣一条命
//
// 截止时间只在构造和超时触发时刷新，正常猜测不会重置计时。
// TimedGame 不是并发安全的，多协程访问需要由调用方加锁。
type TimedGame struct {
	*Game
	turn     time.Duration
	clock    Clock
	deadline time.Time
}

// NewTimedGame 创建计时游戏，clock 为 nil 时使用系统时钟
func NewTimedGame(secret string, lives int, turn time.Duration, clock Clock) *TimedGame {
	if clock == nil {
		clock = SystemClock
	}
	return &TimedGame{
		Game:     NewGame(secret, lives),
		turn:     turn,
		clock:    clock,
		deadline: clock.Now().Add(turn),
	}
}

// Guess 先结算超时，再按普通猜测处理
func (g *TimedGame) Guess(raw string) models.Outcome {
	if g.applyTimeout(g.clock.Now()) {
		return models.Timeout
	}
	return g.Game.Guess(raw)
}

// applyTimeout 截止时间已过则扣命并顺延截止时间
func (g *TimedGame) applyTimeout(now time.Time) bool {
	if !now.After(g.deadline) {
		return false
	}
	g.lives--
	g.deadline = now.Add(g.turn)
	return true
}

// Now 当前时间
func (g *TimedGame) Now() time.Time {
	return g.clock.Now()
}

// Deadline 本回合截止时间
func (g *TimedGame) Deadline() time.Time {
	return g.deadline
}

// TurnDuration 每回合时长
func (g *TimedGame) TurnDuration() time.Duration {
	return g.turn
}

// Remaining 本回合剩余时间，最小为0
func (g *TimedGame) Remaining() time.Duration {
	left := g.deadline.Sub(g.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}
