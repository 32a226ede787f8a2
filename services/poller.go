package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultPollInterval 默认轮询间隔
const DefaultPollInterval = 250 * time.Millisecond

// Broadcaster 向某局游戏的所有连接推送消息
type Broadcaster interface {
	BroadcastToGame(gameID string, message interface{})
}

// TimeoutPoller 定时检查所有游戏的回合是否超时
//
// 游戏核心不会自行计时，超时只在有人调用 Guess 时结算，
// 轮询器在玩家没有输入时代为触发。
type TimeoutPoller struct {
	sessions    *SessionManager
	broadcaster Broadcaster
	interval    time.Duration
	sweepEvery  int // 每隔多少次轮询清理一次过期会话
	ticks       int
}

// NewTimeoutPoller 创建轮询器，broadcaster 可以为 nil
func NewTimeoutPoller(sessions *SessionManager, broadcaster Broadcaster, interval time.Duration) *TimeoutPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &TimeoutPoller{
		sessions:    sessions,
		broadcaster: broadcaster,
		interval:    interval,
		sweepEvery:  max(1, int(time.Minute/interval)),
	}
}

// Run 持续轮询直到 ctx 被取消
func (p *TimeoutPoller) Run(ctx context.Context) {
	log.Info().Dur("interval", p.interval).Msg("超时轮询器启动")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("超时轮询器停止")
			return
		case <-ticker.C:
			p.Tick()
		}
	}
}

// Tick 执行一次检查，返回本次触发超时的游戏数量
func (p *TimeoutPoller) Tick() int {
	fired := 0
	for _, session := range p.sessions.List() {
		timedOut, status := session.CheckTimeout()
		if !timedOut {
			continue
		}
		fired++
		if p.broadcaster != nil {
			p.broadcaster.BroadcastToGame(session.ID, stateMessage(status))
		}
	}

	p.ticks++
	if p.sweepEvery > 0 && p.ticks%p.sweepEvery == 0 {
		p.sessions.Sweep()
	}
	return fired
}
