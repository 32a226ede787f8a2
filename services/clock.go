package services

import (
	"sync"
	"time"
)

// Clock 时间源，便于在测试中替换
type Clock interface {
	Now() time.Time
}

// SystemClock 默认时间源，time.Now 自带单调时钟读数
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// ManualClock 手动推进的时间源
type ManualClock struct {
	now   time.Time
	mutex sync.Mutex
}

// NewManualClock 创建从 start 开始的手动时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 当前时间
func (c *ManualClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

// Advance 时间前进 d
func (c *ManualClock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(d)
}

// Set 直接设置当前时间，不允许倒退
func (c *ManualClock) Set(t time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if t.After(c.now) {
		c.now = t
	}
}
