package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hangman/models"
)

// GameSettings 新开局使用的参数
type GameSettings struct {
	Lives        int
	TurnDuration time.Duration
	SessionTTL   time.Duration // 玩家无操作超过该时长后清理
}

// DefaultGameSettings 默认参数
func DefaultGameSettings() GameSettings {
	return GameSettings{
		Lives:        DefaultLives,
		TurnDuration: DefaultTurnDuration,
		SessionTTL:   30 * time.Minute,
	}
}

// SessionManager 游戏会话管理器
type SessionManager struct {
	sessions map[string]*Session
	picker   *WordPicker
	advisor  *AIPlayer
	settings GameSettings
	clock    Clock
	mutex    sync.RWMutex
}

// NewSessionManager 创建会话管理器
func NewSessionManager(picker *WordPicker, settings GameSettings, clock Clock) *SessionManager {
	if picker == nil {
		picker = NewWordPicker(nil)
	}
	if clock == nil {
		clock = SystemClock
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		picker:   picker,
		advisor:  NewAIPlayer(picker.source),
		settings: settings,
		clock:    clock,
	}
}

// Create 按难度开一局新游戏
func (sm *SessionManager) Create(ctx context.Context, level models.Level) *Session {
	secret := sm.picker.Choose(ctx, level)
	game := NewTimedGame(secret, sm.settings.Lives, sm.settings.TurnDuration, sm.clock)
	session := NewSession(uuid.NewString(), level, game)

	sm.mutex.Lock()
	sm.sessions[session.ID] = session
	sm.mutex.Unlock()

	log.Info().
		Str("game_id", session.ID).
		Str("level", string(level)).
		Int("lives", sm.settings.Lives).
		Dur("turn", sm.settings.TurnDuration).
		Msg("创建游戏")

	return session
}

// Get 获取会话
func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	session, exists := sm.sessions[id]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

// List 全部会话，按创建时间排序
func (sm *SessionManager) List() []*Session {
	sm.mutex.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mutex.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions
}

// Remove 放弃并移除一局游戏
func (sm *SessionManager) Remove(id string) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if _, exists := sm.sessions[id]; !exists {
		return ErrGameNotFound
	}
	delete(sm.sessions, id)
	log.Info().Str("game_id", id).Msg("移除游戏")
	return nil
}

// Sweep 清理长时间无操作的会话，返回清理数量
func (sm *SessionManager) Sweep() int {
	if sm.settings.SessionTTL <= 0 {
		return 0
	}
	now := sm.clock.Now()

	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	removed := 0
	for id, s := range sm.sessions {
		if now.Sub(s.LastActive()) > sm.settings.SessionTTL {
			delete(sm.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("清理过期游戏")
	}
	return removed
}

// Suggest 为指定会话给出下一个字母的建议
func (sm *SessionManager) Suggest(ctx context.Context, id string) (string, error) {
	session, err := sm.Get(id)
	if err != nil {
		return "", err
	}
	if session.Finished() {
		return "", ErrGameOver
	}
	masked, guessed, missed := session.hintInput()
	return sm.advisor.Suggest(ctx, session.Level, masked, guessed, missed), nil
}
