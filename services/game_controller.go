package services

import (
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hangman/models"
)

var (
	ErrGameNotFound = errors.New("游戏不存在")
	ErrGameOver     = errors.New("游戏已结束")
)

// Session 一局游戏的控制器，所有对游戏的访问都经过它的锁
type Session struct {
	ID        string
	Level     models.Level
	CreatedAt time.Time

	game         *TimedGame
	stateMachine *StateMachine
	missed       LetterSet // 猜错过的字母，仅用于提示
	lastOutcome  models.Outcome
	lastActive   time.Time
	mutex        sync.Mutex
}

// NewSession 创建一局游戏
func NewSession(id string, level models.Level, game *TimedGame) *Session {
	now := game.Now()
	return &Session{
		ID:           id,
		Level:        level,
		CreatedAt:    now,
		game:         game,
		stateMachine: NewStateMachine(game),
		missed:       NewLetterSet(),
		lastActive:   now,
	}
}

// Guess 处理玩家输入，游戏结束后返回 ErrGameOver
func (s *Session) Guess(raw string) (models.Outcome, models.GameStatus, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.stateMachine.Finished() {
		return "", s.status(), ErrGameOver
	}

	raw = strings.TrimSpace(raw)
	outcome := s.game.Guess(raw)
	if outcome == models.Miss {
		r, _ := utf8.DecodeRuneInString(raw)
		s.missed.Add(r)
	}
	s.lastOutcome = outcome
	s.lastActive = s.game.Now()

	log.Debug().
		Str("game_id", s.ID).
		Str("outcome", string(outcome)).
		Int("lives", s.game.Lives()).
		Msg("处理猜测")

	if s.stateMachine.Finished() {
		log.Info().
			Str("game_id", s.ID).
			Str("phase", string(s.stateMachine.Phase())).
			Msg("游戏结束")
	}

	return outcome, s.status(), nil
}

// CheckTimeout 回合时间耗尽时用空输入触发超时结算
func (s *Session) CheckTimeout() (bool, models.GameStatus) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.stateMachine.Finished() || !s.stateMachine.TimedOut() {
		return false, s.status()
	}

	// 恰好到达截止时间时 Guess 仍按普通输入处理，空输入只会得到 invalid，不记录
	if s.game.Guess("") != models.Timeout {
		return false, s.status()
	}
	s.lastOutcome = models.Timeout

	log.Info().
		Str("game_id", s.ID).
		Int("lives", s.game.Lives()).
		Msg("回合超时，扣除一条命")

	return true, s.status()
}

// Status 当前状态快照
func (s *Session) Status() models.GameStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.status()
}

// Finished 游戏是否已结束
func (s *Session) Finished() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stateMachine.Finished()
}

// LastActive 最近一次玩家操作的时间
func (s *Session) LastActive() time.Time {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastActive
}

// hintInput 生成提示所需的局面信息
func (s *Session) hintInput() (masked string, guessed, missed LetterSet) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	guessed = NewLetterSet()
	for r := range s.game.guessed {
		guessed.Add(r)
	}
	missed = NewLetterSet()
	for r := range s.missed {
		missed.Add(r)
	}
	return s.game.Masked(), guessed, missed
}

func (s *Session) status() models.GameStatus {
	status := s.stateMachine.Snapshot()
	status.ID = s.ID
	status.Level = s.Level
	status.LastOutcome = s.lastOutcome
	if s.lastOutcome != "" {
		status.Message = s.lastOutcome.Message()
	}
	return status
}
