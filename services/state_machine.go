package services

import (
	"github.com/qianlnk/hangman/models"
)

// StateMachine 游戏状态判定
//
// 胜负不单独存储，每次都根据谜底、已猜字母和生命数重新计算。
type StateMachine struct {
	game *TimedGame
}

// NewStateMachine 创建状态判定实例
func NewStateMachine(game *TimedGame) *StateMachine {
	return &StateMachine{game: game}
}

// Phase 当前阶段
func (sm *StateMachine) Phase() models.Phase {
	switch {
	case sm.game.Won():
		return models.PhaseWon
	case sm.game.Lost():
		return models.PhaseLost
	default:
		return models.PhaseInProgress
	}
}

// Finished 是否已进入终局
func (sm *StateMachine) Finished() bool {
	return sm.Phase() != models.PhaseInProgress
}

// TimedOut 本回合是否已经没有剩余时间
func (sm *StateMachine) TimedOut() bool {
	return sm.game.Remaining() <= 0
}

// Snapshot 生成状态快照，终局时公布答案
func (sm *StateMachine) Snapshot() models.GameStatus {
	phase := sm.Phase()
	status := models.GameStatus{
		Phase:    phase,
		Masked:   sm.game.Masked(),
		Lives:    sm.game.Lives(),
		Won:      phase == models.PhaseWon,
		Lost:     phase == models.PhaseLost,
		TimeLeft: int(sm.game.Remaining().Seconds()),
		Deadline: sm.game.Deadline().UnixMilli(),
		Guessed:  sm.game.Guessed(),
	}
	if phase != models.PhaseInProgress {
		status.Answer = sm.game.Secret()
	}
	return status
}
