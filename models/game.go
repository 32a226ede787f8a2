package models

// Level 难度等级，决定从哪个词库中抽取谜底
type Level string

const (
	Basic        Level = "basic"        // 基础：单词
	Intermediate Level = "intermediate" // 进阶：短语
)

// Levels 全部难度等级
var Levels = []Level{Basic, Intermediate}

// ParseLevel 解析难度等级，未知取值一律按基础处理
func ParseLevel(s string) Level {
	if Level(s) == Intermediate {
		return Intermediate
	}
	return Basic
}

// Outcome 一次猜测的结果
type Outcome string

const (
	Hit     Outcome = "hit"     // 猜中
	Miss    Outcome = "miss"    // 猜错，扣一条命
	Repeat  Outcome = "repeat"  // 已经猜中过的字母
	Invalid Outcome = "invalid" // 输入不是单个 A-Z 字母
	Timeout Outcome = "timeout" // 回合超时，扣一条命，输入被丢弃
)

var outcomeMessages = map[Outcome]string{
	Timeout: "时间到！失去一条命。",
	Hit:     "猜对了。",
	Miss:    "猜错了。",
	Repeat:  "这个字母已经猜过了。",
	Invalid: "请输入一个 A-Z 字母。",
}

// Message 给玩家的提示文字
func (o Outcome) Message() string {
	if msg, ok := outcomeMessages[o]; ok {
		return msg
	}
	return string(o)
}

// Phase 游戏阶段，由生命数和已猜字母推导得出
type Phase string

const (
	PhaseInProgress Phase = "in_progress" // 进行中
	PhaseWon        Phase = "won"         // 获胜
	PhaseLost       Phase = "lost"        // 失败
)

// GameStatus 游戏状态快照
type GameStatus struct {
	ID          string   `json:"id"`
	Level       Level    `json:"level"`
	Phase       Phase    `json:"phase"`
	Masked      string   `json:"masked"`
	Lives       int      `json:"lives"`
	Won         bool     `json:"won"`
	Lost        bool     `json:"lost"`
	TimeLeft    int      `json:"time_left"` // 本回合剩余秒数
	Deadline    int64    `json:"deadline"`  // 本回合截止时间（Unix毫秒）
	Guessed     []string `json:"guessed"`
	LastOutcome Outcome  `json:"last_outcome,omitempty"`
	Message     string   `json:"message,omitempty"`
	Answer      string   `json:"answer,omitempty"` // 仅在游戏结束后公布
}

// Finished 游戏是否已结束
func (s GameStatus) Finished() bool {
	return s.Won || s.Lost
}

// GuessResult 猜测接口的返回
type GuessResult struct {
	Outcome Outcome    `json:"outcome"`
	Message string     `json:"message"`
	State   GameStatus `json:"state"`
}
