package services

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const writeTimeout = 5 * time.Second

// Message WebSocket消息结构
type Message struct {
	Type    string      `json:"type"`
	GameID  string      `json:"game_id,omitempty"`
	Content interface{} `json:"content,omitempty"`
}

// client 单个WebSocket连接，写操作需要串行
type client struct {
	conn    *websocket.Conn
	limiter *rate.Limiter
	writeMu sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err := c.conn.WriteJSON(v)
	c.conn.SetWriteDeadline(time.Time{})
	return err
}

// WebSocketManager WebSocket连接管理器
type WebSocketManager struct {
	games    map[string]map[*websocket.Conn]*client // gameID -> 连接
	sessions *SessionManager
	limit    rate.Limit
	burst    int
	mutex    sync.RWMutex
}

// NewWebSocketManager 创建WebSocket管理器，ratePerSecond 和 burst 控制每个连接的消息频率
func NewWebSocketManager(sessions *SessionManager, ratePerSecond float64, burst int) *WebSocketManager {
	return &WebSocketManager{
		games:    make(map[string]map[*websocket.Conn]*client),
		sessions: sessions,
		limit:    rate.Limit(ratePerSecond),
		burst:    burst,
	}
}

// RegisterConnection 注册连接并推送当前状态，随后在新协程中读取消息
func (wm *WebSocketManager) RegisterConnection(gameID string, conn *websocket.Conn) error {
	session, err := wm.sessions.Get(gameID)
	if err != nil {
		return err
	}

	c := &client{
		conn:    conn,
		limiter: rate.NewLimiter(wm.limit, wm.burst),
	}

	wm.mutex.Lock()
	if _, exists := wm.games[gameID]; !exists {
		wm.games[gameID] = make(map[*websocket.Conn]*client)
	}
	wm.games[gameID][conn] = c
	wm.mutex.Unlock()

	log.Info().Str("game_id", gameID).Str("remote", conn.RemoteAddr().String()).Msg("WebSocket连接已注册")

	if err := c.writeJSON(stateMessage(session.Status())); err != nil {
		wm.RemoveConnection(gameID, conn)
		return err
	}

	go wm.handleMessages(gameID, c)
	return nil
}

// ConnectionCount 某局游戏当前的连接数
func (wm *WebSocketManager) ConnectionCount(gameID string) int {
	wm.mutex.RLock()
	defer wm.mutex.RUnlock()
	return len(wm.games[gameID])
}

// BroadcastToGame 向某局游戏的所有连接广播消息
func (wm *WebSocketManager) BroadcastToGame(gameID string, message interface{}) {
	wm.mutex.RLock()
	clients := make([]*client, 0, len(wm.games[gameID]))
	for _, c := range wm.games[gameID] {
		clients = append(clients, c)
	}
	wm.mutex.RUnlock()

	if len(clients) == 0 {
		return
	}

	for _, c := range clients {
		if err := c.writeJSON(message); err != nil {
			log.Warn().Err(err).Str("game_id", gameID).Msg("向连接发送消息失败")
			wm.RemoveConnection(gameID, c.conn)
		}
	}
}

// RemoveConnection 移除并关闭连接
func (wm *WebSocketManager) RemoveConnection(gameID string, conn *websocket.Conn) {
	wm.mutex.Lock()
	conns, exists := wm.games[gameID]
	if exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(wm.games, gameID)
		}
	}
	wm.mutex.Unlock()

	conn.Close()
}

// handleMessages 处理接收到的WebSocket消息
func (wm *WebSocketManager) handleMessages(gameID string, c *client) {
	defer wm.RemoveConnection(gameID, c.conn)

	c.conn.SetReadLimit(4 * 1024)

	for {
		_, p, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Str("game_id", gameID).Msg("连接正常关闭")
			} else {
				log.Warn().Err(err).Str("game_id", gameID).Msg("读取消息失败")
			}
			return
		}

		if !c.limiter.Allow() {
			c.writeJSON(errorMessage("操作过于频繁，请稍后再试"))
			continue
		}

		var msg Message
		if err := json.Unmarshal(p, &msg); err != nil {
			c.writeJSON(errorMessage("无法解析消息"))
			continue
		}

		session, err := wm.sessions.Get(gameID)
		if err != nil {
			c.writeJSON(errorMessage(err.Error()))
			return
		}

		switch msg.Type {
		case "guess":
			letter := ""
			if content, ok := msg.Content.(map[string]interface{}); ok {
				letter, _ = content["letter"].(string)
			}

			outcome, status, err := session.Guess(letter)
			if err != nil {
				if errors.Is(err, ErrGameOver) {
					c.writeJSON(errorMessage(err.Error()))
					continue
				}
				log.Error().Err(err).Str("game_id", gameID).Msg("处理猜测失败")
				continue
			}

			c.writeJSON(Message{
				Type:    "guess_result",
				GameID:  gameID,
				Content: map[string]interface{}{"outcome": outcome, "message": outcome.Message()},
			})
			wm.BroadcastToGame(gameID, stateMessage(status))
		case "state":
			c.writeJSON(stateMessage(session.Status()))
		default:
			log.Debug().Str("type", msg.Type).Msg("未知的消息类型")
			c.writeJSON(errorMessage("未知的消息类型"))
		}
	}
}

func stateMessage(status interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":  "game_state",
		"state": status,
	}
}

func errorMessage(text string) Message {
	return Message{Type: "error", Content: map[string]interface{}{"message": text}}
}
