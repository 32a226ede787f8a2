package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hangman/config"
	"github.com/qianlnk/hangman/logger"
	"github.com/qianlnk/hangman/models"
	"github.com/qianlnk/hangman/services"
	"github.com/qianlnk/hangman/storage"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 跨域由 CORS 中间件控制
	},
}

// WordAdder 可写入的词库
type WordAdder interface {
	Add(ctx context.Context, level models.Level, text string) error
}

// app 请求处理所需的依赖
type app struct {
	sessions *services.SessionManager
	ws       *services.WebSocketManager
	words    WordAdder
}

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("加载配置失败")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.OpenWordStore(ctx, cfg.Storage.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.DBPath).Msg("打开词库失败")
	}
	defer store.Close()

	if err := store.SeedDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("写入内置词库失败")
	}

	settings := services.GameSettings{
		Lives:        cfg.Game.Lives,
		TurnDuration: cfg.Game.TurnDuration(),
		SessionTTL:   cfg.Game.SessionTTL,
	}
	sessions := services.NewSessionManager(services.NewWordPicker(store), settings, services.SystemClock)
	ws := services.NewWebSocketManager(sessions, cfg.WS.RatePerSecond, cfg.WS.Burst)

	poller := services.NewTimeoutPoller(sessions, ws, cfg.Game.PollInterval)
	go poller.Run(ctx)

	a := &app{sessions: sessions, ws: ws, words: store}
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: newRouter(a, cfg.Server.AllowedOrigins),
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("服务器启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("服务器启动失败")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("正在关闭服务器")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("关闭服务器失败")
	}
}

func newRouter(a *app, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/ws", a.serveWS)

	api := r.Group("/api")
	{
		api.GET("/levels", listLevels)

		api.POST("/games", a.createGame)
		api.GET("/games", a.listGames)
		api.GET("/games/:id", a.getGame)
		api.DELETE("/games/:id", a.deleteGame)
		api.POST("/games/:id/guess", a.guess)
		api.GET("/games/:id/suggest", a.suggest)

		api.POST("/words", a.addWord)
	}

	return r
}

func listLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": models.Levels})
}

func (a *app) createGame(c *gin.Context) {
	var req struct {
		Level string `json:"level"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	session := a.sessions.Create(c.Request.Context(), models.ParseLevel(req.Level))
	c.JSON(http.StatusCreated, session.Status())
}

func (a *app) listGames(c *gin.Context) {
	sessions := a.sessions.List()
	games := make([]models.GameStatus, 0, len(sessions))
	for _, s := range sessions {
		games = append(games, s.Status())
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (a *app) getGame(c *gin.Context) {
	session, err := a.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Status())
}

func (a *app) deleteGame(c *gin.Context) {
	if err := a.sessions.Remove(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *app) guess(c *gin.Context) {
	var req struct {
		Letter string `json:"letter"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := a.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	outcome, status, err := session.Guess(req.Letter)
	if err != nil {
		writeError(c, err)
		return
	}

	if a.ws != nil {
		a.ws.BroadcastToGame(session.ID, gin.H{"type": "game_state", "state": status})
	}

	c.JSON(http.StatusOK, models.GuessResult{
		Outcome: outcome,
		Message: outcome.Message(),
		State:   status,
	})
}

func (a *app) suggest(c *gin.Context) {
	letter, err := a.sessions.Suggest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"letter": letter})
}

func (a *app) addWord(c *gin.Context) {
	if a.words == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "词库不可写"})
		return
	}

	var word models.Word
	if err := c.ShouldBindJSON(&word); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.words.Add(c.Request.Context(), word.Level, word.Text); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, word)
}

func (a *app) serveWS(c *gin.Context) {
	gameID := c.Query("game")
	if _, err := a.sessions.Get(gameID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("升级WebSocket连接失败")
		return
	}

	if err := a.ws.RegisterConnection(gameID, conn); err != nil {
		log.Warn().Err(err).Str("game_id", gameID).Msg("注册WebSocket连接失败")
		conn.Close()
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrGameOver):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
