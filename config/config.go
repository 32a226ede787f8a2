package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 服务配置
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Game    GameConfig    `mapstructure:"game"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	WS      WSConfig      `mapstructure:"ws"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GameConfig 对局参数，lives 和 seconds_per_turn 必须为正数
type GameConfig struct {
	Lives          int           `mapstructure:"lives"`
	SecondsPerTurn int           `mapstructure:"seconds_per_turn"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
}

// TurnDuration 每回合时长
func (g GameConfig) TurnDuration() time.Duration {
	return time.Duration(g.SecondsPerTurn) * time.Second
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type WSConfig struct {
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("game.lives", 6)
	v.SetDefault("game.seconds_per_turn", 15)
	v.SetDefault("game.poll_interval", "250ms")
	v.SetDefault("game.session_ttl", "30m")
	v.SetDefault("storage.db_path", "./data/hangman.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
	v.SetDefault("ws.rate_per_second", 5)
	v.SetDefault("ws.burst", 10)
}

// Load 读取配置：默认值 < 配置文件 < HANGMAN_ 前缀的环境变量
//
// path 为空时在当前目录和 ./config 下查找 config.yaml，找不到文件不算错误。
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("hangman")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查游戏核心不会自行校验的参数
func (c *Config) Validate() error {
	if c.Game.Lives <= 0 {
		return fmt.Errorf("game.lives 必须为正数，当前为 %d", c.Game.Lives)
	}
	if c.Game.SecondsPerTurn <= 0 {
		return fmt.Errorf("game.seconds_per_turn 必须为正数，当前为 %d", c.Game.SecondsPerTurn)
	}
	if c.WS.RatePerSecond <= 0 || c.WS.Burst <= 0 {
		return errors.New("ws.rate_per_second 和 ws.burst 必须为正数")
	}
	return nil
}
