package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // 纯Go实现的SQLite驱动

	"github.com/qianlnk/hangman/models"
)

// WordStore 基于SQLite的词库
type WordStore struct {
	db *sql.DB
}

// OpenWordStore 打开（必要时创建）词库数据库
func OpenWordStore(ctx context.Context, dbPath string) (*WordStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	// 内存库每个连接都是独立的数据库
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			log.Warn().Err(err).Str("pragma", pragma).Msg("设置数据库参数失败")
		}
	}

	if err := createSchemas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("创建表结构失败: %w", err)
	}

	return &WordStore{db: db}, nil
}

func createSchemas(ctx context.Context, db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(level, text)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_words_level ON words(level);`,
	}

	for _, query := range schemas {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// Add 加入一个词，重复的词会被忽略
func (s *WordStore) Add(ctx context.Context, level models.Level, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("词条不能为空")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO words (level, text) VALUES (?, ?)`,
		string(level), text,
	)
	if err != nil {
		return fmt.Errorf("写入词条失败: %w", err)
	}
	return nil
}

// Seed 批量写入词条
func (s *WordStore) Seed(ctx context.Context, level models.Level, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (level, text) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("准备语句失败: %w", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, string(level), w); err != nil {
			return fmt.Errorf("写入词条 %q 失败: %w", w, err)
		}
	}
	return tx.Commit()
}

// SeedDefaults 写入内置词库
func (s *WordStore) SeedDefaults(ctx context.Context) error {
	for _, level := range models.Levels {
		if err := s.Seed(ctx, level, models.DefaultWords(level)); err != nil {
			return err
		}
	}
	return nil
}

// Words 读取某个难度的全部词条
func (s *WordStore) Words(ctx context.Context, level models.Level) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text FROM words WHERE level = ? ORDER BY id ASC`,
		string(level),
	)
	if err != nil {
		return nil, fmt.Errorf("查询词库失败: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// Count 某个难度的词条数量
func (s *WordStore) Count(ctx context.Context, level models.Level) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM words WHERE level = ?`,
		string(level),
	).Scan(&n)
	return n, err
}

// Close 关闭数据库
func (s *WordStore) Close() error {
	return s.db.Close()
}
