package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/sswu-capstoneDesign2025/backend/internal/conf"
	_ "github.com/lib/pq"
)

type Data struct {
	db  *sql.DB
	rdb *redis.Client
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		phone_number TEXT NOT NULL DEFAULT '',
		nickname TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS summary_notes (
		id SERIAL PRIMARY KEY,
		sum_title TEXT NOT NULL,
		content TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '기타',
		region TEXT NOT NULL DEFAULT '없음',
		username TEXT NOT NULL DEFAULT '익명',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS other_user_records (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		author TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '기타',
		region TEXT NOT NULL DEFAULT '없음',
		profile_url TEXT NOT NULL DEFAULT '',
		date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS news_history (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		keyword TEXT NOT NULL,
		summary TEXT NOT NULL,
		date DATE NOT NULL DEFAULT CURRENT_DATE
	)`,
	`CREATE TABLE IF NOT EXISTS user_alerts (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		alert_time TEXT NOT NULL DEFAULT '',
		enabled BOOLEAN NOT NULL DEFAULT TRUE
	)`,
}

// NewData opens the database, ensures the schema, and connects the optional
// redis summary cache.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, nil, fmt.Errorf("failed to init schema: %w", err)
		}
	}

	var rdb *redis.Client
	if c.Redis != nil && c.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       int(c.Redis.Db),
		})
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		db.Close()
		if rdb != nil {
			rdb.Close()
		}
	}
	return &Data{db: db, rdb: rdb}, cleanup, nil
}
