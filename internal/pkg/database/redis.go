package database

import (
	"context"
	"fmt"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/config"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/logger"
)

// RedisDB wraps a Redis client and, for in-process caches, the server behind it
type RedisDB struct {
	Client *redis.Client
	server *miniredis.Miniredis
}

// NewRedis creates a new Redis client and pings it once.
// The client never retries a command and keeps no idle connections warm.
func NewRedis(ctx context.Context, cfg config.CacheConfig) (*RedisDB, error) {
	addr := cfg.Addr()

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           cfg.DB,
		MaxRetries:   -1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     100,
		PoolTimeout:  4 * time.Second,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("connected to Redis",
		zap.String("addr", addr),
		zap.Int("db", cfg.DB),
	)

	return &RedisDB{Client: client}, nil
}

// NewMemoryRedis starts an in-process Redis server and connects to it
func NewMemoryRedis(ctx context.Context, db int) (*RedisDB, error) {
	server, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start in-memory redis: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: server.Addr(),
		DB:   db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		server.Close()
		return nil, fmt.Errorf("failed to ping in-memory redis: %w", err)
	}

	logger.Debug("started in-memory Redis", zap.String("addr", server.Addr()))

	return &RedisDB{Client: client, server: server}, nil
}

// Close closes the client and stops the in-process server if there is one
func (db *RedisDB) Close() error {
	var err error
	if db.Client != nil {
		err = db.Client.Close()
	}
	if db.server != nil {
		db.server.Close()
	}
	return err
}

// Ping checks the connection
func (db *RedisDB) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx).Err()
}

// InMemory reports whether the cache runs inside this process
func (db *RedisDB) InMemory() bool {
	return db.server != nil
}
