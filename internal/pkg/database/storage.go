package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/config"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/logger"
)

// Dialect identifies the SQL flavour behind a StorageDB
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// StorageDB wraps the SQL connection pool shared by all repositories.
// It is safe for concurrent use once constructed.
type StorageDB struct {
	DB      *sqlx.DB
	Dialect Dialect
}

// NewMemory opens an in-process SQLite database with no network dependency.
// The pool holds a single connection because every new :memory: connection
// would start from an empty database.
func NewMemory(ctx context.Context) (*StorageDB, error) {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite memory database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure sqlite: %w", err)
	}

	logger.Debug("opened in-memory SQLite storage")

	return &StorageDB{DB: db, Dialect: DialectSQLite}, nil
}

// NewMySQL opens a MySQL connection pool and pings it
func NewMySQL(ctx context.Context, cfg config.StorageConfig) (*StorageDB, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Addr()
	mc.DBName = cfg.Database
	mc.ParseTime = true

	db, err := sqlx.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	return connect(ctx, db, DialectMySQL, cfg)
}

// NewPostgres opens a PostgreSQL pool through pgx's database/sql adapter
func NewPostgres(ctx context.Context, cfg config.StorageConfig) (*StorageDB, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     cfg.Addr(),
		Path:     "/" + cfg.Database,
		RawQuery: "sslmode=disable",
	}

	connConfig, err := pgx.ParseConfig(dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	// Add logging for slow queries
	connConfig.Tracer = newQueryTracer(logger.IsDebug())

	db := sqlx.NewDb(stdlib.OpenDB(*connConfig), "pgx")

	return connect(ctx, db, DialectPostgres, cfg)
}

func connect(ctx context.Context, db *sqlx.DB, dialect Dialect, cfg config.StorageConfig) (*StorageDB, error) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect, err)
	}

	logger.Info("connected to storage",
		zap.String("dialect", string(dialect)),
		zap.String("addr", cfg.Addr()),
		zap.String("database", cfg.Database),
	)

	return &StorageDB{DB: db, Dialect: dialect}, nil
}

// Close closes the connection pool
func (s *StorageDB) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// Ping verifies the pool can still reach the database
func (s *StorageDB) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Rebind rewrites ? placeholders into the dialect's bind style
func (s *StorageDB) Rebind(query string) string {
	return s.DB.Rebind(query)
}

// Transaction executes a function within a transaction
func Transaction(ctx context.Context, s *StorageDB, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("failed to rollback transaction",
				zap.Error(rbErr),
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
