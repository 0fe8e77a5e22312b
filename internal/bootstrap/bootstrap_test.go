package bootstrap

import (
	"context"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/appctx"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/config"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/logger"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository"
)

var envKeys = []string{
	"STAGE",
	"DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWD", "DB_NAME", "DB_DRIVER",
	"REDIS_HOST", "REDIS_PORT", "REDIS_DB",
	"SERVER_HOST", "SERVER_PORT", "LOG_FORMAT", "RATE_LIMIT_MAX",
	"AUTH_TOKEN_SECRET", "AUTH_TOKEN_TTL_MINUTES", "SENTRY_DSN", "SENTRY_ENVIRONMENT",
}

// clearEnv unsets every variable bootstrap reads and restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, old) })
		} else {
			t.Cleanup(func() { _ = os.Unsetenv(key) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func runTest(t *testing.T, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	app, err := Run(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestRun_TestStage(t *testing.T) {
	clearEnv(t)

	b := New(WithLogger(zaptest.NewLogger(t)))
	assert.Equal(t, StateUnstarted, b.State())

	app, err := b.Run(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, StateReady, b.State())
	assert.Equal(t, config.StageTest, app.Stage)
	assert.True(t, app.Cache.InMemory())
	assert.Equal(t, zapcore.DebugLevel, logger.Level())

	keys := app.Context.Keys()
	assert.ElementsMatch(t, []string{appctx.KeyLogger, appctx.KeyEvents, appctx.KeyTickets, appctx.KeyUsers}, keys)

	seen := make(map[any]string)
	for _, key := range keys {
		v, ok := app.Context.Lookup(key)
		require.True(t, ok, key)
		require.NotNil(t, v, key)
		if other, dup := seen[v]; dup {
			t.Fatalf("%s and %s share an instance", key, other)
		}
		seen[v] = key
	}

	assert.Equal(t, repository.RoleReader, app.Context.Events().Role())
	assert.Equal(t, repository.RoleWriter, app.Context.Tickets().Role())
	assert.Equal(t, repository.RoleWriter, app.Context.Users().Role())
	assert.Len(t, app.Metadata.Tables(), 3)
}

func TestRun_RepositoriesUsable(t *testing.T) {
	clearEnv(t)
	app := runTest(t)
	ctx := context.Background()

	ticket, err := app.Context.Tickets().Create(ctx, &domain.TicketInput{Title: "Broken badge reader"})
	require.NoError(t, err)

	_, err = app.Context.Events().Append(ctx, ticket.ID, &domain.EventInput{Type: domain.EventTypeCreated})
	assert.True(t, apperrors.IsReadOnly(err))
}

func TestRun_SecondRunOnSameBootstrapper(t *testing.T) {
	clearEnv(t)

	b := New(WithLogger(zaptest.NewLogger(t)))
	app, err := b.Run(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	again, err := b.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	assert.Nil(t, again)
	assert.Equal(t, StateReady, b.State())
}

func TestRun_IndependentApps(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()

	first := runTest(t)
	second := runTest(t)

	assert.NotSame(t, first.Context, second.Context)
	assert.NotSame(t, first.Storage, second.Storage)
	assert.NotSame(t, first.Context.Tickets(), second.Context.Tickets())

	_, err := first.Context.Tickets().Create(ctx, &domain.TicketInput{Title: "only in first"})
	require.NoError(t, err)

	tickets, err := second.Context.Tickets().List(ctx, &domain.TicketFilter{})
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestRun_UnknownStage(t *testing.T) {
	clearEnv(t)
	t.Setenv("STAGE", "qa")

	b := New(WithLogger(zaptest.NewLogger(t)))
	app, err := b.Run(context.Background())
	assert.True(t, apperrors.IsUnknownDeploymentStage(err))
	assert.Nil(t, app)
	assert.Equal(t, StateAborted, b.State())
}

func TestRun_InvalidEnvironmentValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PORT", "notanumber")

	b := New(WithLogger(zaptest.NewLogger(t)))
	app, err := b.Run(context.Background())
	assert.True(t, apperrors.IsInvalidEnvironmentValue(err))
	assert.Nil(t, app)
	assert.Equal(t, StateAborted, b.State())
}

func TestRun_UnreachableStorage(t *testing.T) {
	tests := []struct {
		stage string
		level zapcore.Level
	}{
		{stage: "staging", level: zapcore.DebugLevel},
		{stage: "PRODUCTION", level: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STAGE", tt.stage)
			t.Setenv("DB_HOST", "127.0.0.1")
			t.Setenv("DB_PORT", "1")

			b := New(WithLogger(zaptest.NewLogger(t)))
			app, err := b.Run(context.Background())
			assert.True(t, apperrors.IsBackendConnectionFailure(err), "got %v", err)
			assert.Nil(t, app)
			assert.Equal(t, StateAborted, b.State())

			// verbosity is applied before any backend is contacted
			assert.Equal(t, tt.level, logger.Level())
		})
	}
}

type recordingRegistrar struct {
	calls int
	app   *App
}

func (r *recordingRegistrar) RegisterRoutes(router fiber.Router, app *App) {
	r.calls++
	r.app = app
	router.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
}

func TestRun_Registrar(t *testing.T) {
	clearEnv(t)

	router := fiber.New()
	registrar := &recordingRegistrar{}
	app := runTest(t, WithRegistrar(registrar), WithRouter(router))

	assert.Equal(t, 1, registrar.calls)
	assert.Same(t, app, registrar.app)
	assert.NotNil(t, registrar.app.Context)
	assert.Same(t, router, app.Router)
}

func TestNewStorageBackend_UnknownStage(t *testing.T) {
	db, md, err := NewStorageBackend(context.Background(), config.Stage("DEV"), config.StorageConfig{})
	assert.True(t, apperrors.IsUnknownDeploymentStage(err))
	assert.Nil(t, db)
	assert.Nil(t, md)
}

func TestNewStorageBackend_TestStage(t *testing.T) {
	db, md, err := NewStorageBackend(context.Background(), config.StageTest, config.StorageConfig{Host: "unreachable.invalid", Port: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Same(t, db, md.Bind())
	assert.Empty(t, md.Tables())
}

func TestNewCacheBackend(t *testing.T) {
	cache, err := NewCacheBackend(context.Background(), config.StageTest, config.CacheConfig{DB: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	assert.NoError(t, cache.Ping(context.Background()))

	_, err = NewCacheBackend(context.Background(), config.StageStaging, config.CacheConfig{Host: "127.0.0.1", Port: 1})
	assert.True(t, apperrors.IsBackendConnectionFailure(err))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "State(42)", State(42).String())
	assert.True(t, StateAborted.Terminal())
	assert.False(t, StateConfigLoaded.Terminal())
}
