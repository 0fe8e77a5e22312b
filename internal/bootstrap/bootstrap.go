package bootstrap

import (
	"context"
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/appctx"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/config"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/logger"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/schema"
)

// ErrAlreadyStarted is returned by a second Run on the same Bootstrapper
var ErrAlreadyStarted = errors.New("bootstrap: already started")

// RouteRegistrar registers the request layer's routes once the App is wired
type RouteRegistrar interface {
	RegisterRoutes(router fiber.Router, app *App)
}

// App is the result of a successful bootstrap
type App struct {
	Stage    config.Stage
	Config   *config.Config
	Storage  *database.StorageDB
	Metadata *schema.Metadata
	Cache    *database.RedisDB
	Context  *appctx.Context
	Logger   *zap.Logger
	Router   fiber.Router
}

// Close releases the cache and storage connections
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.Storage != nil {
		errs = append(errs, a.Storage.Close())
	}
	return errors.Join(errs...)
}

// Option configures a Bootstrapper
type Option func(*Bootstrapper)

// WithLogger sets the logger published under appctx.KeyLogger.
// Defaults to the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bootstrapper) {
		b.logger = l
	}
}

// WithRegistrar registers routes before the App is returned
func WithRegistrar(r RouteRegistrar) Option {
	return func(b *Bootstrapper) {
		b.registrar = r
	}
}

// WithRouter sets the router handed to the registrar.
// Without it a new fiber.App is created.
func WithRouter(r fiber.Router) Option {
	return func(b *Bootstrapper) {
		b.router = r
	}
}

// Bootstrapper runs the startup sequence once
type Bootstrapper struct {
	mu    sync.Mutex
	state State

	logger    *zap.Logger
	registrar RouteRegistrar
	router    fiber.Router
}

// New creates an unstarted Bootstrapper
func New(opts ...Option) *Bootstrapper {
	b := &Bootstrapper{state: StateUnstarted}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the current state
func (b *Bootstrapper) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bootstrapper) advance(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// Run executes the startup sequence. It succeeds at most once.
func (b *Bootstrapper) Run(ctx context.Context) (*App, error) {
	b.mu.Lock()
	if b.state != StateUnstarted {
		b.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	b.mu.Unlock()

	app := &App{}
	abort := func(err error) (*App, error) {
		b.advance(StateAborted)
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("failed to release resources after aborted bootstrap", zap.Error(closeErr))
		}
		logger.Error("bootstrap aborted", zap.Error(err))
		return nil, err
	}

	stage, err := config.StageFromEnv()
	if err != nil {
		return abort(err)
	}
	app.Stage = stage
	b.advance(StateStageResolved)

	cfg, err := config.Load()
	if err != nil {
		return abort(err)
	}
	app.Config = cfg
	b.advance(StateConfigLoaded)

	logger.SetVerbose(stage.Verbose())

	app.Logger = b.logger
	if app.Logger == nil {
		app.Logger = logger.Log
	}
	log := app.Logger.With(zap.Stringer("stage", stage))
	log.Debug("configuration loaded", zap.Stringer("storage", cfg.Storage))

	app.Storage, app.Metadata, err = NewStorageBackend(ctx, stage, cfg.Storage)
	if err != nil {
		return abort(err)
	}
	app.Cache, err = NewCacheBackend(ctx, stage, cfg.Cache)
	if err != nil {
		return abort(err)
	}
	b.advance(StateBackendConstructed)

	app.Context, err = NewRegistry(ctx, app.Logger, app.Storage, app.Metadata)
	if err != nil {
		return abort(err)
	}
	b.advance(StateRepositoriesWired)

	if b.registrar != nil {
		app.Router = b.router
		if app.Router == nil {
			app.Router = fiber.New()
		}
		b.registrar.RegisterRoutes(app.Router, app)
	}

	b.advance(StateReady)
	log.Info("bootstrap complete", zap.String("dialect", string(app.Storage.Dialect)))

	return app, nil
}

// Run bootstraps a new, independent App
func Run(ctx context.Context, opts ...Option) (*App, error) {
	return New(opts...).Run(ctx)
}
