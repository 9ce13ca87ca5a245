package cli

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/numerology"
	"github.com/aretw0/numerology/internal/config"
	"github.com/aretw0/numerology/internal/logging"
	"github.com/aretw0/numerology/pkg/adapters/file"
	"github.com/aretw0/numerology/pkg/adapters/memory"
	redisadapter "github.com/aretw0/numerology/pkg/adapters/redis"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/observability"
	"github.com/aretw0/numerology/pkg/persistence/middleware"
	"github.com/aretw0/numerology/pkg/ports"
	"github.com/aretw0/numerology/pkg/refdata"
	"github.com/aretw0/numerology/pkg/session"
	backend "github.com/redis/go-redis/v9"
)

// App bundles everything a command needs, built from one Config.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Engine   *numerology.Engine
	Metrics  *observability.Metrics
	Sessions *session.Manager

	closers []func() error
}

// NewApp wires logging, the engine, metrics and the session backend.
// Logs go to logOut, which should not be the stream results are written to.
func NewApp(cfg *config.Config, logOut io.Writer) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: NewLogger(cfg.Server, logOut),
	}

	engineOpts := []numerology.Option{
		numerology.WithLogger(app.Logger),
		numerology.WithLifecycleHooks(observability.LoggingHooks(app.Logger)),
	}

	if cfg.Server.Metrics {
		m, err := observability.NewMetrics(nil)
		if err != nil {
			return nil, fmt.Errorf("error initializing metrics: %w", err)
		}
		app.Metrics = m
		engineOpts = append(engineOpts, numerology.WithLifecycleHooks(m.Hooks()))
	}

	if cfg.Display.Catalog != "" {
		c, err := refdata.LoadFile(cfg.Display.Catalog)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, numerology.WithCatalog(c))
	}

	engine, err := numerology.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	app.Engine = engine

	store, locker, err := app.sessionBackend()
	if err != nil {
		return nil, err
	}
	mgrOpts := []session.Option{
		session.WithLogger(app.Logger),
		session.WithLockTTL(cfg.Session.LockTTL),
	}
	if locker != nil {
		mgrOpts = append(mgrOpts, session.WithLocker(locker))
	}
	app.Sessions = session.NewManager(store, mgrOpts...)
	return app, nil
}

// sessionBackend returns the configured store, and a distributed locker when
// the store is shared between processes.
func (a *App) sessionBackend() (ports.SessionStore, ports.DistributedLocker, error) {
	var (
		store  ports.SessionStore
		locker ports.DistributedLocker
	)
	switch a.Config.Session.Backend {
	case "redis":
		store, locker = a.redisBackend()
	case "file":
		store = file.New(a.Config.Session.Dir)
		a.Logger.Debug("using file session store", "dir", a.Config.Session.Dir)
	default:
		store = memory.NewStore()
	}

	keys := a.Config.Session.EncryptionKeys
	if len(keys) == 0 {
		return store, locker, nil
	}
	mw, err := encryptionMiddleware(keys)
	if err != nil {
		return nil, nil, err
	}
	a.Logger.Debug("sessions are encrypted at rest", "fallback_keys", len(keys)-1)
	return middleware.Chain(store, mw), locker, nil
}

func encryptionMiddleware(keys []string) (middleware.Middleware, error) {
	decoded := make([][]byte, len(keys))
	for i, k := range keys {
		b, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, fmt.Errorf("encryption key %d: %w", i, err)
		}
		decoded[i] = b
	}
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    decoded[0],
		FallbackKeys: decoded[1:],
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session encryption keys: %w", err)
	}
	return mw, nil
}

func (a *App) redisBackend() (ports.SessionStore, ports.DistributedLocker) {
	rc := a.Config.Redis
	client := backend.NewClient(&backend.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	a.closers = append(a.closers, client.Close)

	prefix := rc.Prefix
	if prefix == "" {
		prefix = redisadapter.DefaultPrefix
	}
	store := redisadapter.NewFromClient(client,
		redisadapter.WithPrefix(prefix),
		redisadapter.WithTTL(a.Config.Session.TTL),
	)
	a.Logger.Debug("using redis session store", "addr", rc.Addr, "prefix", prefix)
	return store, redisadapter.NewLocker(client, prefix)
}

// DisplayMode is the configured default mode.
func (a *App) DisplayMode() domain.DisplayMode {
	mode, err := domain.ParseMode(a.Config.Display.Mode)
	if err != nil {
		return domain.DefaultMode
	}
	return mode
}

// Close releases backend connections.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewLogger builds the logger described by the server settings.
func NewLogger(sc config.ServerConfig, w io.Writer) *slog.Logger {
	level, ok := logging.ParseLevel(sc.LogLevel)
	if !ok {
		level = slog.LevelInfo
	}
	return logging.NewWithWriter(w, level, sc.LogFormat == "json")
}
