// Package app owns the long-lived pieces a memo command works with: the
// resolved config, the logger, the database and the services on top of it.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/justin0804nitsuj/memo/internal/config"
	"github.com/justin0804nitsuj/memo/internal/core"
	"github.com/justin0804nitsuj/memo/pkg/preview"
	"github.com/justin0804nitsuj/memo/pkg/storage"
)

// App is created once per process and closed on exit.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      *storage.Store
	Catalog    *core.Catalog
	Dispatcher *preview.Dispatcher
}

// Option configures New.
type Option func(*options)

type options struct {
	launcher preview.Launcher
}

// WithLauncher overrides the external viewer.
func WithLauncher(l preview.Launcher) Option {
	return func(o *options) { o.launcher = l }
}

// New opens the database at cfg.DatabasePath, creating the files table when
// needed, and wires the catalog and preview dispatcher.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store, err := storage.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Catalog: core.NewCatalog(store, logger),
		Dispatcher: preview.NewDispatcher(
			preview.WithLauncher(o.launcher),
			preview.WithMaxSize(cfg.PreviewMaxWidth, cfg.PreviewMaxHeight),
			preview.WithTextLimit(cfg.PreviewTextLimit),
			preview.WithLogger(logger),
		),
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	if a == nil || a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

type contextKey struct{}

// WithApp returns a copy of ctx carrying a.
func WithApp(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the App stored by WithApp, or nil.
func FromContext(ctx context.Context) *App {
	a, _ := ctx.Value(contextKey{}).(*App)
	return a
}
