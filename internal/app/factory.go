// Package app wires the cmdcore collaborators together.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/footprint-tools/cmdcore/internal/cli"
	"github.com/footprint-tools/cmdcore/internal/config"
	"github.com/footprint-tools/cmdcore/internal/dispatchers"
	"github.com/footprint-tools/cmdcore/internal/domain"
	"github.com/footprint-tools/cmdcore/internal/log"
	"github.com/footprint-tools/cmdcore/internal/manifest"
	"github.com/footprint-tools/cmdcore/internal/paths"
	"github.com/footprint-tools/cmdcore/internal/store"
	"github.com/footprint-tools/cmdcore/internal/telemetry"
	"github.com/footprint-tools/cmdcore/internal/ui"
	"github.com/footprint-tools/cmdcore/internal/ui/style"
	"github.com/footprint-tools/cmdcore/internal/usage"
	"github.com/footprint-tools/cmdcore/internal/world"
)

// Options configures the application factory.
type Options struct {
	Settings config.Settings

	// Flag overrides of the configured caller.
	As    string
	Perms []string

	// Pager options
	PagerDisabled bool
	PagerOverride string

	// Style options
	StyleEnabled bool

	// Out receives command output. Nil means stdout.
	Out io.Writer

	// Logger and Store replace the ones built from Settings.
	Logger domain.Logger
	Store  *store.Store
}

// DefaultOptions loads the settings from the config file and environment.
func DefaultOptions() (Options, error) {
	settings, err := config.Load()
	if err != nil {
		return Options{}, err
	}
	return Options{Settings: settings, StyleEnabled: true}, nil
}

// App is a ready to dispatch cmdcore instance.
type App struct {
	domain.Application

	Settings config.Settings
	Manager  *dispatchers.Manager
	World    *world.World
	Caller   Caller

	handlers manifest.Handlers
	limiter  *limiter
	store    *store.Store
	shutdown func(context.Context) error
}

// New creates an App with all dependencies wired up.
func New(ctx context.Context, opts Options) (*App, error) {
	s := opts.Settings

	logger := opts.Logger
	if logger == nil {
		logger = newLogger(s)
	}
	log.SetDefault(logger)

	shutdown, err := telemetry.Setup(ctx, telemetry.ServiceName, s.TraceEndpoint)
	if err != nil {
		logger.Warn("tracing disabled: %v", err)
	}

	a := &App{
		Settings: s,
		World:    world.Demo(),
		limiter:  newLimiter(s.RatePerSec, s.RateBurst),
		shutdown: shutdown,
	}

	a.store = opts.Store
	if a.store == nil && s.HistoryEnabled {
		if a.store, err = store.New(paths.HistoryDBPath()); err != nil {
			logger.Warn("history disabled: %v", err)
		}
	}

	mopts := []dispatchers.Option{
		dispatchers.WithLogger(logger),
		dispatchers.WithTracer(otel.Tracer(telemetry.ServiceName)),
	}
	var history domain.HistoryStore
	if a.store != nil {
		history = a.store
		rec := &recorder{store: a.store, keep: s.HistoryKeep, logger: logger, now: time.Now}
		mopts = append(mopts, dispatchers.WithObserver(rec.observe))
	}
	a.Manager = dispatchers.NewManager(mopts...)

	deps := cli.Deps{World: a.World, History: history, Help: a.Manager}
	if err := cli.Install(a.Manager, deps); err != nil {
		return nil, err
	}
	a.handlers = cli.Handlers(deps)

	if path := s.ManifestPath; path != "" {
		if _, err := os.Stat(path); err == nil {
			if n, err := manifest.Apply(a.Manager, path, a.handlers); err != nil {
				logger.Warn("manifest %s not loaded: %v", path, err)
			} else {
				logger.Info("loaded %d command(s) from %s", n, path)
			}
		}
	}
	a.Manager.Freeze()

	name := s.Caller
	if opts.As != "" {
		name = opts.As
	}
	perms := s.Permissions
	if opts.Perms != nil {
		perms = opts.Perms
	}
	a.Caller = NewCaller(name, perms)

	style.Init(opts.StyleEnabled, s.Raw)

	writerOpts := []ui.WriterOption{ui.WithConfigGetter(config.Get)}
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}
	if opts.PagerOverride != "" {
		writerOpts = append(writerOpts, ui.WithPagerOverride(opts.PagerOverride))
	}

	a.Application = domain.Application{
		History: history,
		Config:  config.NewProvider(),
		Logger:  logger,
		Output:  newWriter(opts.Out, writerOpts),
	}
	return a, nil
}

func newWriter(out io.Writer, opts []ui.WriterOption) *ui.Writer {
	if out == nil {
		return ui.NewWriter(opts...)
	}
	return ui.NewWriterTo(out, opts...)
}

func newLogger(s config.Settings) domain.Logger {
	if !s.EnableLog {
		return log.NopLogger{}
	}
	l, err := log.New(paths.LogFilePath(), log.ParseLevel(s.LogLevel), log.Options{
		MaxSizeMB:  s.LogMaxSizeMB,
		MaxBackups: log.DefaultOptions.MaxBackups,
		MaxAgeDays: log.DefaultOptions.MaxAgeDays,
	})
	if err != nil {
		// Fall back to NopLogger on error
		return log.NopLogger{}
	}
	return l
}

// Dispatch runs raw for caller after the per-caller rate limit.
func (a *App) Dispatch(ctx context.Context, caller domain.Issuer, raw string) dispatchers.Result {
	name := ""
	if caller != nil {
		name = caller.Name()
	}
	if !a.limiter.Allow(name) {
		return dispatchers.Result{
			Kind:    dispatchers.ConditionFailed,
			Raw:     raw,
			Caller:  caller,
			Err:     usage.RateLimited(name),
			Started: time.Now(),
		}
	}
	return a.Manager.Dispatch(ctx, caller, raw)
}

// Complete returns the completions for raw at cursor.
func (a *App) Complete(ctx context.Context, caller domain.Issuer, raw string, cursor int) []string {
	return a.Manager.Complete(ctx, caller, raw, cursor)
}

// CompleteSpan completes raw at cursor for caller.
func (a *App) CompleteSpan(ctx context.Context, caller domain.Issuer, raw string, cursor int) dispatchers.Completion {
	return a.Manager.CompleteSpan(ctx, caller, raw, cursor)
}

// Watch reloads the manifest whenever it changes, until ctx is done. It
// returns at once when watching is off.
func (a *App) Watch(ctx context.Context) error {
	if !a.Settings.ManifestWatch || a.Settings.ManifestPath == "" {
		return nil
	}
	return manifest.NewWatcher(a.Manager, a.Settings.ManifestPath, a.handlers, a.Logger).Run(ctx)
}

// Close flushes traces and releases the logger and store.
func (a *App) Close() error {
	var errs []error
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.shutdown(ctx))
		cancel()
	}
	if a.Logger != nil {
		if log.Default() == a.Logger {
			log.SetDefault(nil)
		}
		errs = append(errs, a.Logger.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}
