package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/stashgrid/internal/ctxlog"
	"github.com/specialistvlad/stashgrid/internal/report"
	"github.com/specialistvlad/stashgrid/internal/resolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *AppConfig
	weighting resolver.Weighting
	format    report.Format
}

// NewApp is the constructor for the main application. Plans are written to
// outW unless the configuration names an output file; logs go to logW.
func NewApp(outW, logW io.Writer, appConfig *AppConfig) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	weighting, err := resolver.ParseWeighting(appConfig.Weighting)
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(appConfig.OutputFormat)
	if err != nil {
		return nil, err
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    appConfig,
		weighting: weighting,
		format:    format,
	}, nil
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// newResolver creates a resolver for one plan. Extra observers are appended to
// the metrics observer.
func (a *App) newResolver(observers ...resolver.Observer) *resolver.Resolver {
	opts := []resolver.Option{
		resolver.WithWeighting(a.weighting),
		resolver.WithObserver(metricsObserver{}),
	}
	for _, o := range observers {
		opts = append(opts, resolver.WithObserver(o))
	}
	return resolver.New(opts...)
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
