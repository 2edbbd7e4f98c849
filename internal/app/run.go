package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/stashgrid/internal/ctxlog"
	"github.com/specialistvlad/stashgrid/internal/link"
	"github.com/specialistvlad/stashgrid/internal/notify"
	"github.com/specialistvlad/stashgrid/internal/report"
	"github.com/specialistvlad/stashgrid/internal/resolver"
)

// Run executes the main application logic based on the configuration: either
// one plan from the input, or the plan server until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	if a.config.ServePort > 0 {
		return a.Serve(ctx)
	}

	batch, err := a.LoadBatch(ctx)
	if err != nil {
		return err
	}

	plan, err := a.Plan(ctx, batch)
	if err != nil {
		return err
	}

	if err := a.writePlan(plan); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// Plan resolves batch with the configured options. When a dashboard URL is
// set, progress is streamed to it.
func (a *App) Plan(ctx context.Context, batch *link.Batch) (*resolver.Plan, error) {
	logger := ctxlog.FromContext(ctx)

	var observers []resolver.Observer
	if a.config.NotifyURL != "" {
		n, err := notify.Dial(ctx, a.config.NotifyURL, a.config.NotifyNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to dashboard: %w", err)
		}
		defer n.Close()
		observers = append(observers, n)
	}

	plan, err := a.newResolver(observers...).PlanBatch(ctx, batch)
	if err != nil {
		plansTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if a.config.Verify {
		if err := resolver.Verify(batch, plan); err != nil {
			plansTotal.WithLabelValues("invalid").Inc()
			return nil, fmt.Errorf("plan verification failed: %w", err)
		}
		logger.Debug("Plan verified.")
	}

	plansTotal.WithLabelValues("ok").Inc()
	planRounds.Observe(float64(len(plan.Rounds)))
	logger.Info("Upload plan computed.",
		"record_count", len(plan.Order),
		"stash_count", plan.Stash.Len(),
		"phantom_count", plan.Phantoms,
		"rounds", len(plan.Rounds),
	)
	return plan, nil
}

func (a *App) writePlan(plan *resolver.Plan) error {
	var w io.Writer = a.outW
	if a.config.OutputPath != "" {
		f, err := os.Create(a.config.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := report.Write(w, a.format, plan); err != nil {
		return err
	}
	a.logger.Debug("Plan written.", "format", a.format, "path", a.config.OutputPath)
	return nil
}
