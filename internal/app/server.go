package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/specialistvlad/stashgrid/internal/ctxlog"
	"github.com/specialistvlad/stashgrid/internal/link"
	"github.com/specialistvlad/stashgrid/internal/report"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 5 * time.Second
	maxRequestBytes = 64 << 20
)

// BatchRequest is the JSON body of POST /plan.
type BatchRequest struct {
	Records []link.RecordID `json:"records"`
	Singles []struct {
		Source link.RecordID `json:"source"`
		Target link.RecordID `json:"target"`
		ID     link.Identity `json:"id"`
	} `json:"singles"`
	Groups []struct {
		Source  link.RecordID   `json:"source"`
		Targets []link.RecordID `json:"targets"`
		ID      link.Identity   `json:"id"`
	} `json:"groups"`
}

// Batch converts the request into planner input.
func (r *BatchRequest) Batch() *link.Batch {
	b := &link.Batch{Records: r.Records}
	for _, s := range r.Singles {
		b.Singles = append(b.Singles, link.Single{From: s.Source, To: s.Target, ID: s.ID})
	}
	for _, g := range r.Groups {
		b.Groups = append(b.Groups, link.Group{From: g.Source, To: g.Targets, ID: g.ID})
	}
	return b
}

// healthHandler reports that the server is up.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// planHandler resolves the batch in the request body. Each request gets its
// own graph.
func (a *App) planHandler(w http.ResponseWriter, r *http.Request) {
	ctx := ctxlog.With(a.context(r.Context()), "request_id", uuid.NewString())
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Plan endpoint hit.", "remote_addr", r.RemoteAddr)

	var req BatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	plan, err := a.Plan(ctx, req.Batch())
	if errors.Is(err, link.ErrPrecondition) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Error("Plan request failed.", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := report.Write(w, report.FormatJSON, plan); err != nil {
		logger.Error("Failed to write plan response.", "error", err)
	}
}

// Handler returns the HTTP routes of the plan server.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("POST /plan", a.planHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Serve runs the plan server on the configured port until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.config.ServePort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	ctx = a.context(ctx)
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Plan server starting", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("plan server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down plan server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("plan server shutdown failed: %w", err)
		}
		a.logger.Debug("Plan server shut down gracefully.")
		return nil
	})
	return g.Wait()
}
