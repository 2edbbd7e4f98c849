// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package notify streams resolver progress to a socket.io dashboard.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/specialistvlad/stashgrid/internal/ctxlog"
	"github.com/specialistvlad/stashgrid/internal/link"
	"github.com/specialistvlad/stashgrid/internal/resolver"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// EventLeaves carries one leaf batch.
	EventLeaves = "leaves"
	// EventCut carries one cycle-breaking round.
	EventCut = "cut"

	connectTimeout = 15 * time.Second
)

// Emitter is the part of a socket.io client the notifier needs.
type Emitter interface {
	Emit(ev string, args ...any) error
}

// LeavesEvent is the payload of EventLeaves.
type LeavesEvent struct {
	Batch   int             `json:"batch"`
	Records []link.RecordID `json:"records"`
}

// Notifier implements resolver.Observer by emitting socket.io events.
// Emit failures are logged and never interrupt a resolution.
type Notifier struct {
	emitter Emitter
	logger  *slog.Logger
	closeFn func()
	batches int
}

var _ resolver.Observer = (*Notifier)(nil)

// New wraps an existing emitter.
func New(e Emitter, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{emitter: e, logger: logger, closeFn: func() {}}
}

// Dial connects to a socket.io server and returns a Notifier bound to the
// namespace. It waits for the connection to be established.
func Dial(ctx context.Context, rawURL, namespace string) (*Notifier, error) {
	logger := ctxlog.FromContext(ctx).With("component", "notify", "url", rawURL)
	logger.Debug("Connecting to dashboard...")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("failed to parse URL: %q has no scheme or host", rawURL)
	}
	if namespace == "" {
		namespace = "/"
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to dashboard.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", connectTimeout)
	}

	n := New(io, logger)
	n.closeFn = func() { io.Disconnect() }
	return n, nil
}

// OnLeaves emits EventLeaves.
func (n *Notifier) OnLeaves(batch []link.RecordID) {
	n.batches++
	n.emit(EventLeaves, LeavesEvent{Batch: n.batches, Records: batch})
}

// OnCut emits EventCut.
func (n *Notifier) OnCut(round resolver.Round) {
	n.emit(EventCut, round)
}

func (n *Notifier) emit(event string, payload any) {
	if err := n.emitter.Emit(event, payload); err != nil {
		n.logger.Warn("Failed to emit event.", "event", event, "error", err)
	}
}

// Close disconnects from the server.
func (n *Notifier) Close() {
	n.closeFn()
}
