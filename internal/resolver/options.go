// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolver

import (
	"fmt"

	"github.com/specialistvlad/stashgrid/internal/link"
)

// Weighting decides how much a single edge contributes to a record's cost.
type Weighting int

const (
	// EdgeWeighting counts every edge as 1.
	EdgeWeighting Weighting = iota
	// FractionalWeighting counts a group edge as 1/len(targets), so a group
	// value weighs as much as a single link in total.
	FractionalWeighting
)

func (w Weighting) String() string {
	switch w {
	case EdgeWeighting:
		return "edge"
	case FractionalWeighting:
		return "fractional"
	default:
		return fmt.Sprintf("Weighting(%d)", int(w))
	}
}

// ParseWeighting maps a configuration value to a Weighting.
func ParseWeighting(s string) (Weighting, error) {
	switch s {
	case "", "edge":
		return EdgeWeighting, nil
	case "fractional":
		return FractionalWeighting, nil
	default:
		return 0, fmt.Errorf("unknown weighting %q", s)
	}
}

func (w Weighting) weight(l link.Link) float64 {
	if w == FractionalWeighting && l.Kind() == link.KindGroup {
		return 1 / float64(len(l.Targets()))
	}
	return 1
}

// Observer receives progress events while a graph is resolved. Calls happen
// synchronously on the resolving goroutine.
type Observer interface {
	// OnLeaves is called for every leaf batch appended to the order.
	OnLeaves(batch []link.RecordID)
	// OnCut is called after each cycle-breaking round.
	OnCut(round Round)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithWeighting sets the edge weighting used for the cost of a record.
func WithWeighting(w Weighting) Option {
	return func(r *Resolver) { r.weighting = w }
}

// WithObserver registers o for resolver events. Several observers may be
// registered; they are called in registration order.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}
