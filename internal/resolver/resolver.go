// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolver

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stashgrid/internal/ctxlog"
	"github.com/specialistvlad/stashgrid/internal/dag"
	"github.com/specialistvlad/stashgrid/internal/link"
)

// Resolver computes upload plans. A Resolver holds only configuration and may
// be shared; each call works on its own graph.
type Resolver struct {
	weighting Weighting
	observers []Observer
}

// New creates a Resolver with the given options.
func New(opts ...Option) *Resolver {
	r := &Resolver{weighting: EdgeWeighting}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Weighting returns the configured edge weighting.
func (r *Resolver) Weighting() Weighting { return r.weighting }

// PlanBatch validates batch, builds its graph and resolves it.
func (r *Resolver) PlanBatch(ctx context.Context, batch *link.Batch) (*Plan, error) {
	g, err := dag.Build(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("error building dependency graph: %w", err)
	}
	return r.Resolve(ctx, g), nil
}

// Resolve consumes g and returns the plan. g is empty afterwards.
func (r *Resolver) Resolve(ctx context.Context, g *dag.Graph) *Plan {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolve: Starting.", "node_count", g.NodeCount(), "edge_count", g.EdgeCount(), "weighting", r.weighting.String())

	order := NewOrder()
	plan := &Plan{Stash: NewStash()}

	for {
		r.stripLeaves(g, order)
		if g.Empty() {
			break
		}

		// Every remaining node has an outgoing edge, so a cycle exists.
		cycle := g.FindCycle()
		round := r.breakCycle(g, cycle, plan.Stash)
		round.Number = len(plan.Rounds) + 1
		plan.Rounds = append(plan.Rounds, round)
		plan.Cut += round.Edges
		plan.Phantoms += round.Phantoms

		logger.Debug("Resolve: Cycle broken.",
			"round", round.Number,
			"source", round.Cut.Source,
			"target", round.Cut.Target,
			"value", round.Value,
			"edges", round.Edges,
			"phantoms", round.Phantoms,
			"edge_count", g.EdgeCount(),
		)
		for _, o := range r.observers {
			o.OnCut(round)
		}
	}

	plan.Order = order.IDs()
	plan.Batches = order.Batches()
	logger.Debug("Resolve: Done.", "rounds", len(plan.Rounds), "stash_count", plan.Stash.Len(), "phantom_count", plan.Phantoms)
	return plan
}

// stripLeaves removes leaf batches until no node with out-degree 0 is left.
func (r *Resolver) stripLeaves(g *dag.Graph, order *Order) {
	for {
		leaves := g.Leaves()
		if len(leaves) == 0 {
			return
		}
		batch := make([]link.RecordID, 0, len(leaves))
		for _, n := range leaves {
			batch = append(batch, g.ID(n))
			g.RemoveNode(n)
		}
		order.Emit(batch)
		for _, o := range r.observers {
			o.OnLeaves(batch)
		}
	}
}

type candidate struct {
	pos   int
	pair  dag.Pair
	value float64
}

func (c candidate) less(o candidate) bool {
	if c.value != o.value {
		return c.value < o.value
	}
	if c.pair.Source != o.pair.Source {
		return c.pair.Source < o.pair.Source
	}
	return c.pos < o.pos
}

// value is cost / gain of node n on the live graph.
func (r *Resolver) value(g *dag.Graph, n int) float64 {
	var cost float64
	for _, e := range g.OutEdges(n) {
		cost += r.weighting.weight(g.Edge(e).Link)
	}
	return cost / float64(g.InDegree(n))
}

// breakCycle cuts the cheapest step of cycle and stashes what it removed.
func (r *Resolver) breakCycle(g *dag.Graph, cycle []dag.Pair, stash *Stash) Round {
	best := candidate{pos: 0, pair: cycle[0], value: r.value(g, cycle[0].Source)}
	for i := 1; i < len(cycle); i++ {
		c := candidate{pos: i, pair: cycle[i], value: r.value(g, cycle[i].Source)}
		if c.less(best) {
			best = c
		}
	}

	round := Round{
		Cycle: make([]Hop, 0, len(cycle)),
		Cut:   Hop{Source: g.ID(best.pair.Source), Target: g.ID(best.pair.Target)},
		Value: best.value,
	}
	for _, p := range cycle {
		round.Cycle = append(round.Cycle, Hop{Source: g.ID(p.Source), Target: g.ID(p.Target)})
	}

	removed := g.RemoveEdgesBetween(best.pair.Source, best.pair.Target)
	round.Edges = len(removed)

	seen := make(map[link.Identity]struct{}, len(removed))
	for _, e := range removed {
		l := g.Edge(e).Link
		if _, dup := seen[l.Identity()]; !dup {
			seen[l.Identity()] = struct{}{}
			round.Stashed = append(round.Stashed, l.Identity())
		}
		if l.Kind() == link.KindGroup {
			round.Phantoms += len(g.RemovePhantoms(best.pair.Source, best.pair.Target, l.Identity()))
		}
	}
	stash.Add(round.Cut.Source, round.Stashed...)
	return round
}
