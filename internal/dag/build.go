// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dag

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stashgrid/internal/ctxlog"
	"github.com/specialistvlad/stashgrid/internal/link"
)

// Build validates a batch and constructs its dependency graph. Records become
// nodes in input order; every link contributes one edge per distinct target.
func Build(ctx context.Context, batch *link.Batch) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	if err := batch.Validate(); err != nil {
		return nil, fmt.Errorf("error validating link batch: %w", err)
	}

	g := New()
	for _, id := range batch.Records {
		if _, err := g.AddNode(id); err != nil {
			return nil, err
		}
	}
	logger.Debug("Build: Node creation complete.", "node_count", g.NodeCount())

	for _, l := range batch.Links() {
		src, _ := g.Index(l.Source())
		for _, t := range l.Targets() {
			dst, _ := g.Index(t)
			if _, err := g.AddEdge(src, dst, l); err != nil {
				return nil, fmt.Errorf("error linking %q: %w", l.Identity(), err)
			}
		}
	}
	logger.Debug("Build: Edge linking complete.", "edge_count", g.EdgeCount())

	logger.Debug("Build: Graph construction successful.")
	return g, nil
}
