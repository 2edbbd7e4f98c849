// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dag

import (
	"errors"
	"fmt"
	"slices"
)

// ErrCycle is returned by TopologicalOrder when the graph is not acyclic.
var ErrCycle = errors.New("graph contains a cycle")

// Leaves returns the present nodes with no live outgoing edge, ascending.
func (g *Graph) Leaves() []int {
	var out []int
	for i, ok := range g.present {
		if ok && g.outDeg[i] == 0 {
			out = append(out, i)
		}
	}
	return out
}

// TopologicalOrder returns the present nodes ordered so every node comes after
// all of its targets. Nodes that become free in the same round are emitted in
// ascending index order. The graph is not modified.
func (g *Graph) TopologicalOrder() ([]int, error) {
	remaining := make([]int, len(g.outDeg))
	copy(remaining, g.outDeg)

	order := make([]int, 0, g.nodes)
	batch := g.Leaves()
	for len(batch) > 0 {
		order = append(order, batch...)
		var next []int
		freed := make(map[int]bool)
		for _, n := range batch {
			for _, e := range g.in[n] {
				if !g.live[e] {
					continue
				}
				src := g.edges[e].Source
				remaining[src]--
				if remaining[src] == 0 && !freed[src] {
					freed[src] = true
					next = append(next, src)
				}
			}
		}
		slices.Sort(next)
		batch = next
	}

	if len(order) != g.nodes {
		return nil, fmt.Errorf("%w: %d of %d nodes could not be ordered", ErrCycle, g.nodes-len(order), g.nodes)
	}
	return order, nil
}
