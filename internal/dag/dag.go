// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dag

import (
	"fmt"

	"github.com/specialistvlad/stashgrid/internal/link"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		index: make(map[link.RecordID]int),
	}
}

// AddNode registers a record and returns its index. Indices are assigned in
// call order starting at zero.
func (g *Graph) AddNode(id link.RecordID) (int, error) {
	if _, ok := g.index[id]; ok {
		return 0, fmt.Errorf("%w: %q", link.ErrDuplicateRecord, id)
	}
	i := len(g.ids)
	g.ids = append(g.ids, id)
	g.index[id] = i
	g.present = append(g.present, true)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.outDeg = append(g.outDeg, 0)
	g.inDeg = append(g.inDeg, 0)
	g.nodes++
	return i, nil
}

// AddEdge adds an edge from source to target carrying l. Parallel edges and
// self-loops are allowed.
func (g *Graph) AddEdge(source, target int, l link.Link) (EdgeID, error) {
	if !g.HasNode(source) {
		return 0, fmt.Errorf("source node not found: %d", source)
	}
	if !g.HasNode(target) {
		return 0, fmt.Errorf("destination node not found: %d", target)
	}
	e := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{Source: source, Target: target, Link: l})
	g.live = append(g.live, true)
	g.out[source] = append(g.out[source], e)
	g.in[target] = append(g.in[target], e)
	g.outDeg[source]++
	g.inDeg[target]++
	g.edgeCount++
	return e, nil
}

// Index returns the node index of a record.
func (g *Graph) Index(id link.RecordID) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// ID returns the record bound to node i. It panics if i was never added.
func (g *Graph) ID(i int) link.RecordID {
	return g.ids[i]
}

// Len is the number of nodes ever added, removed ones included.
func (g *Graph) Len() int { return len(g.ids) }

// NodeCount is the number of nodes still present.
func (g *Graph) NodeCount() int { return g.nodes }

// EdgeCount is the number of live edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Empty reports whether every node has been removed.
func (g *Graph) Empty() bool { return g.nodes == 0 }

// HasNode reports whether node i exists and has not been removed.
func (g *Graph) HasNode(i int) bool {
	return i >= 0 && i < len(g.present) && g.present[i]
}

// Nodes returns the present nodes in ascending index order.
func (g *Graph) Nodes() []int {
	out := make([]int, 0, g.nodes)
	for i, ok := range g.present {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// OutDegree is the number of live edges leaving node i.
func (g *Graph) OutDegree(i int) int { return g.outDeg[i] }

// InDegree is the number of live edges entering node i.
func (g *Graph) InDegree(i int) int { return g.inDeg[i] }

// Edge returns the edge stored under e, live or not.
func (g *Graph) Edge(e EdgeID) Edge { return g.edges[e] }

// Live reports whether e has not been removed.
func (g *Graph) Live(e EdgeID) bool { return g.live[e] }

// OutEdges returns the live edges leaving node i in insertion order.
func (g *Graph) OutEdges(i int) []EdgeID { return g.filterLive(g.out[i]) }

// InEdges returns the live edges entering node i in insertion order.
func (g *Graph) InEdges(i int) []EdgeID { return g.filterLive(g.in[i]) }

func (g *Graph) filterLive(ids []EdgeID) []EdgeID {
	out := make([]EdgeID, 0, len(ids))
	for _, e := range ids {
		if g.live[e] {
			out = append(out, e)
		}
	}
	return out
}

// RemoveEdge removes a single edge. It returns false if e was already gone.
func (g *Graph) RemoveEdge(e EdgeID) bool {
	if !g.live[e] {
		return false
	}
	g.live[e] = false
	edge := g.edges[e]
	g.outDeg[edge.Source]--
	g.inDeg[edge.Target]--
	g.edgeCount--
	return true
}

// RemoveNode removes node i together with every live edge touching it and
// returns the removed edges. Removing an absent node is a no-op.
func (g *Graph) RemoveNode(i int) []EdgeID {
	if !g.HasNode(i) {
		return nil
	}
	var removed []EdgeID
	for _, e := range g.out[i] {
		if g.RemoveEdge(e) {
			removed = append(removed, e)
		}
	}
	for _, e := range g.in[i] {
		if g.RemoveEdge(e) {
			removed = append(removed, e)
		}
	}
	g.present[i] = false
	g.nodes--
	g.out[i], g.in[i] = nil, nil
	return removed
}

// RemoveEdgesBetween removes every parallel edge from source to target and
// returns them in insertion order.
func (g *Graph) RemoveEdgesBetween(source, target int) []EdgeID {
	if !g.HasNode(source) {
		return nil
	}
	var removed []EdgeID
	for _, e := range g.out[source] {
		if g.live[e] && g.edges[e].Target == target {
			g.RemoveEdge(e)
			removed = append(removed, e)
		}
	}
	return removed
}

// RemovePhantoms removes the sibling edges of a group value: live edges from
// source carrying identity id whose target is not the given target and is
// still present. It returns the removed edges.
func (g *Graph) RemovePhantoms(source, target int, id link.Identity) []EdgeID {
	if !g.HasNode(source) {
		return nil
	}
	var removed []EdgeID
	for _, e := range g.out[source] {
		edge := g.edges[e]
		if !g.live[e] || edge.Target == target || !g.HasNode(edge.Target) {
			continue
		}
		if edge.Link.Identity() != id {
			continue
		}
		g.RemoveEdge(e)
		removed = append(removed, e)
	}
	return removed
}
