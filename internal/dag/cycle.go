// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dag

const (
	white = iota
	gray
	black
)

type frame struct {
	node  int
	edges []EdgeID
	next  int
}

// FindCycle returns one directed cycle of the live graph as the sequence of
// (source, target) steps that closes it, or nil if the graph is acyclic.
//
// The search is an iterative depth-first walk. Roots are tried in ascending
// index order and out-edges in insertion order, so the result is
// deterministic for a given graph. A self-loop yields a single pair (n, n).
func (g *Graph) FindCycle() []Pair {
	color := make([]int, len(g.ids))
	for _, root := range g.Nodes() {
		if color[root] != white {
			continue
		}
		if c := g.walk(root, color); c != nil {
			return c
		}
	}
	return nil
}

func (g *Graph) walk(root int, color []int) []Pair {
	stack := []frame{{node: root, edges: g.OutEdges(root)}}
	color[root] = gray

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.edges) {
			color[top.node] = black
			stack = stack[:len(stack)-1]
			continue
		}
		target := g.edges[top.edges[top.next]].Target
		top.next++

		switch color[target] {
		case white:
			color[target] = gray
			stack = append(stack, frame{node: target, edges: g.OutEdges(target)})
		case gray:
			return closeCycle(stack, target)
		}
	}
	return nil
}

// closeCycle extracts the path from the gray node back to the top of the
// stack and appends the back edge.
func closeCycle(stack []frame, target int) []Pair {
	start := len(stack) - 1
	for stack[start].node != target {
		start--
	}
	cycle := make([]Pair, 0, len(stack)-start)
	for i := start; i < len(stack)-1; i++ {
		cycle = append(cycle, Pair{Source: stack[i].node, Target: stack[i+1].node})
	}
	return append(cycle, Pair{Source: stack[len(stack)-1].node, Target: target})
}

// HasCycle reports whether the live graph contains a directed cycle.
func (g *Graph) HasCycle() bool {
	return g.FindCycle() != nil
}
