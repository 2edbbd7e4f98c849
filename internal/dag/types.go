// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dag

import "github.com/specialistvlad/stashgrid/internal/link"

// EdgeID addresses one edge in the graph's arena.
type EdgeID int

// Edge is one dependency: Source holds a reference to Target.
type Edge struct {
	Source int
	Target int
	Link   link.Link
}

// Pair is a (source, target) step of a cycle.
type Pair struct {
	Source int
	Target int
}

// Graph is a directed multigraph over the records of one batch.
type Graph struct {
	// ids maps a node index to its record id; index is the reverse mapping.
	ids   []link.RecordID
	index map[link.RecordID]int
	// present is false once a node has been removed.
	present []bool
	nodes   int

	// edges is the arena; live marks edges that have not been removed.
	edges     []Edge
	live      []bool
	edgeCount int

	// out and in list edge ids per node, including removed ones.
	out [][]EdgeID
	in  [][]EdgeID
	// outDeg and inDeg count live edges only.
	outDeg []int
	inDeg  []int
}
