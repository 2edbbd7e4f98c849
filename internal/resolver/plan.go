// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolver

import "github.com/specialistvlad/stashgrid/internal/link"

// Hop is one (source, target) step of a cycle, by record id.
type Hop struct {
	Source link.RecordID `json:"source" yaml:"source" msgpack:"source"`
	Target link.RecordID `json:"target" yaml:"target" msgpack:"target"`
}

// Round describes one cycle-breaking step.
type Round struct {
	// Number starts at 1.
	Number int `json:"number" yaml:"number" msgpack:"number"`
	// Cycle is the cycle that was found, closing back on its first source.
	Cycle []Hop `json:"cycle" yaml:"cycle" msgpack:"cycle"`
	// Cut is the cycle step whose edges were removed.
	Cut Hop `json:"cut" yaml:"cut" msgpack:"cut"`
	// Value is cost / gain of the cut source at the time of the cut.
	Value float64 `json:"value" yaml:"value" msgpack:"value"`
	// Stashed lists the distinct identities of the removed edges.
	Stashed []link.Identity `json:"stashed" yaml:"stashed" msgpack:"stashed"`
	// Edges is the number of edges removed between the cut pair.
	Edges int `json:"edges" yaml:"edges" msgpack:"edges"`
	// Phantoms is the number of sibling group edges removed with them.
	Phantoms int `json:"phantoms" yaml:"phantoms" msgpack:"phantoms"`
}

// Plan is the result of resolving one batch.
type Plan struct {
	// Order is a permutation of the batch's records in creation order.
	Order []link.RecordID
	// Batches are the leaf batches that make up Order.
	Batches [][]link.RecordID
	Stash   *Stash
	Rounds  []Round
	// Cut counts edges removed by cycle breaking, excluding phantoms. It
	// always equals Stash.Len().
	Cut      int
	Phantoms int
}

// Step is one record creation: the record and the identities to leave out.
type Step struct {
	Record link.RecordID
	Omit   []link.Identity
}

// Steps lists the records in creation order with their stashed identities.
func (p *Plan) Steps() []Step {
	out := make([]Step, 0, len(p.Order))
	for _, id := range p.Order {
		out = append(out, Step{Record: id, Omit: p.Stash.Identities(id)})
	}
	return out
}

// Position returns a record-to-index map of Order.
func (p *Plan) Position() map[link.RecordID]int {
	pos := make(map[link.RecordID]int, len(p.Order))
	for i, id := range p.Order {
		pos[id] = i
	}
	return pos
}
