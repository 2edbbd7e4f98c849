// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolver

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/stashgrid/internal/link"
)

// Order is the upload order built from consecutive leaf batches.
type Order struct {
	ids     []link.RecordID
	batches [][]link.RecordID
	seen    map[link.RecordID]struct{}
}

// NewOrder creates and returns an empty Order.
func NewOrder() *Order {
	return &Order{seen: make(map[link.RecordID]struct{})}
}

// Emit appends one leaf batch. A record emitted twice is a bug in the caller
// and panics.
func (o *Order) Emit(batch []link.RecordID) {
	if len(batch) == 0 {
		return
	}
	for _, id := range batch {
		if _, dup := o.seen[id]; dup {
			panic(fmt.Sprintf("resolver: record %q emitted twice", id))
		}
		o.seen[id] = struct{}{}
	}
	o.ids = append(o.ids, batch...)
	o.batches = append(o.batches, slices.Clone(batch))
}

// IDs returns the full order.
func (o *Order) IDs() []link.RecordID { return slices.Clone(o.ids) }

// Batches returns the leaf batches in emission order.
func (o *Order) Batches() [][]link.RecordID {
	out := make([][]link.RecordID, len(o.batches))
	for i, b := range o.batches {
		out[i] = slices.Clone(b)
	}
	return out
}

// Len is the number of records emitted so far.
func (o *Order) Len() int { return len(o.ids) }
