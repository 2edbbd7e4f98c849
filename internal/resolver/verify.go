// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolver

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/stashgrid/internal/link"
)

// ErrInvalidPlan is wrapped by every error returned from Verify.
var ErrInvalidPlan = errors.New("invalid plan")

// Verify checks plan against the batch it was computed from: the order is a
// permutation of the records, every link that was not stashed has all of its
// targets created before its source, and every stashed identity belongs to a
// link of that source.
func Verify(batch *link.Batch, plan *Plan) error {
	if len(plan.Order) != len(batch.Records) {
		return fmt.Errorf("%w: order has %d records, batch has %d", ErrInvalidPlan, len(plan.Order), len(batch.Records))
	}
	pos := plan.Position()
	if len(pos) != len(plan.Order) {
		return fmt.Errorf("%w: order contains duplicates", ErrInvalidPlan)
	}
	for _, id := range batch.Records {
		if _, ok := pos[id]; !ok {
			return fmt.Errorf("%w: record %q missing from order", ErrInvalidPlan, id)
		}
	}

	owned := make(map[link.Identity]link.RecordID)
	for _, l := range batch.Links() {
		owned[l.Identity()] = l.Source()
		if plan.Stash.Contains(l.Source(), l.Identity()) {
			continue
		}
		for _, t := range l.Targets() {
			if t == l.Source() {
				return fmt.Errorf("%w: self-reference %q of %q is not stashed", ErrInvalidPlan, l.Identity(), t)
			}
			if pos[t] > pos[l.Source()] {
				return fmt.Errorf("%w: %q is created before its target %q (link %q)", ErrInvalidPlan, l.Source(), t, l.Identity())
			}
		}
	}

	for _, src := range plan.Stash.Records() {
		for _, id := range plan.Stash.Identities(src) {
			if owner, ok := owned[id]; !ok || owner != src {
				return fmt.Errorf("%w: stashed identity %q does not belong to %q", ErrInvalidPlan, id, src)
			}
		}
	}
	return nil
}
