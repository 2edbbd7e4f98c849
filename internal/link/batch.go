// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package link

import (
	"errors"
	"fmt"
)

// ErrPrecondition is wrapped by every error that reports malformed input.
// Such a batch must be rejected before any record is created.
var ErrPrecondition = errors.New("batch precondition violated")

var (
	ErrEmptyRecord       = fmt.Errorf("%w: empty record id", ErrPrecondition)
	ErrDuplicateRecord   = fmt.Errorf("%w: duplicate record id", ErrPrecondition)
	ErrEmptyIdentity     = fmt.Errorf("%w: empty link identity", ErrPrecondition)
	ErrDuplicateIdentity = fmt.Errorf("%w: duplicate link identity", ErrPrecondition)
	ErrDanglingReference = fmt.Errorf("%w: link references unknown record", ErrPrecondition)
)

// Batch is everything the planner needs to know about one import: the full
// record universe, including records without links, and all links.
type Batch struct {
	Records []RecordID
	Singles []Single
	Groups  []Group
}

// Links returns all links, singles first, each kind in input order.
func (b *Batch) Links() []Link {
	out := make([]Link, 0, len(b.Singles)+len(b.Groups))
	for _, s := range b.Singles {
		out = append(out, s)
	}
	for _, g := range b.Groups {
		out = append(out, g)
	}
	return out
}

// EdgeCount is the number of edges the batch expands to.
func (b *Batch) EdgeCount() int {
	n := len(b.Singles)
	for _, g := range b.Groups {
		n += len(g.Targets())
	}
	return n
}

// Validate reports the first precondition violation found, naming the
// offending record or identity.
func (b *Batch) Validate() error {
	known := make(map[RecordID]struct{}, len(b.Records))
	for _, id := range b.Records {
		if id == "" {
			return ErrEmptyRecord
		}
		if _, dup := known[id]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateRecord, id)
		}
		known[id] = struct{}{}
	}

	identities := make(map[Identity]RecordID)
	for _, l := range b.Links() {
		if l.Identity() == "" {
			return fmt.Errorf("%w: link from %q", ErrEmptyIdentity, l.Source())
		}
		if prev, dup := identities[l.Identity()]; dup {
			return fmt.Errorf("%w: %q used by links from %q and %q", ErrDuplicateIdentity, l.Identity(), prev, l.Source())
		}
		identities[l.Identity()] = l.Source()

		if _, ok := known[l.Source()]; !ok {
			return fmt.Errorf("%w: source %q of link %q", ErrDanglingReference, l.Source(), l.Identity())
		}
		for _, t := range l.Targets() {
			if _, ok := known[t]; !ok {
				return fmt.Errorf("%w: %q -> %q (link %q)", ErrDanglingReference, l.Source(), t, l.Identity())
			}
		}
	}
	return nil
}
