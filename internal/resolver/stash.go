// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package resolver

import (
	"slices"

	"github.com/specialistvlad/stashgrid/internal/link"
)

// Stash maps a source record to the link identities that must be omitted when
// the record is created. Lists only grow; identities keep the order in which
// they were stashed.
type Stash struct {
	entries map[link.RecordID][]link.Identity
	pairs   int
}

// NewStash creates and returns an empty Stash.
func NewStash() *Stash {
	return &Stash{entries: make(map[link.RecordID][]link.Identity)}
}

// Add appends identities to the list of source.
func (s *Stash) Add(source link.RecordID, ids ...link.Identity) {
	if len(ids) == 0 {
		return
	}
	s.entries[source] = append(s.entries[source], ids...)
	s.pairs += len(ids)
}

// Identities returns the identities stashed for id, in stash order.
func (s *Stash) Identities(id link.RecordID) []link.Identity {
	return slices.Clone(s.entries[id])
}

// Contains reports whether identity is stashed for id.
func (s *Stash) Contains(id link.RecordID, identity link.Identity) bool {
	return slices.Contains(s.entries[id], identity)
}

// Records returns the records that have stashed identities, sorted.
func (s *Stash) Records() []link.RecordID {
	out := make([]link.RecordID, 0, len(s.entries))
	for id := range s.entries {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Len is the number of (record, identity) pairs.
func (s *Stash) Len() int { return s.pairs }

// Map returns a copy of the stash keyed by record.
func (s *Stash) Map() map[link.RecordID][]link.Identity {
	out := make(map[link.RecordID][]link.Identity, len(s.entries))
	for id, ids := range s.entries {
		out[id] = slices.Clone(ids)
	}
	return out
}
