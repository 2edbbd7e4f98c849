// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package link

import "github.com/google/uuid"

// RecordID identifies a record within one batch.
type RecordID string

// Identity identifies one logical relationship value.
type Identity string

// NewIdentity mints a random identity for links whose source format carries none.
func NewIdentity() Identity {
	return Identity(uuid.NewString())
}

// Kind distinguishes the two link shapes.
type Kind int

const (
	// KindSingle is a link with exactly one target.
	KindSingle Kind = iota
	// KindGroup is a link that fans out to a set of targets.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Link is the capability shared by both link kinds.
type Link interface {
	Identity() Identity
	Source() RecordID
	// Targets returns the distinct targets in first-seen order.
	Targets() []RecordID
	Kind() Kind
}

// Single is one atomic, single-valued reference.
type Single struct {
	From RecordID
	To   RecordID
	ID   Identity
}

func (s Single) Identity() Identity  { return s.ID }
func (s Single) Source() RecordID    { return s.From }
func (s Single) Targets() []RecordID { return []RecordID{s.To} }
func (s Single) Kind() Kind          { return KindSingle }

// Group is one value referencing several records. Deferring it defers every
// target at once.
type Group struct {
	From RecordID
	To   []RecordID
	ID   Identity
}

func (g Group) Identity() Identity { return g.ID }
func (g Group) Source() RecordID   { return g.From }
func (g Group) Kind() Kind         { return KindGroup }

// Targets collapses duplicates: the same record named twice in one value is
// still one reference.
func (g Group) Targets() []RecordID {
	seen := make(map[RecordID]struct{}, len(g.To))
	out := make([]RecordID, 0, len(g.To))
	for _, t := range g.To {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
