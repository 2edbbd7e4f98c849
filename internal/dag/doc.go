// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package dag holds the dependency graph of one planning batch.
//
// Records become nodes addressed by dense integer indices, assigned in the
// order the records were given. Links become edges pointing from the record
// that holds the reference to the record it references, so an edge means
// "source cannot be created before target exists". Several edges may connect
// the same pair of nodes, and several edges may share one link identity when a
// group link fans out.
//
// The graph only ever shrinks: nodes and edges are removed, never re-added.
// Removed slots stay in the arena and are skipped, so indices stay stable for
// the whole run and nothing holds a pointer to a node.
//
// A Graph is owned by a single caller and is not safe for concurrent use.
package dag
