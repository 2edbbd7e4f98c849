// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package link defines the input model of a planning batch: the universe of
// record ids and the links between them.
//
// # Core Concepts
//
//   - RecordID: opaque id of one record in the batch.
//
//   - Identity: opaque token naming one relationship value. When a value is
//     deferred, it is deferred by identity, so every edge generated from that
//     value goes with it.
//
//   - Single: one value that references exactly one other record.
//
//   - Group: one value (for example a formatted text with several embedded
//     references) that references a set of records under a single identity.
//
// Both kinds satisfy the Link interface. The graph builder fans a Link out into
// one edge per target; nothing downstream needs to know which kind it holds
// beyond comparing identities.
package link
