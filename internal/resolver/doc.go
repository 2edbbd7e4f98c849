// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package resolver turns a dependency graph that may contain cycles into an
// upload plan: an order in which every record can be created, and a stash of
// link values that must be left out at creation time and patched in later.
//
// The resolver repeatedly strips leaves (records with no outstanding
// references) into the order. When only cycles remain it picks one cycle,
// scores each record on it by cost / gain, where cost is the weight of all of
// the record's outgoing references and gain is the number of references
// pointing at it, and cuts the edges of the cheapest record's cycle step.
// Cutting one edge of a group value cuts the whole value.
//
// The result is deterministic: ties are broken by ascending record position
// in the batch, then by position in the cycle.
package resolver
