// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model reads record manifests written in HCL and turns them into a
// link batch for the planner.
//
// # Core Concepts
//
//   - Manifest: every record found in one or more .hcl files, in file order and
//     then block order.
//
//   - Record: one `record "<id>"` block. It carries the references the record
//     makes to other records of the same import.
//
//   - Reference: a `link` block (one target, a single-valued property) or a
//     `text` block (a rich-text value that mentions several records at once).
//
//   - FSInfo: the file a record came from, used in error messages.
//
// A manifest looks like this:
//
//	record "book_1" {
//	  link "hasAuthor" { target = "person_1" }
//	  text "description" { targets = ["person_1", "book_2"] }
//	}
//
// Target expressions are evaluated without variables or functions; they must
// produce a string or a list of strings.
package model
