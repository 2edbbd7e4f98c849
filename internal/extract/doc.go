// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package extract reads the links between resources of a DSP-style XML data
// file.
//
// Every <resource id="..."> element is a record. A <resptr-prop> holds one
// <resptr> per single-valued reference. A <text-prop> holds rich-text <text>
// values; each value that mentions other resources through
// href="IRI:<id>:IRI" becomes one group link, however many resources it
// mentions. References to resources that already exist on the server
// (absolute http://rdfh.ch/ IRIs) do not constrain the upload order and are
// skipped.
package extract
