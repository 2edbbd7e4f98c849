// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package report encodes an upload plan for downstream tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/stashgrid/internal/link"
	"github.com/specialistvlad/stashgrid/internal/resolver"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatHCL     Format = "hcl"
	FormatMsgpack Format = "msgpack"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatHCL, FormatMsgpack}

// ParseFormat maps a configuration value to a Format. The empty string means
// json.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatJSON, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Document is the encoded shape of a plan.
type Document struct {
	UploadOrder  []link.RecordID                   `json:"upload_order" yaml:"upload_order" msgpack:"upload_order"`
	Stash        map[link.RecordID][]link.Identity `json:"stash" yaml:"stash" msgpack:"stash"`
	StashCount   int                               `json:"stash_count" yaml:"stash_count" msgpack:"stash_count"`
	PhantomCount int                               `json:"phantom_count" yaml:"phantom_count" msgpack:"phantom_count"`
	Rounds       []resolver.Round                  `json:"rounds" yaml:"rounds" msgpack:"rounds"`
}

// NewDocument builds the document for plan.
func NewDocument(plan *resolver.Plan) *Document {
	d := &Document{
		UploadOrder:  plan.Order,
		Stash:        plan.Stash.Map(),
		StashCount:   plan.Stash.Len(),
		PhantomCount: plan.Phantoms,
		Rounds:       plan.Rounds,
	}
	if d.UploadOrder == nil {
		d.UploadOrder = []link.RecordID{}
	}
	if d.Rounds == nil {
		d.Rounds = []resolver.Round{}
	}
	return d
}

// Write encodes plan to w in the given format.
func Write(w io.Writer, format Format, plan *resolver.Plan) error {
	doc := NewDocument(plan)

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("failed to encode msgpack report: %w", err)
		}
	case FormatHCL:
		if _, err := w.Write(encodeHCL(doc)); err != nil {
			return fmt.Errorf("failed to write hcl report: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
