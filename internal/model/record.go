// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Record structure and its HCL decoding shape.
//
// A record block only names references; the referenced records may live in
// any manifest of the same import, so targets are not resolved here. The
// graph builder rejects targets that no manifest declares.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/stashgrid/internal/link"
	"github.com/zclconf/go-cty/cty"
)

// Record is one record of the import together with its references.
type Record struct {
	ID            link.RecordID
	FSInformation *FSInfo
	References    []*Reference
}

// Reference is one relationship value held by a record.
type Reference struct {
	Property string
	Kind     link.Kind
	Targets  []link.RecordID
	// ID is the fixed identity given in the manifest, if any.
	ID link.Identity
}

// hclRecord is the decoding target of a `record` block.
type hclRecord struct {
	ID    string     `hcl:"id,label"`
	Links []*hclLink `hcl:"link,block"`
	Texts []*hclText `hcl:"text,block"`
}

type hclLink struct {
	Property string         `hcl:"property,label"`
	Target   hcl.Expression `hcl:"target,attr"`
	ID       *string        `hcl:"id,optional"`
}

type hclText struct {
	Property string         `hcl:"property,label"`
	Targets  hcl.Expression `hcl:"targets,attr"`
	ID       *string        `hcl:"id,optional"`
}

// NewRecordFromHCL evaluates the target expressions of a decoded record block.
func NewRecordFromHCL(r *hclRecord, filePath string) (*Record, hcl.Diagnostics) {
	rec := &Record{
		ID:            link.RecordID(r.ID),
		FSInformation: NewFSInfo(filePath),
	}

	var diags hcl.Diagnostics
	for _, l := range r.Links {
		target, d := evalString(l.Target)
		diags = append(diags, d...)
		if d.HasErrors() {
			continue
		}
		rec.References = append(rec.References, &Reference{
			Property: l.Property,
			Kind:     link.KindSingle,
			Targets:  []link.RecordID{link.RecordID(target)},
			ID:       identity(l.ID),
		})
	}
	for _, t := range r.Texts {
		targets, d := evalStrings(t.Targets)
		diags = append(diags, d...)
		if d.HasErrors() {
			continue
		}
		rec.References = append(rec.References, &Reference{
			Property: t.Property,
			Kind:     link.KindGroup,
			Targets:  targets,
			ID:       identity(t.ID),
		})
	}
	return rec, diags
}

func identity(id *string) link.Identity {
	if id == nil {
		return ""
	}
	return link.Identity(*id)
}

func evalString(expr hcl.Expression) (string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid target",
			Detail:   fmt.Sprintf("A target must be a string, got %s.", val.Type().FriendlyName()),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return val.AsString(), nil
}

func evalStrings(expr hcl.Expression) ([]link.RecordID, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	ty := val.Type()
	if val.IsNull() || !val.IsKnown() || !(ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid targets",
			Detail:   fmt.Sprintf("Targets must be a list of strings, got %s.", ty.FriendlyName()),
			Subject:  expr.Range().Ptr(),
		}}
	}

	var out []link.RecordID
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() || !v.IsKnown() || v.Type() != cty.String {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid targets",
				Detail:   fmt.Sprintf("Every target must be a string, got %s.", v.Type().FriendlyName()),
				Subject:  expr.Range().Ptr(),
			}}
		}
		out = append(out, link.RecordID(v.AsString()))
	}
	return out, nil
}
