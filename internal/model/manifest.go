// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Manifest structure, the root container for all records
// loaded from a user's .hcl files. Records of one import may be spread across
// many files and directories; references between them are only resolved once
// every file has been read.
package model

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/stashgrid/internal/ctxlog"
	"github.com/specialistvlad/stashgrid/internal/fsutil"
	"github.com/specialistvlad/stashgrid/internal/link"
)

// Manifest holds every record of one import.
type Manifest struct {
	Records []*Record
}

// NewManifest creates and returns an initialized Manifest.
func NewManifest() *Manifest {
	return &Manifest{
		Records: []*Record{},
	}
}

// hclManifestFile represents the top-level structure of a manifest file.
type hclManifestFile struct {
	Records []*hclRecord `hcl:"record,block"`
}

// newRecordsFromHCL parses a single HCL file and returns the records in it.
func newRecordsFromHCL(filePath string, parser *hclparse.Parser) ([]*Record, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsedFile hclManifestFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	records := make([]*Record, 0, len(parsedFile.Records))
	for _, parsed := range parsedFile.Records {
		rec, recDiags := NewRecordFromHCL(parsed, filePath)
		if recDiags.HasErrors() {
			return nil, fmt.Errorf("error parsing record %q in file %s: %w", parsed.ID, filePath, recDiags)
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadManifestRecursively finds and parses all HCL files under path. path may
// also name a single .hcl file.
func LoadManifestRecursively(ctx context.Context, path string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifest from path", "path", path)

	files, err := fsutil.ResolvePath(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find manifest files in %s: %w", path, err)
	}

	m := NewManifest()
	if len(files) == 0 {
		logger.Warn("No .hcl manifest files found in path, returning empty manifest", "path", path)
		return m, nil
	}

	parser := hclparse.NewParser()
	for _, file := range files {
		records, err := newRecordsFromHCL(file, parser)
		if err != nil {
			return nil, err
		}
		logger.Debug("Parsed manifest file.", "path", file, "record_count", len(records))
		m.Records = append(m.Records, records...)
	}
	return m, nil
}

// Batch converts the manifest into planner input. References without a fixed
// identity get a fresh random one.
func (m *Manifest) Batch() *link.Batch {
	b := &link.Batch{Records: make([]link.RecordID, 0, len(m.Records))}
	for _, rec := range m.Records {
		b.Records = append(b.Records, rec.ID)
		for _, ref := range rec.References {
			id := ref.ID
			if id == "" {
				id = link.NewIdentity()
			}
			switch ref.Kind {
			case link.KindSingle:
				b.Singles = append(b.Singles, link.Single{From: rec.ID, To: ref.Targets[0], ID: id})
			case link.KindGroup:
				b.Groups = append(b.Groups, link.Group{From: rec.ID, To: ref.Targets, ID: id})
			}
		}
	}
	return b
}

// LoadBatchRecursively loads all manifests under path and returns their batch.
func LoadBatchRecursively(ctx context.Context, path string) (*link.Batch, error) {
	m, err := LoadManifestRecursively(ctx, path)
	if err != nil {
		return nil, err
	}
	b := m.Batch()
	ctxlog.FromContext(ctx).Debug("Manifest converted to batch.", "record_count", len(b.Records), "edge_count", b.EdgeCount())
	return b, nil
}
