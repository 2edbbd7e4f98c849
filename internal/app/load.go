package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/stashgrid/internal/ctxlog"
	"github.com/specialistvlad/stashgrid/internal/extract"
	"github.com/specialistvlad/stashgrid/internal/link"
	"github.com/specialistvlad/stashgrid/internal/model"
)

// inputFormat resolves "auto" by looking at the input path.
func inputFormat(path, format string) string {
	if format != "" && format != "auto" {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return "xml"
	}
	return "hcl"
}

// LoadBatch reads the configured input into a batch.
func (a *App) LoadBatch(ctx context.Context) (*link.Batch, error) {
	logger := ctxlog.FromContext(ctx)
	format := inputFormat(a.config.InputPath, a.config.InputFormat)
	logger.Debug("Loading input...", "path", a.config.InputPath, "format", format)

	switch format {
	case "xml":
		f, err := os.Open(a.config.InputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()

		res, err := extract.FromXML(f)
		if err != nil {
			return nil, fmt.Errorf("failed to extract links from %s: %w", a.config.InputPath, err)
		}
		logger.Info("XML input loaded.", "record_count", len(res.Batch.Records), "edge_count", res.Batch.EdgeCount())
		return res.Batch, nil
	default:
		b, err := model.LoadBatchRecursively(ctx, a.config.InputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		logger.Info("Manifest loaded.", "record_count", len(b.Records), "edge_count", b.EdgeCount())
		return b, nil
	}
}
