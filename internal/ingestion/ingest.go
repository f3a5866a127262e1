package ingestion

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"exo-sense/internal/domain"
)

// ErrNoFilenameRule is returned when IngestOptions names neither a
// filename column nor a filename template.
var ErrNoFilenameRule = errors.New("either FilenameColumn or FilenameTemplate must be set")

// LabeledLightCurve pairs a light curve with its binary label and the
// catalog metadata it came from.
type LabeledLightCurve struct {
	Curve       domain.LightCurve
	Label       int
	TargetID    string
	SourcePath  string
	Disposition string
	Survey      string
}

// IngestOptions configures IngestLightCurves.
type IngestOptions struct {
	CurveDir string
	// FilenameColumn names a catalog extra column holding the curve file
	// name. FilenameTemplate is used instead when the column is unset,
	// with "{target_id}" substituted, e.g. "{target_id}.csv".
	FilenameColumn   string
	FilenameTemplate string
	// MinSamples drops curves shorter than this after cleaning.
	MinSamples int
	Curve      CurveOptions
	Logger     *log.Logger
}

// IngestLightCurves joins catalog rows to their curve files and returns
// the usable labeled curves. Rows with missing files or unreadable
// curves are skipped with a log line, not fatal: the caller decides
// whether an empty result is an error.
func IngestLightCurves(catalog []CatalogRow, opts IngestOptions) ([]LabeledLightCurve, error) {
	if opts.FilenameColumn == "" && opts.FilenameTemplate == "" {
		return nil, ErrNoFilenameRule
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if _, err := os.Stat(opts.CurveDir); err != nil {
		return nil, fmt.Errorf("curve directory: %w", err)
	}

	var ingested []LabeledLightCurve
	for _, entry := range catalog {
		filename := curveFilename(entry, opts)
		if filename == "" {
			logger.Printf("skipping %s: no filename information", entry.TargetID)
			continue
		}

		curvePath := filepath.Join(opts.CurveDir, filename)
		if _, err := os.Stat(curvePath); err != nil {
			logger.Printf("skipping %s: curve file not found at %s", entry.TargetID, curvePath)
			continue
		}

		curve, err := LoadLightCurveCSV(curvePath, opts.Curve)
		if err != nil {
			logger.Printf("skipping %s: %v", entry.TargetID, err)
			continue
		}
		if curve.SampleCount() < opts.MinSamples {
			logger.Printf("skipping %s: %d samples below minimum %d",
				entry.TargetID, curve.SampleCount(), opts.MinSamples)
			continue
		}

		ingested = append(ingested, LabeledLightCurve{
			Curve:       curve,
			Label:       entry.Label,
			TargetID:    entry.TargetID,
			SourcePath:  curvePath,
			Disposition: entry.Disposition,
			Survey:      entry.Survey,
		})
	}

	logger.Printf("ingested %d of %d catalog entries", len(ingested), len(catalog))
	return ingested, nil
}

func curveFilename(entry CatalogRow, opts IngestOptions) string {
	if opts.FilenameColumn != "" {
		return strings.TrimSpace(entry.Extra[opts.FilenameColumn])
	}
	return strings.ReplaceAll(opts.FilenameTemplate, "{target_id}", entry.TargetID)
}
