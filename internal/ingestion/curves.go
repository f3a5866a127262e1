package ingestion

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"exo-sense/internal/domain"
)

// Column-name candidates for light-curve CSV files, covering the common
// Kepler/TESS export conventions.
var (
	DefaultTimeColumns = []string{"time", "bjd", "bjd_tdb", "bkjd", "btjd"}
	DefaultFluxColumns = []string{"flux", "pdcsap_flux", "sap_flux", "flux_norm", "normalized_flux"}
)

// CurveOptions configures LoadLightCurveCSV. Empty column lists fall back
// to the defaults.
type CurveOptions struct {
	TimeColumns []string
	FluxColumns []string
	Comment     string // defaults to "#"
}

// LoadLightCurveCSV reads one light curve from a CSV file, detecting the
// time and flux columns among known candidates. Non-numeric cells become
// NaN and are clipped; the returned curve is clean and time-sorted.
func LoadLightCurveCSV(path string, opts CurveOptions) (domain.LightCurve, error) {
	if len(opts.TimeColumns) == 0 {
		opts.TimeColumns = DefaultTimeColumns
	}
	if len(opts.FluxColumns) == 0 {
		opts.FluxColumns = DefaultFluxColumns
	}
	if opts.Comment == "" {
		opts.Comment = "#"
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.LightCurve{}, fmt.Errorf("open light curve: %w", err)
	}
	defer file.Close()

	header, rows, err := readCSV(file, opts.Comment)
	if err != nil {
		return domain.LightCurve{}, fmt.Errorf("parse light curve %s: %w", path, err)
	}
	if len(rows) == 0 {
		return domain.LightCurve{}, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	timeIdx := findColumn(header, opts.TimeColumns)
	fluxIdx := findColumn(header, opts.FluxColumns)
	if timeIdx < 0 || fluxIdx < 0 {
		return domain.LightCurve{}, fmt.Errorf(
			"%w: could not identify time/flux columns in %s (available: %v)",
			ErrMissingColumn, path, header)
	}

	time := make([]float64, 0, len(rows))
	flux := make([]float64, 0, len(rows))
	for _, row := range rows {
		if len(row) <= timeIdx || len(row) <= fluxIdx {
			continue
		}
		time = append(time, parseFloat(row[timeIdx]))
		flux = append(flux, parseFloat(row[fluxIdx]))
	}
	if len(time) == 0 {
		return domain.LightCurve{}, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	curve, err := domain.FromSequences(time, flux)
	if err != nil {
		return domain.LightCurve{}, err
	}
	curve, err = curve.ClipNonFinite()
	if err != nil {
		return domain.LightCurve{}, fmt.Errorf("%s: %w", path, err)
	}
	return curve.EnsureSorted(), nil
}

// parseFloat coerces a cell to float64, NaN for anything non-numeric so
// the sample is removed by cleaning.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
