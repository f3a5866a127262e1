// Package ingestion loads labeled light-curve datasets from disk: a
// catalog CSV in the NASA Exoplanet Archive export format plus one CSV
// file per light curve. It is the collaborator that feeds real training
// data to the core pipeline.
package ingestion

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Ingestion errors.
var (
	ErrMissingColumn = errors.New("required column not found")
	ErrEmptyFile     = errors.New("file contains no data rows")
)

// CatalogRow is one labeled target parsed from a catalog CSV.
type CatalogRow struct {
	TargetID    string
	Label       int
	Disposition string
	Survey      string
	SourcePath  string
	Extra       map[string]string // remaining columns, e.g. curve filenames
}

// CatalogOptions configures LoadCatalog.
type CatalogOptions struct {
	Survey            string
	TargetColumn      string
	DispositionColumn string
	// LabelMap maps disposition values (case-insensitive) to binary
	// labels. Rows with unmapped dispositions are skipped.
	LabelMap map[string]int
	// Comment marks header lines to skip; defaults to "#", the NASA
	// archive convention.
	Comment string
}

// LoadCatalog parses a catalog CSV into labeled rows. Archive exports
// start with comment lines describing the columns, which are skipped.
func LoadCatalog(path string, opts CatalogOptions) ([]CatalogRow, error) {
	if opts.Comment == "" {
		opts.Comment = "#"
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	header, rows, err := readCSV(file, opts.Comment)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	targetIdx := columnIndex(header, opts.TargetColumn)
	dispositionIdx := columnIndex(header, opts.DispositionColumn)
	if targetIdx < 0 || dispositionIdx < 0 {
		return nil, fmt.Errorf("%w: need %q and %q in %s",
			ErrMissingColumn, opts.TargetColumn, opts.DispositionColumn, path)
	}

	labelMap := make(map[string]int, len(opts.LabelMap))
	for disposition, label := range opts.LabelMap {
		labelMap[strings.ToLower(disposition)] = label
	}

	var records []CatalogRow
	for _, row := range rows {
		if len(row) != len(header) {
			continue
		}
		disposition := strings.TrimSpace(row[dispositionIdx])
		label, ok := labelMap[strings.ToLower(disposition)]
		if !ok {
			continue
		}
		target := strings.TrimSpace(row[targetIdx])
		if target == "" {
			continue
		}

		extra := make(map[string]string)
		for i, column := range header {
			if i == targetIdx || i == dispositionIdx {
				continue
			}
			extra[column] = row[i]
		}

		records = append(records, CatalogRow{
			TargetID:    target,
			Label:       label,
			Disposition: disposition,
			Survey:      opts.Survey,
			SourcePath:  path,
			Extra:       extra,
		})
	}
	return records, nil
}

// readCSV parses header and data rows, skipping comment-prefixed lines.
func readCSV(r io.Reader, comment string) (header []string, rows [][]string, err error) {
	var filtered strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), comment) {
			continue
		}
		filtered.WriteString(line)
		filtered.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(strings.NewReader(filtered.String()))
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, ErrEmptyFile
	}
	header = make([]string, len(all[0]))
	for i, column := range all[0] {
		header[i] = strings.TrimSpace(column)
	}
	return header, all[1:], nil
}

// columnIndex finds a column by exact name, -1 when absent.
func columnIndex(header []string, name string) int {
	for i, column := range header {
		if column == name {
			return i
		}
	}
	return -1
}

// findColumn locates the first candidate present in the header,
// case-insensitively. Returns -1 when none match.
func findColumn(header []string, candidates []string) int {
	lowered := make(map[string]int, len(header))
	for i, column := range header {
		key := strings.ToLower(column)
		if _, ok := lowered[key]; !ok {
			lowered[key] = i
		}
	}
	for _, candidate := range candidates {
		if i, ok := lowered[strings.ToLower(candidate)]; ok {
			return i
		}
	}
	return -1
}
