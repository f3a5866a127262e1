// Package main trains the transit classifier and persists its artifact.
// Training data is simulated light curves, optionally augmented with
// real archive curves referenced by a catalog CSV.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"exo-sense/internal/ingestion"
	"exo-sense/internal/training"
)

func main() {
	artifactPath := flag.String("artifact", training.DefaultArtifactPath(), "output path for the model artifact")
	seed := flag.Int64("seed", training.DefaultRandomSeed, "random seed for dataset generation and splitting")
	syntheticSamples := flag.Int("synthetic", training.DefaultSyntheticSamples, "simulated curves per run (negative disables)")
	includeReal := flag.Bool("include-real", false, "ingest real curves from the catalog")
	catalogPath := flag.String("catalog", envOr("EXOSENSE_CATALOG", ""), "catalog CSV with labeled targets")
	curveDir := flag.String("curve-dir", envOr("EXOSENSE_CURVE_DIR", ""), "directory holding per-target curve CSVs")
	targetColumn := flag.String("target-column", "target_id", "catalog column naming the target")
	dispositionColumn := flag.String("disposition-column", "label", "catalog column holding the disposition")
	planetValues := flag.String("planet-values", "1,planet,confirmed", "comma-separated dispositions labeled planet")
	nonPlanetValues := flag.String("non-planet-values", "0,non-planet,false positive", "comma-separated dispositions labeled non-planet")
	filenameColumn := flag.String("filename-column", "", "catalog column holding curve filenames (template used when empty)")
	filenameTemplate := flag.String("filename-template", "{target_id}.csv", "curve filename template")
	minSamples := flag.Int("min-samples", training.DefaultMinCurveSamples, "drop real curves shorter than this")
	flag.Parse()

	logger := log.New(os.Stdout, "[train] ", log.LstdFlags)

	opts := training.DatasetOptions{
		RandomSeed:       *seed,
		SyntheticSamples: *syntheticSamples,
		IncludeReal:      *includeReal,
		MinCurveSamples:  *minSamples,
		Logger:           logger,
	}

	if *includeReal {
		if *catalogPath == "" || *curveDir == "" {
			logger.Fatalf("-include-real needs both -catalog and -curve-dir")
		}
		opts.RealSource = realSource(realSourceConfig{
			catalogPath:       *catalogPath,
			curveDir:          *curveDir,
			targetColumn:      *targetColumn,
			dispositionColumn: *dispositionColumn,
			labelMap:          buildLabelMap(*planetValues, *nonPlanetValues),
			filenameColumn:    *filenameColumn,
			filenameTemplate:  *filenameTemplate,
			minSamples:        *minSamples,
			logger:            logger,
		})
	}

	artifact, err := training.TrainDefaultModel(*artifactPath, opts)
	if err != nil {
		logger.Fatalf("train: %v", err)
	}
	logger.Printf("artifact %s saved to %s", artifact.Version, *artifactPath)
}

type realSourceConfig struct {
	catalogPath       string
	curveDir          string
	targetColumn      string
	dispositionColumn string
	labelMap          map[string]int
	filenameColumn    string
	filenameTemplate  string
	minSamples        int
	logger            *log.Logger
}

// realSource adapts catalog-driven ingestion to the dataset builder.
func realSource(cfg realSourceConfig) training.RealSource {
	return func() ([]training.LabeledCurve, error) {
		catalog, err := ingestion.LoadCatalog(cfg.catalogPath, ingestion.CatalogOptions{
			TargetColumn:      cfg.targetColumn,
			DispositionColumn: cfg.dispositionColumn,
			LabelMap:          cfg.labelMap,
		})
		if err != nil {
			return nil, err
		}
		labeled, err := ingestion.IngestLightCurves(catalog, ingestion.IngestOptions{
			CurveDir:         cfg.curveDir,
			FilenameColumn:   cfg.filenameColumn,
			FilenameTemplate: cfg.filenameTemplate,
			MinSamples:       cfg.minSamples,
			Logger:           cfg.logger,
		})
		if err != nil {
			return nil, err
		}
		curves := make([]training.LabeledCurve, 0, len(labeled))
		for _, entry := range labeled {
			curves = append(curves, training.LabeledCurve{Curve: entry.Curve, Label: entry.Label})
		}
		return curves, nil
	}
}

func buildLabelMap(planetValues, nonPlanetValues string) map[string]int {
	labelMap := make(map[string]int)
	for _, v := range strings.Split(planetValues, ",") {
		if v = strings.TrimSpace(v); v != "" {
			labelMap[v] = 1
		}
	}
	for _, v := range strings.Split(nonPlanetValues, ",") {
		if v = strings.TrimSpace(v); v != "" {
			labelMap[v] = 0
		}
	}
	return labelMap
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
