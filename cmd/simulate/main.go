// Package main writes batches of simulated light curves to CSV, with a
// labels catalog alongside. The curve files use the time,flux layout the
// ingestion package reads back.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"exo-sense/internal/domain"
	"exo-sense/internal/simulation"
)

func main() {
	outDir := flag.String("out", "simulated", "output directory for curve CSVs")
	count := flag.Int("count", 100, "number of curves to generate")
	seed := flag.Int64("seed", 1, "random seed")
	transitFraction := flag.Float64("transit-fraction", 0.5, "fraction of curves injected with a transit")
	durationDays := flag.Float64("duration-days", simulation.DefaultConfig().DurationDays, "observation window in days")
	cadenceMinutes := flag.Float64("cadence-minutes", simulation.DefaultConfig().CadenceMinutes, "sampling cadence in minutes")
	noiseLevel := flag.Float64("noise", simulation.DefaultConfig().NoiseLevel, "Gaussian noise sigma in relative flux")
	stellarVariability := flag.Float64("variability", simulation.DefaultConfig().StellarVariability, "rotation signal amplitude in relative flux")
	flag.Parse()

	logger := log.New(os.Stdout, "[simulate] ", log.LstdFlags)

	cfg := simulation.Config{
		DurationDays:       *durationDays,
		CadenceMinutes:     *cadenceMinutes,
		NoiseLevel:         *noiseLevel,
		StellarVariability: *stellarVariability,
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}
	if *count <= 0 {
		logger.Fatalf("count must be positive, got %d", *count)
	}
	if *transitFraction < 0 || *transitFraction > 1 {
		logger.Fatalf("transit fraction must be in [0, 1], got %g", *transitFraction)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatalf("create output dir: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	catalog := [][]string{{"target_id", "label"}}
	transits := 0

	for i := 0; i < *count; i++ {
		hasTransit := rng.Float64() < *transitFraction
		curve, err := simulation.Simulate(rng, hasTransit, cfg)
		if err != nil {
			logger.Fatalf("simulate curve %d: %v", i, err)
		}

		targetID := fmt.Sprintf("sim-%05d", i)
		if err := writeCurveCSV(filepath.Join(*outDir, targetID+".csv"), curve); err != nil {
			logger.Fatalf("write curve %s: %v", targetID, err)
		}

		label := "0"
		if hasTransit {
			label = "1"
			transits++
		}
		catalog = append(catalog, []string{targetID, label})
	}

	catalogPath := filepath.Join(*outDir, "catalog.csv")
	if err := writeCSV(catalogPath, catalog); err != nil {
		logger.Fatalf("write catalog: %v", err)
	}
	logger.Printf("wrote %d curves (%d with transits) to %s", *count, transits, *outDir)
}

func writeCurveCSV(path string, curve domain.LightCurve) error {
	records := make([][]string, 0, curve.SampleCount()+1)
	records = append(records, []string{"time", "flux"})
	for i := range curve.Time {
		records = append(records, []string{
			strconv.FormatFloat(curve.Time[i], 'g', -1, 64),
			strconv.FormatFloat(curve.Flux[i], 'g', -1, 64),
		})
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
