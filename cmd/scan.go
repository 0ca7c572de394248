package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"media-catalog/core/hashing"
	"media-catalog/core/metrics"
	"media-catalog/core/scanner"
	"media-catalog/feature/catalog"
	"media-catalog/feature/enrichment"
	"media-catalog/feature/typedetect"
	"media-catalog/feature/validation"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scanJSON     bool
	scanStrategy string
)

// scanCmd runs the catalog pipeline once
var scanCmd = &cobra.Command{
	Use:   "scan [path...]",
	Short: "Scan volumes and update the catalog",
	Long: `Scans every registered volume (or only the given paths), reconciles the result
with the catalog, detects file types, rehashes files under the configured budget and
validates each volume against its schema.

A path that is not registered is catalogued as a new volume without a schema.

Examples:
  # Scan every registered volume
  scan

  # Scan one volume and hash everything
  scan /mnt/media/movies --strategy all

  # Print the full report
  scan --json`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the full run report as JSON")
	scanCmd.Flags().StringVar(&scanStrategy, "strategy", "", "Override the hash strategy (all, none, percentage, data, time, files)")
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	hashCfg := rt.cfg.Hash
	if scanStrategy != "" {
		hashCfg.Strategy = scanStrategy
	}
	budget, err := hashing.ParseBudget(hashCfg)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	hasher, err := hashing.New(fs, hashCfg.Algorithm, rt.log)
	if err != nil {
		return err
	}

	deps := validation.Dependencies{Logger: rt.log}
	if rt.cfg.Enrichment.Enabled {
		deps.Finder = enrichment.NewClient(rt.cfg.Enrichment, rt.log)
	}

	svc := catalog.NewService(catalog.Options{
		Repository: rt.store,
		Fs:         fs,
		Scanner:    scanner.New(fs, rt.cfg.Scan, rt.log),
		Hasher:     hasher,
		Budget:     budget,
		Engine:     validation.NewEngine(validation.DefaultRegistry(), deps),
		Detector:   newDetector(rt.cfg.TypeDetect, rt.log),
		Logger:     rt.log,
	})

	rt.log.Info("Starting catalog run", zap.String("budget", budget.String()), zap.String("algorithm", hasher.Algorithm()))
	report, runErr := svc.Run(ctx, catalog.RunOptions{Paths: args})

	// The run counters are worth keeping even when the run failed.
	if err := metrics.WriteTextfile(rt.cfg.Metrics.Textfile); err != nil {
		rt.log.Warn("Failed to write metrics textfile", zap.Error(err))
	}
	if runErr != nil {
		return runErr
	}

	if scanJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(report)
	return nil
}

// newDetector builds the type detection chain, or nil when detection is disabled.
func newDetector(cfg typedetect.Config, logg *zap.Logger) typedetect.Detector {
	if !cfg.Enabled {
		return nil
	}
	if cfg.ExifTool == "" {
		return typedetect.DefaultExtensions
	}
	exif, err := typedetect.NewExifTool(cfg.ExifTool)
	if err != nil {
		logg.Warn("ExifTool unavailable, using the extension table", zap.Error(err))
		return typedetect.DefaultExtensions
	}
	return typedetect.NewChain(logg, exif, typedetect.DefaultExtensions)
}

func printReport(report *catalog.RunReport) {
	fmt.Printf("\n=== Catalog Run %s ===\n", report.RunID)
	for _, v := range report.Volumes {
		fmt.Printf("\n%s", v.Path)
		if v.Schema != "" {
			fmt.Printf(" (%s)", v.Schema)
		}
		fmt.Println()
		if !v.Online {
			fmt.Println("  offline, kept as catalogued")
			continue
		}
		s := v.Summary
		fmt.Printf("  Files: %d (new %d, identical %d, modified %d, missing %d, corrupted %d)\n",
			s.TotalFiles, s.New, s.Identical, s.Modified, s.Missing, s.Corrupted)
		fmt.Printf("  Hashed: %d of %d files, %d of %d bytes (drifted %d, corrupted %d)\n",
			v.Hash.Hashed, v.Hash.Candidates, v.Hash.HashedBytes, v.Hash.TotalBytes, v.Hash.Drifted, v.Hash.Corrupted)
		if len(v.Violations) == 0 {
			fmt.Println("  Violations: none")
			continue
		}
		fmt.Printf("  Violations: %d\n", len(v.Violations))
		for _, f := range v.Violations {
			fmt.Printf("    - %s\n", validation.Message(f))
		}
	}
	fmt.Printf("\nExecution Time: %s\n", report.Finished.Sub(report.Started))
}
