package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hash outcomes used as the "outcome" label of HashFilesTotal.
const (
	OutcomeFirst     = "first"
	OutcomeConfirmed = "confirmed"
	OutcomeDrifted   = "drifted"
	OutcomeCorrupted = "corrupted"
)

// Scan metrics
var (
	ScanFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_scan_files_total",
			Help: "Total number of files found while scanning",
		},
		[]string{"volume"},
	)

	ScanDirectoriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_scan_directories_total",
			Help: "Total number of directories found while scanning",
		},
		[]string{"volume"},
	)

	ScanBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_scan_bytes_total",
			Help: "Total size in bytes of the files found while scanning",
		},
		[]string{"volume"},
	)

	ScanErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_scan_errors_total",
			Help: "Total number of unreadable entries skipped while scanning",
		},
		[]string{"volume"},
	)
)

// Reconcile metrics
var (
	CatalogFiles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_catalog_files",
			Help: "Number of catalog files per lifecycle state after the last run",
		},
		[]string{"volume", "state"},
	)
)

// Hashing metrics
var (
	HashFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_hash_files_total",
			Help: "Total number of hashed files by outcome",
		},
		[]string{"volume", "outcome"},
	)

	HashBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_hash_bytes_total",
			Help: "Total number of bytes read while hashing",
		},
		[]string{"volume"},
	)

	HashDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_catalog_hash_duration_seconds",
			Help:    "Duration of a volume hashing pass in seconds",
			Buckets: []float64{0.1, 1, 5, 15, 60, 300, 900, 1800, 3600, 7200},
		},
		[]string{"volume"},
	)
)

// Validation metrics
var (
	ViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_violations_total",
			Help: "Total number of structural violations by kind",
		},
		[]string{"volume", "kind"},
	)
)

// Run metrics
var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_catalog_runs_total",
			Help: "Total number of catalog runs by status",
		},
		[]string{"status"},
	)

	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last finished catalog run",
		},
	)

	LastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_catalog_last_run_duration_seconds",
			Help: "Duration of the last finished catalog run in seconds",
		},
	)
)

// WriteTextfile dumps the default registry in the text exposition format, for the
// node exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
