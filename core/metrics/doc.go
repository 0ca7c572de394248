// Package metrics provides Prometheus instrumentation for catalog runs.
//
// All metrics are prefixed with "media_catalog_" and registered on the default registry,
// so they are served by the /metrics route and can be dumped to a node-exporter textfile
// after a one-shot scan.
//
// # Metric Categories
//
// ## Scan
//   - ScanFilesTotal, ScanDirectoriesTotal, ScanBytesTotal, ScanErrorsTotal by volume
//
// ## Reconcile
//   - CatalogFiles: gauge of files per volume and state after the last run
//
// ## Hashing
//   - HashFilesTotal: counter of hashed files by volume and outcome
//   - HashBytesTotal: counter of bytes read by volume
//   - HashDuration: histogram of a volume's hashing pass
//
// ## Validation
//   - ViolationsTotal: counter of violations by volume and kind
//
// ## Runs
//   - RunsTotal, LastRunTimestamp, LastRunDuration
//
// # Usage
//
//	app.Get("/metrics", metrics.Handler())
//	metrics.WriteTextfile("/var/lib/node_exporter/media_catalog.prom")
package metrics
