package metrics

import "time"

// ObserveScan records the counters of one volume walk.
func ObserveScan(volume string, files, directories int, bytes int64, errors int) {
	ScanFilesTotal.WithLabelValues(volume).Add(float64(files))
	ScanDirectoriesTotal.WithLabelValues(volume).Add(float64(directories))
	ScanBytesTotal.WithLabelValues(volume).Add(float64(bytes))
	ScanErrorsTotal.WithLabelValues(volume).Add(float64(errors))
}

// ObserveStates replaces the per-state gauges of a volume.
func ObserveStates(volume string, counts map[string]int) {
	for state, n := range counts {
		CatalogFiles.WithLabelValues(volume, state).Set(float64(n))
	}
}

// ObserveHash records the outcome counters of one hashing pass.
func ObserveHash(volume string, first, confirmed, drifted, corrupted int, bytes int64, elapsed time.Duration) {
	HashFilesTotal.WithLabelValues(volume, OutcomeFirst).Add(float64(first))
	HashFilesTotal.WithLabelValues(volume, OutcomeConfirmed).Add(float64(confirmed))
	HashFilesTotal.WithLabelValues(volume, OutcomeDrifted).Add(float64(drifted))
	HashFilesTotal.WithLabelValues(volume, OutcomeCorrupted).Add(float64(corrupted))
	HashBytesTotal.WithLabelValues(volume).Add(float64(bytes))
	HashDuration.WithLabelValues(volume).Observe(elapsed.Seconds())
}

// ObserveViolations counts each reported violation kind once.
func ObserveViolations(volume string, kinds []string) {
	for _, kind := range kinds {
		ViolationsTotal.WithLabelValues(volume, kind).Inc()
	}
}

// ObserveRun records a finished run.
func ObserveRun(status string, finished time.Time, elapsed time.Duration) {
	RunsTotal.WithLabelValues(status).Inc()
	LastRunTimestamp.Set(float64(finished.Unix()))
	LastRunDuration.Set(elapsed.Seconds())
}
