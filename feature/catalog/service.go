package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"media-catalog/core/hashing"
	"media-catalog/core/metrics"
	"media-catalog/core/reconcile"
	"media-catalog/core/scanner"
	"media-catalog/core/tree"
	"media-catalog/feature/typedetect"
	"media-catalog/feature/validation"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Run statuses used as the "status" label of the run counter.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Repository loads and saves complete volume trees.
type Repository interface {
	LoadAll(ctx context.Context) ([]*tree.Volume, error)
	SaveAll(ctx context.Context, vols []*tree.Volume) error
}

// Options are the collaborators of a Service.
type Options struct {
	Repository Repository
	Fs         afero.Fs
	Scanner    *scanner.Scanner
	Hasher     *hashing.Hasher
	Budget     hashing.Budget
	Engine     *validation.Engine
	// Detector is optional; nil skips type detection.
	Detector typedetect.Detector
	Logger   *zap.Logger
}

// Service runs the catalog pipeline: scan, reconcile, detect types, hash, validate, save.
type Service struct {
	repo     Repository
	fs       afero.Fs
	scanner  *scanner.Scanner
	hasher   *hashing.Hasher
	budget   hashing.Budget
	engine   *validation.Engine
	detector typedetect.Detector
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new pipeline service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     opts.Repository,
		fs:       opts.Fs,
		scanner:  opts.Scanner,
		hasher:   opts.Hasher,
		budget:   opts.Budget,
		engine:   opts.Engine,
		detector: opts.Detector,
		logger:   logger,
		now:      time.Now,
	}
}

// RunOptions narrows a run.
type RunOptions struct {
	// Paths limits scanning to these volumes; empty scans every registered volume.
	// A path that is not registered is scanned and catalogued as a new volume.
	Paths []string
}

// VolumeReport describes what a run did to one volume.
type VolumeReport struct {
	Path   string `json:"path"`
	Schema string `json:"schema,omitempty"`
	// Online is false when the volume was not scanned and was kept as catalogued.
	Online     bool                 `json:"online"`
	Scan       scanner.Stats        `json:"scan"`
	Summary    reconcile.Summary    `json:"summary"`
	Types      typedetect.Result    `json:"types"`
	Hash       hashing.Result       `json:"hash"`
	Kinds      []validation.Kind    `json:"kinds"`
	Violations []validation.Finding `json:"violations"`
}

// RunReport describes one pipeline run.
type RunReport struct {
	RunID    string         `json:"run_id"`
	Started  time.Time      `json:"started"`
	Finished time.Time      `json:"finished"`
	Volumes  []VolumeReport `json:"volumes"`
}

// Run executes the pipeline once. Configuration and load errors abort the run before
// anything is written; a volume whose path is not a readable directory is kept unchanged.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*RunReport, error) {
	report := &RunReport{RunID: uuid.NewString(), Started: s.now()}
	l := s.logger.With(zap.String("run_id", report.RunID))

	volumes, err := s.run(ctx, l, opts)
	report.Finished = s.now()
	elapsed := report.Finished.Sub(report.Started)
	if err != nil {
		metrics.ObserveRun(StatusFailed, report.Finished, elapsed)
		l.Error("Catalog run failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, err
	}
	report.Volumes = volumes
	metrics.ObserveRun(StatusSuccess, report.Finished, elapsed)

	l.Info("Catalog run finished",
		zap.Int("volumes", len(volumes)),
		zap.Duration("elapsed", elapsed))
	return report, nil
}

func (s *Service) run(ctx context.Context, l *zap.Logger, opts RunOptions) ([]VolumeReport, error) {
	loaded, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := s.engine.CheckVolumes(loaded); err != nil {
		return nil, err
	}

	targets, err := s.targets(loaded, opts.Paths)
	if err != nil {
		return nil, err
	}

	reports := make(map[string]*VolumeReport, len(targets))
	var scanned []*tree.Volume
	for _, path := range targets {
		vr := &VolumeReport{Path: path}
		reports[path] = vr

		vol, stats, ok := s.scan(l, path)
		if !ok {
			continue
		}
		vr.Online = true
		vr.Scan = stats
		scanned = append(scanned, vol)
		metrics.ObserveScan(path, stats.Files, stats.Directories, stats.Bytes, stats.Errors)
	}

	merged, err := reconcile.MergeVolumes(scanned, loaded)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile: %w", err)
	}

	for _, vol := range merged {
		vr, targeted := reports[vol.Path]
		if !targeted {
			continue
		}
		vr.Schema = vol.Schema
		if vr.Online {
			if err := s.process(ctx, vol, vr); err != nil {
				return nil, err
			}
		}
		vr.Summary = reconcile.Summarize(vol)
		metrics.ObserveStates(vol.Path, stateCounts(vr.Summary))
	}

	if err := s.repo.SaveAll(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}

	out := make([]VolumeReport, 0, len(targets))
	for _, path := range targets {
		out = append(out, *reports[path])
	}
	return out, nil
}

// targets resolves the volumes to scan, in a stable order.
func (s *Service) targets(loaded []*tree.Volume, paths []string) ([]string, error) {
	if len(paths) == 0 {
		out := make([]string, 0, len(loaded))
		for _, v := range loaded {
			out = append(out, v.Path)
		}
		return out, nil
	}

	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		canonical, err := CanonicalPath(p)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out, nil
}

// scan walks one volume; ok is false when the volume is offline.
func (s *Service) scan(l *zap.Logger, path string) (*tree.Volume, scanner.Stats, bool) {
	osPath := filepath.FromSlash(path)
	info, err := s.fs.Stat(osPath)
	if err != nil || !info.IsDir() {
		l.Warn("Volume offline, keeping catalogued state", zap.String("volume", path), zap.Error(err))
		return nil, scanner.Stats{}, false
	}

	vol, stats, err := s.scanner.Scan(osPath)
	if err != nil {
		l.Warn("Volume scan failed, keeping catalogued state", zap.String("volume", path), zap.Error(err))
		return nil, scanner.Stats{}, false
	}
	vol.Path = path
	return vol, stats, true
}

// process runs the in-place phases on a reconciled online volume.
func (s *Service) process(ctx context.Context, vol *tree.Volume, vr *VolumeReport) error {
	if s.detector != nil {
		vr.Types = typedetect.Fill(ctx, vol, s.detector, s.logger)
	}

	vr.Hash = s.hasher.HashVolume(vol, s.budget)
	metrics.ObserveHash(vol.Path,
		vr.Hash.FirstMeasured, vr.Hash.Confirmed, vr.Hash.Drifted, vr.Hash.Corrupted,
		vr.Hash.HashedBytes, vr.Hash.Elapsed)

	violations, err := s.engine.ValidateVolume(ctx, vol)
	if err != nil {
		return err
	}
	vr.Kinds = violations.Kinds()
	vr.Violations = violations.Findings()

	kinds := make([]string, 0, len(vr.Kinds))
	for _, k := range vr.Kinds {
		kinds = append(kinds, string(k))
	}
	metrics.ObserveViolations(vol.Path, kinds)
	return nil
}

func stateCounts(s reconcile.Summary) map[string]int {
	return map[string]int{
		tree.Unknown.String():   s.Unknown,
		tree.New.String():       s.New,
		tree.Identical.String(): s.Identical,
		tree.Modified.String():  s.Modified,
		tree.Missing.String():   s.Missing,
		tree.Corrupted.String(): s.Corrupted,
	}
}
