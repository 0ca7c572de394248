package hashing

import (
	"hash"
	"sort"
	"time"

	"media-catalog/core/tree"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Result summarizes one hashing pass over a volume.
type Result struct {
	// Candidates is the number of non-missing files considered.
	Candidates int `json:"candidates"`
	// TotalBytes is the summed size of the candidates.
	TotalBytes int64 `json:"total_bytes"`
	// Hashed is the number of files read, successfully or not.
	Hashed int `json:"hashed"`
	// HashedBytes is the number of bytes read.
	HashedBytes int64 `json:"hashed_bytes"`
	// FirstMeasured counts files that received their first hash.
	FirstMeasured int `json:"first_measured"`
	// Confirmed counts files whose hash matched the stored one.
	Confirmed int `json:"confirmed"`
	// Drifted counts files whose hash differs from the stored one.
	Drifted int `json:"drifted"`
	// Corrupted counts files that failed to read.
	Corrupted int `json:"corrupted"`
	// Elapsed is the wall time spent in the pass.
	Elapsed time.Duration `json:"elapsed"`
}

// Hasher selects files under a budget and updates their hash state.
type Hasher struct {
	fs        afero.Fs
	newDigest func() hash.Hash
	algorithm string
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a hasher reading through fs with the named digest.
func New(fs afero.Fs, algorithm string, logger *zap.Logger) (*Hasher, error) {
	ctor, err := NewDigest(algorithm)
	if err != nil {
		return nil, err
	}
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	return &Hasher{
		fs:        fs,
		newDigest: ctor,
		algorithm: algorithm,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// SetClock replaces the time source used for hash timestamps and the time budget.
func (h *Hasher) SetClock(now func() time.Time) {
	h.now = now
}

// Algorithm returns the digest name in use.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Candidates returns every non-missing file of the volume in priority order.
func Candidates(vol *tree.Volume) []*tree.File {
	var files []*tree.File
	for _, f := range vol.Root.AllFiles() {
		if f.State == tree.Missing {
			continue
		}
		files = append(files, f)
	}
	Prioritize(files)
	return files
}

// Prioritize sorts files so that never-hashed files come first, followed by the
// rest from the oldest hash measurement to the newest. The sort is stable.
func Prioritize(files []*tree.File) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.HasHash() != b.HasHash() {
			return !a.HasHash()
		}
		return a.HashCreated.Before(b.HashCreated)
	})
}

// HashVolume hashes the volume's candidates in priority order until the budget is spent.
func (h *Hasher) HashVolume(vol *tree.Volume, budget Budget) Result {
	start := h.now()
	candidates := Candidates(vol)

	var res Result
	res.Candidates = len(candidates)
	for _, f := range candidates {
		res.TotalBytes += f.Size
	}

	if budget.Strategy == StrategyNone {
		return res
	}

	for _, f := range candidates {
		p := progress{
			totalBytes:  res.TotalBytes,
			hashedBytes: res.HashedBytes,
			hashedFiles: res.Hashed,
			elapsed:     h.now().Sub(start),
		}
		if budget.exhausted(p) {
			break
		}

		read := h.hashFile(vol, f, &res)
		res.Hashed++
		res.HashedBytes += read
	}

	res.Elapsed = h.now().Sub(start)
	h.logger.Info("Hashing finished",
		zap.String("volume", vol.Path),
		zap.String("budget", budget.String()),
		zap.String("algorithm", h.algorithm),
		zap.Int("candidates", res.Candidates),
		zap.Int("hashed", res.Hashed),
		zap.Int64("hashed_bytes", res.HashedBytes),
		zap.Int64("total_bytes", res.TotalBytes),
		zap.Int("drifted", res.Drifted),
		zap.Int("corrupted", res.Corrupted),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res
}

// hashFile measures one file and applies the update policy, returning the bytes read.
func (h *Hasher) hashFile(vol *tree.Volume, f *tree.File, res *Result) int64 {
	path := vol.OSPath(f.Path())

	file, err := h.fs.Open(path)
	if err != nil {
		f.State = tree.Corrupted
		res.Corrupted++
		h.logger.Warn("Failed to open file for hashing", zap.String("path", path), zap.Error(err))
		return 0
	}
	defer file.Close()

	digest, read, err := Sum(h.newDigest, file, f.Size)
	if err != nil {
		f.State = tree.Corrupted
		res.Corrupted++
		h.logger.Warn("Failed to read file for hashing", zap.String("path", path), zap.Error(err))
		return read
	}

	switch {
	case !f.HasHash():
		f.Hash = digest
		f.HashCreated = h.now()
		res.FirstMeasured++
	case f.Hash == digest:
		f.HashCreated = h.now()
		res.Confirmed++
	default:
		// The stored value is the last known good one; it stays for investigation.
		f.State = tree.Modified
		res.Drifted++
		h.logger.Warn("Content hash drifted",
			zap.String("path", path),
			zap.String("stored", f.Hash),
			zap.String("computed", digest),
		)
	}
	return read
}
