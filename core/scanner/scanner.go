package scanner

import (
	"os"
	"path/filepath"

	"media-catalog/core/tree"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Config holds the names excluded from every scan.
type Config struct {
	// IgnoreDirs lists directory names that are neither visited nor counted.
	IgnoreDirs []string `mapstructure:"ignore_dirs" default:"@eaDir,.Trash-1000,$RECYCLE.BIN,lost+found,System Volume Information"`
	// IgnoreFiles lists file names that are neither recorded nor counted.
	IgnoreFiles []string `mapstructure:"ignore_files" default:".DS_Store,Thumbs.db,desktop.ini"`
}

// Stats accumulates counters for one scan.
type Stats struct {
	Files       int   `json:"files"`
	Directories int   `json:"directories"`
	Bytes       int64 `json:"bytes"`
	// Errors counts entries skipped because they could not be read.
	Errors int `json:"errors"`
}

// Scanner walks a filesystem subtree and builds a fresh tree from it.
type Scanner struct {
	fs          afero.Fs
	logger      *zap.Logger
	ignoreDirs  map[string]struct{}
	ignoreFiles map[string]struct{}
}

// New creates a scanner reading from fs.
func New(fs afero.Fs, cfg Config, logger *zap.Logger) *Scanner {
	return &Scanner{
		fs:          fs,
		logger:      logger,
		ignoreDirs:  toSet(cfg.IgnoreDirs),
		ignoreFiles: toSet(cfg.IgnoreFiles),
	}
}

// Scan builds a volume mirroring the directory tree at root.
// Unreadable entries are logged and skipped; only an unreadable root is an error.
func (s *Scanner) Scan(root string) (*tree.Volume, Stats, error) {
	var stats Stats

	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, stats, err
	}
	if !info.IsDir() {
		return nil, stats, &os.PathError{Op: "scan", Path: root, Err: os.ErrInvalid}
	}

	vol := tree.NewVolume(root)
	s.walk(root, vol.Root, &stats)

	s.logger.Debug("Scan finished",
		zap.String("volume", vol.Path),
		zap.Int("files", stats.Files),
		zap.Int("directories", stats.Directories),
		zap.Int64("bytes", stats.Bytes),
		zap.Int("errors", stats.Errors),
	)
	return vol, stats, nil
}

// walk descends depth-first: a directory's children are complete before it returns.
func (s *Scanner) walk(osPath string, dir *tree.Directory, stats *Stats) {
	entries, err := afero.ReadDir(s.fs, osPath)
	if err != nil {
		stats.Errors++
		s.logger.Warn("Failed to read directory, skipping", zap.String("path", osPath), zap.Error(err))
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		childPath := filepath.Join(osPath, name)

		if entry.IsDir() {
			if _, skip := s.ignoreDirs[name]; skip {
				continue
			}
			child := tree.NewDirectory(name)
			if err := dir.AddDirectory(child); err != nil {
				stats.Errors++
				s.logger.Warn("Skipping directory", zap.String("path", childPath), zap.Error(err))
				continue
			}
			stats.Directories++
			s.walk(childPath, child, stats)
			continue
		}

		if _, skip := s.ignoreFiles[name]; skip {
			continue
		}
		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := s.fs.Stat(childPath)
			if err != nil {
				stats.Errors++
				s.logger.Warn("Skipping broken link", zap.String("path", childPath), zap.Error(err))
				continue
			}
			if target.IsDir() {
				// Directory links may loop back into the volume.
				s.logger.Debug("Not following directory link", zap.String("path", childPath))
				continue
			}
			info = target
		}
		if !info.Mode().IsRegular() {
			// Sockets and devices carry no content to catalog.
			s.logger.Debug("Skipping non-regular entry", zap.String("path", childPath))
			continue
		}
		if err := dir.AddFile(tree.NewFile(name, info.Size(), info.ModTime())); err != nil {
			stats.Errors++
			s.logger.Warn("Skipping file", zap.String("path", childPath), zap.Error(err))
			continue
		}
		stats.Files++
		stats.Bytes += info.Size()
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}
