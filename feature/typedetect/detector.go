package typedetect

import (
	"context"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"go.uber.org/zap"
)

// Detector returns the MIME type of the file at path, or "" when it cannot tell.
type Detector interface {
	Detect(ctx context.Context, path string) (string, error)
}

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ExifTool asks exiftool for the MIMEType tag.
type ExifTool struct {
	bin string
	run Runner
}

// NewExifTool resolves bin on PATH.
func NewExifTool(bin string) (*ExifTool, error) {
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("exiftool not available: %w", err)
	}
	return &ExifTool{bin: resolved, run: execRunner}, nil
}

// NewExifToolWithRunner creates a detector that executes through run.
func NewExifToolWithRunner(bin string, run Runner) *ExifTool {
	return &ExifTool{bin: bin, run: run}
}

func (e *ExifTool) Detect(ctx context.Context, p string) (string, error) {
	out, err := e.run(ctx, e.bin, "-s3", "-MIMEType", p)
	if err != nil {
		return "", fmt.Errorf("exiftool %s: %w", p, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Extensions maps lowercase extensions to MIME types.
type Extensions map[string]string

// DefaultExtensions covers the formats commonly found in media and document volumes.
var DefaultExtensions = Extensions{
	"avi": "video/x-msvideo", "flv": "video/x-flv", "m2ts": "video/mp2t", "m4v": "video/x-m4v",
	"mkv": "video/x-matroska", "mov": "video/quicktime", "mp4": "video/mp4", "mpeg": "video/mpeg",
	"mpg": "video/mpeg", "ts": "video/mp2t", "vob": "video/dvd", "webm": "video/webm",
	"wmv": "video/x-ms-wmv",

	"flac": "audio/flac", "m4a": "audio/mp4", "mp3": "audio/mpeg", "ogg": "audio/ogg",
	"wav": "audio/x-wav",

	"bmp": "image/bmp", "gif": "image/gif", "heic": "image/heic", "jpeg": "image/jpeg",
	"jpg": "image/jpeg", "png": "image/png", "tif": "image/tiff", "tiff": "image/tiff",
	"webp": "image/webp", "cr2": "image/x-canon-cr2", "nef": "image/x-nikon-nef",
	"dng": "image/x-adobe-dng",

	"pdf": "application/pdf", "txt": "text/plain", "xmp": "application/rdf+xml",
	"srt": "application/x-subrip", "nfo": "text/plain",
}

func (x Extensions) Detect(_ context.Context, p string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(strings.ReplaceAll(p, "\\", "/")), "."))
	return x[ext], nil
}

// Chain tries detectors in order; the first non-empty answer wins. A failing detector is
// logged and the next one is tried.
type Chain struct {
	detectors []Detector
	logger    *zap.Logger
}

// NewChain creates a chain over detectors.
func NewChain(logger *zap.Logger, detectors ...Detector) *Chain {
	return &Chain{detectors: detectors, logger: logger}
}

func (c *Chain) Detect(ctx context.Context, p string) (string, error) {
	for _, d := range c.detectors {
		t, err := d.Detect(ctx, p)
		if err != nil {
			c.logger.Debug("Type detector failed", zap.String("path", p), zap.Error(err))
			continue
		}
		if t != "" {
			return t, nil
		}
	}
	return "", nil
}
