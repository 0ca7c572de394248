package typedetect

import (
	"context"
	"errors"
	"testing"
	"time"

	"media-catalog/core/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExifTool(t *testing.T) {
	var gotArgs []string
	d := NewExifToolWithRunner("exiftool", func(_ context.Context, name string, args ...string) ([]byte, error) {
		assert.Equal(t, "exiftool", name)
		gotArgs = args
		return []byte("video/x-matroska\n"), nil
	})

	mime, err := d.Detect(context.Background(), "/media/a.mkv")
	require.NoError(t, err)
	assert.Equal(t, "video/x-matroska", mime)
	assert.Equal(t, []string{"-s3", "-MIMEType", "/media/a.mkv"}, gotArgs)
}

func TestExifTool_Failure(t *testing.T) {
	d := NewExifToolWithRunner("exiftool", func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	})
	_, err := d.Detect(context.Background(), "/media/a.mkv")
	assert.Error(t, err)
}

func TestNewExifTool_NotOnPath(t *testing.T) {
	_, err := NewExifTool("definitely-not-an-exiftool-binary")
	assert.Error(t, err)
}

func TestExtensions(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/m/a.MKV", "video/x-matroska"},
		{"/m/photo.jpg", "image/jpeg"},
		{`C:\m\scan.pdf`, "application/pdf"},
		{"/m/noext", ""},
		{"/m/archive.7z", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			mime, err := DefaultExtensions.Detect(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mime)
		})
	}
}

func TestChain(t *testing.T) {
	failing := NewExifToolWithRunner("exiftool", func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("boom")
	})
	empty := NewExifToolWithRunner("exiftool", func(context.Context, string, ...string) ([]byte, error) {
		return []byte("\n"), nil
	})

	c := NewChain(zap.NewNop(), failing, empty, DefaultExtensions)
	mime, err := c.Detect(context.Background(), "/m/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", mime)

	mime, err = c.Detect(context.Background(), "/m/a.unknown")
	require.NoError(t, err)
	assert.Empty(t, mime)
}

func TestFill(t *testing.T) {
	vol := tree.NewVolume("/media")
	add := func(name, typ string, state tree.FileState) *tree.File {
		f := tree.NewFile(name, 1, time.Unix(0, 0))
		f.Type = typ
		f.State = state
		require.NoError(t, vol.Root.AddFile(f))
		return f
	}
	fresh := add("a.mkv", "", tree.New)
	unknown := add("b.bin", "", tree.New)
	known := add("c.mkv", "video/custom", tree.Identical)
	settled := add("d.bin", tree.UnknownType, tree.Identical)
	missing := add("e.mkv", "", tree.Missing)

	var asked []string
	d := detectorFunc(func(_ context.Context, p string) (string, error) {
		asked = append(asked, p)
		return DefaultExtensions.Detect(context.Background(), p)
	})

	res := Fill(context.Background(), vol, d, zap.NewNop())

	assert.Equal(t, Result{Detected: 1, Unknown: 1, Skipped: 3}, res)
	assert.Equal(t, "video/x-matroska", fresh.Type)
	assert.Equal(t, tree.UnknownType, unknown.Type)
	assert.Equal(t, "video/custom", known.Type)
	assert.Equal(t, tree.UnknownType, settled.Type)
	assert.Empty(t, missing.Type)
	assert.Equal(t, []string{"/media/a.mkv", "/media/b.bin"}, asked)
}

type detectorFunc func(ctx context.Context, path string) (string, error)

func (f detectorFunc) Detect(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}
