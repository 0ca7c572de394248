package validation

import (
	"context"
	"strings"
	"testing"
	"time"

	"media-catalog/core/tree"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

// buildVolume creates a volume from slash separated paths. A trailing slash creates an
// empty directory; everything else becomes a file in state New.
func buildVolume(t *testing.T, schema string, paths ...string) *tree.Volume {
	t.Helper()
	vol := tree.NewVolume("/media")
	vol.Schema = schema
	for _, p := range paths {
		parts := strings.Split(strings.TrimSuffix(p, "/"), "/")
		dir := vol.Root
		last := len(parts) - 1
		if strings.HasSuffix(p, "/") {
			last = len(parts)
		}
		for _, name := range parts[:last] {
			child := dir.Directory(name)
			if child == nil {
				child = tree.NewDirectory(name)
				require.NoError(t, dir.AddDirectory(child))
			}
			dir = child
		}
		if last < len(parts) {
			f := tree.NewFile(parts[last], 1, time.Unix(0, 0))
			f.State = tree.New
			require.NoError(t, dir.AddFile(f))
		}
	}
	return vol
}

// lookupFile walks a slash separated path to a file.
func lookupFile(t *testing.T, vol *tree.Volume, p string) *tree.File {
	t.Helper()
	parts := strings.Split(p, "/")
	dir := lookupDir(t, vol, strings.Join(parts[:len(parts)-1], "/"))
	f := dir.File(parts[len(parts)-1])
	require.NotNil(t, f, p)
	return f
}

func lookupDir(t *testing.T, vol *tree.Volume, p string) *tree.Directory {
	t.Helper()
	dir := vol.Root
	if p == "" {
		return dir
	}
	for _, name := range strings.Split(p, "/") {
		dir = dir.Directory(name)
		require.NotNil(t, dir, p)
	}
	return dir
}

func deps(finder Finder) Dependencies {
	return Dependencies{Finder: finder, Now: fixedNow}
}

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) FindMovie(ctx context.Context, title string, year int) (string, error) {
	args := m.Called(ctx, title, year)
	return args.String(0), args.Error(1)
}

func (m *mockFinder) FindShow(ctx context.Context, title string, year int) (string, error) {
	args := m.Called(ctx, title, year)
	return args.String(0), args.Error(1)
}

func (m *mockFinder) FindSeasons(ctx context.Context, showID string) (map[int]string, error) {
	args := m.Called(ctx, showID)
	ids, _ := args.Get(0).(map[int]string)
	return ids, args.Error(1)
}

func (m *mockFinder) FindEpisodes(ctx context.Context, seasonID string) (map[int]string, error) {
	args := m.Called(ctx, seasonID)
	ids, _ := args.Get(0).(map[int]string)
	return ids, args.Error(1)
}
