package hashing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"media-catalog/core/tree"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock advances by step on every call.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// brokenFile fails every read.
type brokenFile struct {
	afero.File
}

func (brokenFile) Read([]byte) (int, error) {
	return 0, errors.New("input/output error")
}

// brokenFs opens files normally but hands out readers that fail for one path.
type brokenFs struct {
	afero.Fs
	broken string
}

func (b brokenFs) Open(name string) (afero.File, error) {
	f, err := b.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	if filepath.Clean(name) == b.broken {
		return brokenFile{File: f}, nil
	}
	return f, nil
}

type fixture struct {
	fs  afero.Fs
	vol *tree.Volume
}

// newFixture writes files of the given contents directly under a volume root.
func newFixture(t *testing.T, contents map[string]string) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	vol := tree.NewVolume("/vol")
	for name, data := range contents {
		require.NoError(t, afero.WriteFile(fs, "/vol/"+name, []byte(data), 0o644))
		f := tree.NewFile(name, int64(len(data)), time.Unix(0, 0))
		f.State = tree.New
		require.NoError(t, vol.Root.AddFile(f))
	}
	return &fixture{fs: fs, vol: vol}
}

func newHasher(t *testing.T, fs afero.Fs) (*Hasher, *fakeClock) {
	t.Helper()
	h, err := New(fs, "", zap.NewNop())
	require.NoError(t, err)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Second}
	h.SetClock(clock.Now)
	return h, clock
}

func sha(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

func TestSum_EmptyInput(t *testing.T) {
	ctor, err := NewDigest("sha256")
	require.NoError(t, err)

	digest, n, err := Sum(ctor, bytes.NewReader(nil), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	// Published SHA-256 digest of the empty message.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest)
}

func TestSum_LargerThanChunk(t *testing.T) {
	ctor, err := NewDigest("sha256")
	require.NoError(t, err)

	data := strings.Repeat("media", maxChunkSize/2)
	digest, n, err := Sum(ctor, strings.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, sha(data), digest)
}

func TestNewDigest(t *testing.T) {
	for _, name := range Algorithms() {
		t.Run(name, func(t *testing.T) {
			ctor, err := NewDigest(name)
			require.NoError(t, err)
			assert.NotNil(t, ctor())
		})
	}

	_, err := NewDigest("crc32")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))

	_, err = New(afero.NewMemMapFs(), "whirlpool", zap.NewNop())
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestChunkSize(t *testing.T) {
	assert.Equal(t, minChunkSize, ChunkSize(0))
	assert.Equal(t, minChunkSize, ChunkSize(10))
	assert.Equal(t, 1<<20, ChunkSize(1<<20))
	assert.Equal(t, maxChunkSize, ChunkSize(1<<40))
}

func TestPrioritize(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(name, hash string, created time.Time) *tree.File {
		f := tree.NewFile(name, 1, base)
		f.Hash = hash
		f.HashCreated = created
		return f
	}
	files := []*tree.File{
		mk("recent", "h1", base.Add(3*time.Hour)),
		mk("never-a", "", time.Time{}),
		mk("oldest", "h2", base),
		mk("never-b", "", time.Time{}),
		mk("middle", "h3", base.Add(time.Hour)),
	}

	Prioritize(files)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"never-a", "never-b", "oldest", "middle", "recent"}, names)

	seenHash := false
	for i, f := range files {
		if f.HasHash() {
			seenHash = true
			if i > 0 && files[i-1].HasHash() {
				assert.True(t, files[i-1].HashCreated.Before(f.HashCreated))
			}
			continue
		}
		assert.False(t, seenHash, "an unhashed file must never follow a hashed one")
	}
}

func TestHashVolume_AllThenConfirm(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "alpha", "b": "bravo"})
	h, _ := newHasher(t, fx.fs)

	res := h.HashVolume(fx.vol, All())
	assert.Equal(t, 2, res.Hashed)
	assert.Equal(t, 2, res.FirstMeasured)
	assert.Equal(t, int64(10), res.HashedBytes)

	a := fx.vol.Root.File("a")
	assert.Equal(t, sha("alpha"), a.Hash)
	firstStamp := a.HashCreated
	assert.False(t, firstStamp.IsZero())

	res = h.HashVolume(fx.vol, All())
	assert.Equal(t, 2, res.Confirmed)
	assert.Equal(t, sha("alpha"), a.Hash)
	assert.True(t, a.HashCreated.After(firstStamp), "a confirmed hash refreshes its timestamp")
	assert.Equal(t, tree.New, a.State)
}

func TestHashVolume_DriftKeepsStoredHash(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "alpha"})
	h, _ := newHasher(t, fx.fs)
	h.HashVolume(fx.vol, All())

	a := fx.vol.Root.File("a")
	a.State = tree.Identical
	stored, stamp := a.Hash, a.HashCreated

	// Same size, different content.
	require.NoError(t, afero.WriteFile(fx.fs, "/vol/a", []byte("alphx"), 0o644))

	res := h.HashVolume(fx.vol, All())
	assert.Equal(t, 1, res.Drifted)
	assert.Equal(t, tree.Modified, a.State)
	assert.Equal(t, stored, a.Hash)
	assert.True(t, stamp.Equal(a.HashCreated))
}

func TestHashVolume_ReadFailures(t *testing.T) {
	fx := newFixture(t, map[string]string{"good": "fine", "bad": "broken"})
	fs := brokenFs{Fs: fx.fs, broken: "/vol/bad"}
	h, _ := newHasher(t, fs)

	require.NoError(t, fx.fs.Remove("/vol/good"))

	res := h.HashVolume(fx.vol, All())
	assert.Equal(t, 2, res.Corrupted)
	assert.Equal(t, tree.Corrupted, fx.vol.Root.File("good").State)
	assert.Equal(t, tree.Corrupted, fx.vol.Root.File("bad").State)
	assert.Empty(t, fx.vol.Root.File("bad").Hash)
}

func TestHashVolume_SkipsMissing(t *testing.T) {
	fx := newFixture(t, map[string]string{"here": "x"})
	gone := tree.NewFile("gone", 5, time.Unix(0, 0))
	gone.State = tree.Missing
	require.NoError(t, fx.vol.Root.AddFile(gone))

	h, _ := newHasher(t, fx.fs)
	res := h.HashVolume(fx.vol, All())
	assert.Equal(t, 1, res.Candidates)
	assert.Equal(t, int64(1), res.TotalBytes)
	assert.Equal(t, 0, res.Corrupted)
	assert.Equal(t, tree.Missing, gone.State)
}

func TestHashVolume_Budgets(t *testing.T) {
	hundred := strings.Repeat("x", 100)
	contents := map[string]string{"a": hundred, "b": hundred, "c": hundred}

	tests := []struct {
		name     string
		budget   Budget
		expected int
	}{
		{"None", None(), 0},
		{"All", All(), 3},
		{"Percentage zero", Percentage(0), 0},
		{"Percentage 50 overshoots", Percentage(50), 2},
		{"Percentage 33 stops after one", Percentage(33), 1},
		{"Percentage 100", Percentage(100), 3},
		{"Data 150", Budget{Strategy: StrategyData, Bytes: 150}, 2},
		{"Files 1", Budget{Strategy: StrategyFiles, Files: 1}, 1},
		{"Time zero", Budget{Strategy: StrategyTime, Duration: 0}, 0},
		{"Time two seconds", Budget{Strategy: StrategyTime, Duration: 2 * time.Second}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, contents)
			h, _ := newHasher(t, fx.fs)
			res := h.HashVolume(fx.vol, tt.budget)
			assert.Equal(t, tt.expected, res.Hashed)
			assert.Equal(t, 3, res.Candidates)
			assert.Equal(t, int64(300), res.TotalBytes)
		})
	}
}

func TestHashVolume_PercentageOfEmptyFiles(t *testing.T) {
	t.Run("Positive share hashes them", func(t *testing.T) {
		fx := newFixture(t, map[string]string{"empty.txt": ""})
		h, _ := newHasher(t, fx.fs)
		res := h.HashVolume(fx.vol, Percentage(100))
		assert.Equal(t, 1, res.Hashed)
		assert.Equal(t, sha(""), fx.vol.Root.File("empty.txt").Hash)
	})

	t.Run("Zero share hashes nothing", func(t *testing.T) {
		fx := newFixture(t, map[string]string{"empty.txt": ""})
		h, _ := newHasher(t, fx.fs)
		res := h.HashVolume(fx.vol, Percentage(0))
		assert.Equal(t, 0, res.Hashed)
		assert.False(t, fx.vol.Root.File("empty.txt").HasHash())
	})
}

func TestHashVolume_PercentageZeroIsIdempotent(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "alpha", "b": "bravo", "c": "charlie"})
	h, _ := newHasher(t, fx.fs)
	h.HashVolume(fx.vol, All())

	before := map[string]time.Time{}
	for _, f := range fx.vol.Root.Files() {
		before[f.Name] = f.HashCreated
	}

	for i := 0; i < 2; i++ {
		res := h.HashVolume(fx.vol, Percentage(0))
		assert.Equal(t, 0, res.Hashed)
		assert.Equal(t, int64(0), res.HashedBytes)
	}
	for _, f := range fx.vol.Root.Files() {
		assert.True(t, before[f.Name].Equal(f.HashCreated))
	}
}

func TestHashVolume_StalestFirst(t *testing.T) {
	fx := newFixture(t, map[string]string{"a": "1", "b": "2", "c": "3"})
	h, _ := newHasher(t, fx.fs)
	h.HashVolume(fx.vol, All())

	// One file per run under a files(1) budget walks the queue oldest first.
	order := []string{}
	for i := 0; i < 3; i++ {
		stamps := map[string]time.Time{}
		for _, f := range fx.vol.Root.Files() {
			stamps[f.Name] = f.HashCreated
		}
		h.HashVolume(fx.vol, Budget{Strategy: StrategyFiles, Files: 1})
		for _, f := range fx.vol.Root.Files() {
			if !stamps[f.Name].Equal(f.HashCreated) {
				order = append(order, f.Name)
			}
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestParseBudget(t *testing.T) {
	b, err := ParseBudget(Config{Strategy: "Percentage", Percentage: 25})
	require.NoError(t, err)
	assert.Equal(t, Percentage(25), b)

	b, err = ParseBudget(Config{Strategy: "time", Time: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, b.Duration)
	assert.Equal(t, "time(1m0s)", b.String())

	_, err = ParseBudget(Config{Strategy: "percentage", Percentage: 101})
	assert.Error(t, err)

	_, err = ParseBudget(Config{Strategy: "files", Files: -1})
	assert.Error(t, err)

	_, err = ParseBudget(Config{Strategy: "sometimes"})
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}
