package validation

import (
	"context"
	"strconv"
	"strings"
	"time"

	"media-catalog/core/tree"
)

// MovieValidator enforces root / year / title[.year][.resolution].ext.
type MovieValidator struct {
	annotator
	now func() time.Time
}

// NewMovieValidator is the movie schema factory.
func NewMovieValidator(deps Dependencies) Validator {
	return &MovieValidator{
		annotator: annotator{finder: deps.Finder, logger: deps.Logger},
		now:       deps.Now,
	}
}

func (m *MovieValidator) Schema() string { return SchemaMovie }

func (m *MovieValidator) Validate(ctx context.Context, vol *tree.Volume) *Violations {
	v := NewViolations()
	now := m.now()

	rejectFiles(v, vol.Root)
	for _, yearDir := range directories(vol.Root) {
		year, ok := checkYear(v, yearDir, now)
		rejectDirectories(v, yearDir)
		for _, f := range present(yearDir) {
			m.checkFile(ctx, v, f, yearDir.Name, year, ok)
		}
	}
	return v
}

func (m *MovieValidator) checkFile(ctx context.Context, v *Violations, f *tree.File, yearToken string, year int, yearOK bool) {
	segments := strings.Split(f.Name, ".")
	if len(segments) < 2 || !isVideo(segments[len(segments)-1]) {
		v.Add(UnknownExtension, f.Path())
		return
	}

	parsed := &tree.ParsedName{}
	rest := segments[:len(segments)-1]
	for len(rest) > 0 {
		last := rest[len(rest)-1]
		if parsed.Resolution == "" && parsed.Year == 0 && isResolution(last) {
			parsed.Resolution = strings.ToLower(last)
		} else if parsed.Year == 0 && year != 0 && last == yearToken {
			parsed.Year, _ = strconv.Atoi(last)
		} else {
			break
		}
		rest = rest[:len(rest)-1]
	}
	parsed.Title = strings.TrimSpace(strings.Join(rest, " "))
	f.Parsed = parsed

	if parsed.Title == "" {
		v.Add(MissingTitle, f.Path())
	}
	if parsed.Year == 0 {
		v.Add(MissingYear, f.Path())
	}
	if parsed.Title == "" || !yearOK {
		return
	}

	m.resolve(ctx, &f.ExternalID, "movie", func(ctx context.Context) (string, error) {
		return m.finder.FindMovie(ctx, parsed.Title, year)
	})
}
