package validation

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"media-catalog/core/tree"
)

var episodeToken = regexp.MustCompile(`(?i)(?:^|[ ._-])s(\d{1,3})e(\d{1,4})(?:$|[ ._-])`)

// TvSeriesValidator enforces root / year / show / season / title.SxxEyy[.name].ext.
type TvSeriesValidator struct {
	annotator
	now func() time.Time
}

// NewTvSeriesValidator is the tvseries schema factory.
func NewTvSeriesValidator(deps Dependencies) Validator {
	return &TvSeriesValidator{
		annotator: annotator{finder: deps.Finder, logger: deps.Logger},
		now:       deps.Now,
	}
}

func (t *TvSeriesValidator) Schema() string { return SchemaTvSeries }

func (t *TvSeriesValidator) Validate(ctx context.Context, vol *tree.Volume) *Violations {
	v := NewViolations()
	now := t.now()

	rejectFiles(v, vol.Root)
	for _, yearDir := range directories(vol.Root) {
		year, ok := checkYear(v, yearDir, now)
		rejectFiles(v, yearDir)
		for _, show := range directories(yearDir) {
			t.checkShow(ctx, v, show, year, ok)
		}
	}
	return v
}

func (t *TvSeriesValidator) checkShow(ctx context.Context, v *Violations, show *tree.Directory, year int, yearOK bool) {
	rejectFiles(v, show)
	if yearOK {
		t.resolve(ctx, &show.ExternalID, "show", func(ctx context.Context) (string, error) {
			return t.finder.FindShow(ctx, show.Name, year)
		})
	}

	var seasonIDs map[int]string
	fetched := false
	seen := make(map[int]struct{})

	// Children come name-sorted, so of "01" and "1" the latter is the duplicate.
	for _, season := range directories(show) {
		number, ok := parseSeason(season.Name)
		switch {
		case !ok:
			v.Add(SeasonNotANumber, season.Path())
			number = -1
		default:
			if _, dup := seen[number]; dup {
				v.Add(DuplicateSeasonDirectory, season.Path())
			}
			seen[number] = struct{}{}
		}

		if number >= 0 && season.ExternalID == "" {
			if !fetched {
				seasonIDs = t.children(ctx, show.ExternalID, "seasons", func(ctx context.Context, id string) (map[int]string, error) {
					return t.finder.FindSeasons(ctx, id)
				})
				fetched = true
			}
			assign(&season.ExternalID, seasonIDs, number)
		}
		t.checkSeason(ctx, v, season, number)
	}
}

func (t *TvSeriesValidator) checkSeason(ctx context.Context, v *Violations, season *tree.Directory, number int) {
	rejectDirectories(v, season)

	var episodeIDs map[int]string
	fetched := false

	for _, f := range present(season) {
		stem, ext, ok := splitExtension(f.Name)
		if !ok || !isVideo(ext) {
			v.Add(UnknownExtension, f.Path())
			continue
		}

		m := episodeToken.FindStringSubmatchIndex(stem)
		if m == nil {
			v.Add(MissingEpisodeToken, f.Path())
			continue
		}
		s, _ := strconv.Atoi(stem[m[2]:m[3]])
		e, _ := strconv.Atoi(stem[m[4]:m[5]])
		parsed := &tree.ParsedName{Title: cleanTitle(stem[:m[0]]), Season: s, Episode: e}
		f.Parsed = parsed

		if parsed.Title == "" {
			v.Add(MissingTitle, f.Path())
		}
		if number >= 0 && s != number {
			v.Add(EpisodeSeasonMismatch, f.Path())
			continue
		}

		if number >= 0 && f.ExternalID == "" {
			if !fetched {
				episodeIDs = t.children(ctx, season.ExternalID, "episodes", func(ctx context.Context, id string) (map[int]string, error) {
					return t.finder.FindEpisodes(ctx, id)
				})
				fetched = true
			}
			assign(&f.ExternalID, episodeIDs, e)
		}
	}
}

// parseSeason accepts a plain number, leading zeros included.
func parseSeason(name string) (int, bool) {
	if !isDigits(name) {
		return 0, false
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return n, true
}

func cleanTitle(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '_' || r == ' ' || r == '-'
	}), " ")
}
