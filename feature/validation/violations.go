package validation

import (
	"sort"
)

// Kind identifies a structural rule that was broken.
type Kind string

const (
	FileInWrongDirectory Kind = "file_in_wrong_directory"
	TooDeep              Kind = "too_deep"
	YearNotANumber       Kind = "year_not_a_number"
	YearTooEarly         Kind = "year_too_early"
	YearTooLate          Kind = "year_too_late"
	UnknownExtension     Kind = "unknown_extension"

	MissingTitle Kind = "missing_title"
	MissingYear  Kind = "missing_year"

	SeasonNotANumber         Kind = "season_not_a_number"
	DuplicateSeasonDirectory Kind = "duplicate_season_directory"
	MissingEpisodeToken      Kind = "missing_episode_token"
	EpisodeSeasonMismatch    Kind = "episode_season_mismatch"

	DayInvalid      Kind = "day_invalid"
	DayYearMismatch Kind = "day_year_mismatch"
	XmpWithoutFile  Kind = "xmp_without_file"
)

// Finding is one occurrence of a violation.
type Finding struct {
	Kind Kind   `json:"kind"`
	Path string `json:"path"`
}

// Violations is the set of violated kinds plus every finding in walk order.
type Violations struct {
	kinds    map[Kind]struct{}
	findings []Finding
}

// NewViolations returns an empty set.
func NewViolations() *Violations {
	return &Violations{kinds: make(map[Kind]struct{})}
}

// Add records kind at path.
func (v *Violations) Add(kind Kind, path string) {
	v.kinds[kind] = struct{}{}
	v.findings = append(v.findings, Finding{Kind: kind, Path: path})
}

// Has reports whether kind occurred at least once.
func (v *Violations) Has(kind Kind) bool {
	_, ok := v.kinds[kind]
	return ok
}

// Only reports whether kind occurred and no other kind did.
func (v *Violations) Only(kind Kind) bool {
	return len(v.kinds) == 1 && v.Has(kind)
}

// Empty reports whether nothing was violated.
func (v *Violations) Empty() bool {
	return len(v.kinds) == 0
}

// Kinds returns the distinct kinds, sorted.
func (v *Violations) Kinds() []Kind {
	out := make([]Kind, 0, len(v.kinds))
	for k := range v.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Findings returns every occurrence in the order it was found.
func (v *Violations) Findings() []Finding {
	return append([]Finding(nil), v.findings...)
}

// Count returns how often kind occurred.
func (v *Violations) Count(kind Kind) int {
	n := 0
	for _, f := range v.findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}
