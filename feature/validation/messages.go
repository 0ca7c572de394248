package validation

import "fmt"

// Messages maps each kind to an English message template taking the path.
var Messages = map[Kind]string{
	FileInWrongDirectory:     "%s: file is not allowed at this level",
	TooDeep:                  "%s: directory is nested deeper than the schema allows",
	YearNotANumber:           "%s: expected a four digit year",
	YearTooEarly:             "%s: year is earlier than 1878",
	YearTooLate:              "%s: year is in the future",
	UnknownExtension:         "%s: unknown file extension",
	MissingTitle:             "%s: name has no title",
	MissingYear:              "%s: name does not carry the year of its directory",
	SeasonNotANumber:         "%s: season directory is not a number",
	DuplicateSeasonDirectory: "%s: another directory already holds this season",
	MissingEpisodeToken:      "%s: name has no SxxEyy token",
	EpisodeSeasonMismatch:    "%s: episode season differs from its directory",
	DayInvalid:               "%s: expected YYYY-MM-DD with an optional description",
	DayYearMismatch:          "%s: day is not in the year of its directory",
	XmpWithoutFile:           "%s: sidecar has no matching file",
}

// Message renders a finding for humans.
func Message(f Finding) string {
	tmpl, ok := Messages[f.Kind]
	if !ok {
		return fmt.Sprintf("%s: %s", f.Path, f.Kind)
	}
	return fmt.Sprintf(tmpl, f.Path)
}
