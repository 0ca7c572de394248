package validation

import (
	"strconv"
	"strings"
	"time"

	"media-catalog/core/tree"
)

// firstFilmYear is the earliest year accepted for a year directory.
const firstFilmYear = 1878

var videoExtensions = map[string]struct{}{
	"avi": {}, "divx": {}, "flv": {}, "m2ts": {}, "m4v": {}, "mkv": {}, "mov": {},
	"mp4": {}, "mpeg": {}, "mpg": {}, "ogm": {}, "ts": {}, "vob": {}, "webm": {}, "wmv": {},
}

func isVideo(ext string) bool {
	_, ok := videoExtensions[strings.ToLower(ext)]
	return ok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// checkYear validates a year directory name and records at most one violation.
func checkYear(v *Violations, dir *tree.Directory, now time.Time) (int, bool) {
	if len(dir.Name) != 4 || !isDigits(dir.Name) {
		v.Add(YearNotANumber, dir.Path())
		return 0, false
	}
	year, _ := strconv.Atoi(dir.Name)
	switch {
	case year < firstFilmYear:
		v.Add(YearTooEarly, dir.Path())
		return year, false
	case year > now.Year()+1:
		v.Add(YearTooLate, dir.Path())
		return year, false
	}
	return year, true
}

// isResolution matches tokens like 720p or 2160P.
func isResolution(s string) bool {
	if len(s) < 2 {
		return false
	}
	last := s[len(s)-1]
	return (last == 'p' || last == 'P') && isDigits(s[:len(s)-1])
}

// splitExtension splits a name on its last dot. ok is false when there is no extension.
func splitExtension(name string) (stem, ext string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, "", false
	}
	return name[:i], name[i+1:], true
}

// present returns the files of dir that still exist on disk.
func present(dir *tree.Directory) []*tree.File {
	var out []*tree.File
	for _, f := range dir.Files() {
		if f.State != tree.Missing {
			out = append(out, f)
		}
	}
	return out
}

// gone reports whether dir only holds files that vanished from disk.
func gone(dir *tree.Directory) bool {
	_, files := dir.Counts()
	if files == 0 {
		return false
	}
	for _, f := range dir.AllFiles() {
		if f.State != tree.Missing {
			return false
		}
	}
	return true
}

// directories returns the child directories of dir that still exist.
func directories(dir *tree.Directory) []*tree.Directory {
	var out []*tree.Directory
	for _, d := range dir.Directories() {
		if !gone(d) {
			out = append(out, d)
		}
	}
	return out
}

// rejectFiles flags every present file of dir as misplaced.
func rejectFiles(v *Violations, dir *tree.Directory) {
	for _, f := range present(dir) {
		v.Add(FileInWrongDirectory, f.Path())
	}
}

// rejectDirectories flags every child directory of dir as too deep.
func rejectDirectories(v *Violations, dir *tree.Directory) {
	for _, d := range directories(dir) {
		v.Add(TooDeep, d.Path())
	}
}
