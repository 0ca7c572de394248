package validation

import (
	"context"
	"regexp"
	"strings"
	"time"

	"media-catalog/core/tree"
)

var dayPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?: .+)?$`)

// PersonalValidator enforces root / person / year / YYYY-MM-DD[ description] / files,
// and that every .xmp sidecar sits next to the file it describes.
type PersonalValidator struct {
	now func() time.Time
}

// NewPersonalValidator is the personal schema factory. It performs no lookups.
func NewPersonalValidator(deps Dependencies) Validator {
	return &PersonalValidator{now: deps.Now}
}

func (p *PersonalValidator) Schema() string { return SchemaPersonal }

func (p *PersonalValidator) Validate(_ context.Context, vol *tree.Volume) *Violations {
	v := NewViolations()
	now := p.now()

	rejectFiles(v, vol.Root)
	for _, person := range directories(vol.Root) {
		rejectFiles(v, person)
		for _, yearDir := range directories(person) {
			_, ok := checkYear(v, yearDir, now)
			rejectFiles(v, yearDir)
			for _, day := range directories(yearDir) {
				checkDay(v, day, yearDir.Name, ok)
				rejectDirectories(v, day)
				checkSidecars(v, day)
			}
		}
	}
	return v
}

func checkDay(v *Violations, day *tree.Directory, year string, yearOK bool) {
	m := dayPattern.FindStringSubmatch(day.Name)
	if m == nil {
		v.Add(DayInvalid, day.Path())
		return
	}
	if _, err := time.Parse("2006-01-02", m[1]); err != nil {
		v.Add(DayInvalid, day.Path())
		return
	}
	if yearOK && !strings.HasPrefix(m[1], year+"-") {
		v.Add(DayYearMismatch, day.Path())
	}
}

// checkSidecars flags x.xmp unless a sibling named x, or a sibling with stem x, exists.
func checkSidecars(v *Violations, day *tree.Directory) {
	files := present(day)
	names := make(map[string]struct{}, len(files))
	stems := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f.Extension() == "xmp" {
			continue
		}
		names[f.Name] = struct{}{}
		if stem, _, ok := splitExtension(f.Name); ok {
			stems[stem] = struct{}{}
		}
	}

	for _, f := range files {
		if f.Extension() != "xmp" {
			continue
		}
		stem, _, _ := splitExtension(f.Name)
		_, byName := names[stem]
		_, byStem := stems[stem]
		if !byName && !byStem {
			v.Add(XmpWithoutFile, f.Path())
		}
	}
}
