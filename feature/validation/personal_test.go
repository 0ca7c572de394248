package validation

import (
	"context"
	"testing"

	"media-catalog/core/tree"

	"github.com/stretchr/testify/assert"
)

func TestPersonalValidator(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		expected []Kind
	}{
		{"Valid", []string{
			"alice/2020/2020-01-05/scan.pdf",
			"alice/2020/2020-02-10 Tax return/form.pdf",
			"alice/2020/2020-02-10 Tax return/form.xmp",
			"bob/2019/2019-12-31/photo.jpg",
			"bob/2019/2019-12-31/photo.jpg.xmp",
		}, nil},
		{"File at root", []string{"loose.pdf"}, []Kind{FileInWrongDirectory}},
		{"File in person", []string{"alice/loose.pdf"}, []Kind{FileInWrongDirectory}},
		{"File in year", []string{"alice/2020/loose.pdf"}, []Kind{FileInWrongDirectory}},
		{"Bad year", []string{"alice/twenty/2020-01-05/scan.pdf"}, []Kind{YearNotANumber}},
		{"Bad day", []string{"alice/2020/January/scan.pdf"}, []Kind{DayInvalid}},
		{"Impossible date", []string{"alice/2020/2020-02-30/scan.pdf"}, []Kind{DayInvalid}},
		{"Day without space", []string{"alice/2020/2020-02-10Tax/scan.pdf"}, []Kind{DayInvalid}},
		{"Day in other year", []string{"alice/2020/2019-12-31/scan.pdf"}, []Kind{DayYearMismatch}},
		{"Too deep", []string{"alice/2020/2020-01-05/more/scan.pdf"}, []Kind{TooDeep}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vol := buildVolume(t, SchemaPersonal, tt.paths...)
			v := NewPersonalValidator(deps(nil)).Validate(context.Background(), vol)
			if tt.expected == nil {
				assert.True(t, v.Empty(), "unexpected: %v", v.Findings())
				return
			}
			assert.Equal(t, tt.expected, v.Kinds())
		})
	}
}

func TestPersonalValidator_LoneSidecar(t *testing.T) {
	vol := buildVolume(t, SchemaPersonal,
		"alice/2020/2020-01-05/bar.xmp",
		"alice/2020/2020-01-05/other.pdf",
	)
	v := NewPersonalValidator(deps(nil)).Validate(context.Background(), vol)

	assert.True(t, v.Only(XmpWithoutFile))
	assert.Equal(t, []Finding{{Kind: XmpWithoutFile, Path: "alice/2020/2020-01-05/bar.xmp"}}, v.Findings())
}

func TestPersonalValidator_SidecarOfMissingFile(t *testing.T) {
	vol := buildVolume(t, SchemaPersonal,
		"alice/2020/2020-01-05/bar.xmp",
		"alice/2020/2020-01-05/bar.jpg",
	)
	lookupFile(t, vol, "alice/2020/2020-01-05/bar.jpg").State = tree.Missing

	v := NewPersonalValidator(deps(nil)).Validate(context.Background(), vol)
	assert.True(t, v.Only(XmpWithoutFile))
}
