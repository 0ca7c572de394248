package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolations(t *testing.T) {
	v := NewViolations()
	assert.True(t, v.Empty())
	assert.False(t, v.Only(TooDeep))

	v.Add(TooDeep, "a/b")
	v.Add(TooDeep, "a/c")
	assert.True(t, v.Only(TooDeep))
	assert.Equal(t, 2, v.Count(TooDeep))
	assert.Len(t, v.Kinds(), 1)

	v.Add(MissingYear, "a/x.mkv")
	assert.False(t, v.Only(TooDeep))
	assert.True(t, v.Has(MissingYear))
	assert.Equal(t, []Kind{MissingYear, TooDeep}, v.Kinds())
	assert.Equal(t, []Finding{
		{Kind: TooDeep, Path: "a/b"},
		{Kind: TooDeep, Path: "a/c"},
		{Kind: MissingYear, Path: "a/x.mkv"},
	}, v.Findings())
}

func TestMessage(t *testing.T) {
	for kind := range Messages {
		assert.Contains(t, Message(Finding{Kind: kind, Path: "some/path"}), "some/path")
	}
	assert.Equal(t, "x: custom", Message(Finding{Kind: "custom", Path: "x"}))
}
