package keypath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		path KeyPath
		want string
	}{
		{"scalar", Path(Name("scale")), "scale"},
		{"array_element_field", Path(Name("circles"), Index(0), Name("radius")), "circles[0].radius"},
		{"nested_names", Path(Name("filer"), Name("address")), "filer.address"},
		{"trailing_index", Path(Name("circles"), Index(3)), "circles[3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		"scale",
		"circles[0].radius",
		"filer.address",
		"circles[3]",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			p, err := Parse(s)
			require.NoError(t, err)
			assert.Equal(t, s, p.String())
		})
	}
}

func TestParseDottedIndex(t *testing.T) {
	p, err := Parse("circles.0.radius")
	require.NoError(t, err)
	assert.True(t, p.Equal(Path(Name("circles"), Index(0), Name("radius"))))
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	a := Path(Name("circles"), Index(0))
	assert.True(t, a.Equal(Path(Name("circles"), Index(0))))
	assert.False(t, a.Equal(Path(Name("circles"), Index(1))))
	assert.False(t, a.Equal(Path(Name("circles"))))
	assert.False(t, a.Equal(Path(Name("circles"), Name("0"))))
}

func TestChildDoesNotAliasParent(t *testing.T) {
	base := Path(Name("circles"))
	a := base.Child(Index(0))
	b := base.Child(Index(1))
	assert.Equal(t, "circles[0]", a.String())
	assert.Equal(t, "circles[1]", b.String())
	assert.Equal(t, "circles", base.String())
}
