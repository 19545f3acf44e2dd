package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMapping(t *testing.T) {
	m, err := NewMapping(map[rune]string{
		'x': "/photos/keep",
		's': "skip",
		'S': "SKIP",
		'd': "  /photos/trash  ",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())

	dest, ok := m.Lookup('x')
	require.True(t, ok)
	assert.Equal(t, Destination{Dir: "/photos/keep"}, dest)

	dest, ok = m.Lookup('S')
	require.True(t, ok)
	assert.True(t, dest.Skip)
	assert.Equal(t, SkipSentinel, dest.String())

	dest, _ = m.Lookup('d')
	assert.Equal(t, "/photos/trash", dest.Dir)

	_, ok = m.Lookup('z')
	assert.False(t, ok)

	keys := []rune{}
	for _, b := range m.Bindings() {
		keys = append(keys, b.Key)
	}
	assert.Equal(t, []rune{'S', 'd', 's', 'x'}, keys)
}

func TestNewMapping_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  map[rune]string
	}{
		{"Empty", map[rune]string{}},
		{"Nil", nil},
		{"Blank destination", map[rune]string{'a': "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMapping(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidMapping)
		})
	}
}

func TestLogEntryStrings(t *testing.T) {
	assert.Equal(t, "move: a.jpg -> /dest", MoveSuccess{FileName: "a.jpg", DestPath: "/dest"}.String())
	assert.Equal(t, "skip: b.png", Skip{FileName: "b.png"}.String())
}
