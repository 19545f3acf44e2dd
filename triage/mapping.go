package triage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SkipSentinel is the destination value that marks an image processed
// without touching the filesystem
const SkipSentinel = "skip"

// ErrInvalidMapping is returned for unusable key bindings
var ErrInvalidMapping = errors.New("invalid destination mapping")

// Destination is where a key sends the current image
type Destination struct {
	Dir  string
	Skip bool
}

// String returns the directory, or SkipSentinel for skip bindings
func (d Destination) String() string {
	if d.Skip {
		return SkipSentinel
	}
	return d.Dir
}

// Binding is one row of the keybind table
type Binding struct {
	Key  rune
	Dest Destination
}

// Mapping is the immutable table of key -> destination
type Mapping struct {
	entries  map[rune]Destination
	bindings []Binding
}

// NewMapping validates raw and builds a Mapping. The value "skip" (any case)
// becomes a skip binding; every other value is a directory path.
func NewMapping(raw map[rune]string) (Mapping, error) {
	if len(raw) == 0 {
		return Mapping{}, fmt.Errorf("%w: no keys bound", ErrInvalidMapping)
	}

	m := Mapping{entries: make(map[rune]Destination, len(raw))}
	for key, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			return Mapping{}, fmt.Errorf("%w: key %q has an empty destination", ErrInvalidMapping, key)
		}

		dest := Destination{Dir: value}
		if strings.EqualFold(value, SkipSentinel) {
			dest = Destination{Skip: true}
		}
		m.entries[key] = dest
		m.bindings = append(m.bindings, Binding{Key: key, Dest: dest})
	}

	sort.Slice(m.bindings, func(i, j int) bool { return m.bindings[i].Key < m.bindings[j].Key })
	return m, nil
}

// Lookup returns the destination bound to key
func (m Mapping) Lookup(key rune) (Destination, bool) {
	d, ok := m.entries[key]
	return d, ok
}

// Bindings returns the table sorted by key
func (m Mapping) Bindings() []Binding {
	return append([]Binding(nil), m.bindings...)
}

// Len returns the number of bound keys
func (m Mapping) Len() int { return len(m.entries) }
