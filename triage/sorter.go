// Package triage holds the single-consumer state machine that shows prepared
// images one at a time and moves or skips them on key presses.
package triage

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lepinkainen/imagesorter/catalog"
	"github.com/lepinkainen/imagesorter/pool"
)

var (
	// ErrNotDisplaying is returned by OnKey when no image is on screen
	ErrNotDisplaying = errors.New("no image is being displayed")
	// ErrAlreadyHandled is returned by OnKey when the current image was already
	// moved or skipped and GetNext has not been called yet
	ErrAlreadyHandled = errors.New("current image was already handled")
)

// State is the sorter lifecycle: AwaitingFirst -> Displaying -> Finished
type State int

const (
	AwaitingFirst State = iota
	Displaying
	Finished
)

func (s State) String() string {
	switch s {
	case AwaitingFirst:
		return "awaiting-first"
	case Displaying:
		return "displaying"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Source is the receiving end of the worker pool
type Source interface {
	// Get blocks for the next Task; false means disconnected
	Get() (pool.Task, bool)
	// Dropped is the number of catalog entries that will never be delivered
	Dropped() int
}

// Sorter is the consumer. All methods except Receive must be called from one
// goroutine.
type Sorter struct {
	catalog *catalog.Catalog
	source  Source
	mapping Mapping
	log     zerolog.Logger

	state    State
	current  pool.Task
	handled  bool
	progress int
	lastLog  LogEntry
	quit     bool
}

// Option configures a Sorter
type Option func(*Sorter)

// WithLogger sets the logger used for actions and failures
func WithLogger(l zerolog.Logger) Option {
	return func(s *Sorter) { s.log = l }
}

// New creates a sorter in the AwaitingFirst state
func New(cat *catalog.Catalog, src Source, mapping Mapping, opts ...Option) *Sorter {
	s := &Sorter{
		catalog: cat,
		source:  src,
		mapping: mapping,
		log:     zerolog.Nop(),
		state:   AwaitingFirst,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetNext blocks for the next Task and displays it. It returns false once the
// source is disconnected and the sorter is Finished.
func (s *Sorter) GetNext() bool {
	if s.state == Finished {
		return false
	}
	task, ok := s.Receive()
	s.Accept(task, ok)
	return ok
}

// Receive performs only the blocking read from the source and does not touch
// sorter state, so it may run on another goroutine. The result must be handed
// back to Accept on the sorter's goroutine.
func (s *Sorter) Receive() (pool.Task, bool) {
	return s.source.Get()
}

// Accept applies the result of Receive
func (s *Sorter) Accept(task pool.Task, ok bool) {
	if s.state == Finished {
		return
	}

	if !ok {
		s.state = Finished
		s.current = pool.Task{}
		s.handled = false
		s.log.Info().
			Int("processed", s.progress).
			Int("dropped", s.source.Dropped()).
			Msg("all images processed")
		return
	}

	s.state = Displaying
	s.current = task
	s.handled = false
	s.progress++
}

// OnKey runs the action bound to key against the current image. Unbound keys
// are ignored. A failed move leaves the current image, progress and action
// log untouched so the caller can retry or pick another key.
func (s *Sorter) OnKey(key rune) error {
	dest, ok := s.mapping.Lookup(key)
	if !ok {
		return nil
	}

	if s.state != Displaying {
		return ErrNotDisplaying
	}
	if s.handled {
		return ErrAlreadyHandled
	}

	path := s.CurrentPath()
	fileName := filepath.Base(path)

	if dest.Skip {
		entry := Skip{FileName: fileName}
		s.lastLog = entry
		s.handled = true
		s.log.Info().Str("key", string(key)).Str("path", path).Msg(entry.String())
		return nil
	}

	if _, err := MoveImage(path, dest.Dir); err != nil {
		s.log.Error().
			Err(err).
			Str("key", string(key)).
			Str("path", path).
			Str("dest", dest.Dir).
			Msg("failed to move image")
		return err
	}

	entry := MoveSuccess{FileName: fileName, DestPath: dest.Dir}
	s.lastLog = entry
	s.handled = true
	s.log.Info().Str("key", string(key)).Str("path", path).Msg(entry.String())
	return nil
}

// RequestQuit marks the sorter as done. It does not stop the worker pool.
func (s *Sorter) RequestQuit() { s.quit = true }

// QuitRequested reports whether RequestQuit was called
func (s *Sorter) QuitRequested() bool { return s.quit }

// State returns the current lifecycle state
func (s *Sorter) State() State { return s.state }

// Finished reports whether the source is exhausted
func (s *Sorter) Finished() bool { return s.state == Finished }

// Handled reports whether the displayed image already had an action applied
func (s *Sorter) Handled() bool { return s.handled }

// CurrentImage returns the prepared image on display, or nil
func (s *Sorter) CurrentImage() image.Image {
	if s.state != Displaying {
		return nil
	}
	return s.current.Image
}

// CurrentIndex returns the catalog index on display
func (s *Sorter) CurrentIndex() (int, bool) {
	if s.state != Displaying {
		return 0, false
	}
	return s.current.Index, true
}

// CurrentPath returns the catalog path on display, or ""
func (s *Sorter) CurrentPath() string {
	if s.state != Displaying {
		return ""
	}
	return s.catalog.Path(s.current.Index)
}

// Progress returns the number of images received and the number that will
// ever be delivered. Images that failed to decode are taken off the total.
func (s *Sorter) Progress() (count, total int) {
	return s.progress, s.catalog.Len() - s.source.Dropped()
}

// Keybinds returns the key table sorted by key
func (s *Sorter) Keybinds() []Binding { return s.mapping.Bindings() }

// LastLog returns the most recent action, or nil before the first one
func (s *Sorter) LastLog() LogEntry { return s.lastLog }
