package ui

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/imagesorter/catalog"
	"github.com/lepinkainen/imagesorter/pool"
	"github.com/lepinkainen/imagesorter/triage"
)

type fakeSource struct {
	tasks []pool.Task
}

func (f *fakeSource) Get() (pool.Task, bool) {
	if len(f.tasks) == 0 {
		return pool.Task{}, false
	}
	t := f.tasks[0]
	f.tasks = f.tasks[1:]
	return t, true
}

func (f *fakeSource) Dropped() int { return 0 }

func solid(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img
}

func newTestModel(t *testing.T, dests map[rune]string, names ...string) (SorterModel, string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	var tasks []pool.Task
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
		tasks = append(tasks, pool.Task{Index: i, Image: solid(8, 8)})
	}

	mapping, err := triage.NewMapping(dests)
	if err != nil {
		t.Fatal(err)
	}

	s := triage.New(catalog.New(paths), &fakeSource{tasks: tasks}, mapping)
	m := NewSorterModel(s, "test")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(SorterModel), dir
}

// step runs cmd synchronously and feeds its message back into the model
func step(t *testing.T, m SorterModel, cmd tea.Cmd) SorterModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	return updated.(SorterModel)
}

func press(m SorterModel, r rune) (SorterModel, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return updated.(SorterModel), cmd
}

func TestSorterModel_InitialView(t *testing.T) {
	m, _ := newTestModel(t, map[rune]string{'s': "skip", 'k': "/keep"}, "a.jpg")

	view := m.View()
	for _, want := range []string{"Preparing images...", "Keybinds", "[k] -> /keep", "[s] -> skip", "[q] -> exit", "Progress: 0 / 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestSorterModel_SkipFlow(t *testing.T) {
	m, _ := newTestModel(t, map[rune]string{'s': "skip"}, "a.jpg", "b.jpg")

	m = step(t, m, m.Init())
	if !strings.Contains(m.View(), "a.jpg") || !strings.Contains(m.View(), "Progress: 1 / 2") {
		t.Fatalf("Expected first image on screen, got:\n%s", m.View())
	}
	if m.frame == "" {
		t.Error("Expected the image frame to be rendered")
	}

	m, cmd := press(m, 's')
	if !m.waiting {
		t.Error("Expected the model to wait for the next image after an action")
	}
	if !strings.Contains(m.View(), "skip: a.jpg") {
		t.Errorf("Expected last action to show the skip, got:\n%s", m.View())
	}

	// Keys are ignored while waiting
	m2, cmd2 := press(m, 's')
	if cmd2 != nil || m2.sorter.LastLog() != m.sorter.LastLog() {
		t.Error("Expected keys to be ignored while waiting")
	}

	m = step(t, m, cmd)
	m, cmd = press(m, 's')
	m = step(t, m, cmd)

	if m.sorter.State() != triage.Finished {
		t.Fatalf("Expected finished state, got %s", m.sorter.State())
	}
	if !strings.Contains(m.View(), "All images have been sorted!") {
		t.Errorf("Expected completion message, got:\n%s", m.View())
	}
}

func TestSorterModel_FailedMoveStaysOnImage(t *testing.T) {
	destDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(destDir, "a.jpg"), []byte("taken"), 0644); err != nil {
		t.Fatal(err)
	}

	m, _ := newTestModel(t, map[rune]string{'x': destDir, 's': "skip"}, "a.jpg")
	m = step(t, m, m.Init())

	m, cmd := press(m, 'x')
	if cmd != nil {
		t.Error("A failed move must not fetch the next image")
	}
	if !errors.Is(m.lastErr, triage.ErrCollision) {
		t.Errorf("Expected collision error, got %v", m.lastErr)
	}
	if !strings.Contains(m.View(), "❌") {
		t.Errorf("Expected the error in the last action panel, got:\n%s", m.View())
	}
	if m.sorter.LastLog() != nil {
		t.Error("A failed move must not write the action log")
	}

	m, cmd = press(m, 's')
	if cmd == nil || m.lastErr != nil {
		t.Error("Expected skip to clear the error and fetch the next image")
	}
}

func TestSorterModel_UnboundAndSpecialKeys(t *testing.T) {
	m, _ := newTestModel(t, map[rune]string{'s': "skip"}, "a.jpg")
	m = step(t, m, m.Init())

	m, cmd := press(m, 'z')
	if cmd != nil || m.waiting {
		t.Error("Unbound keys must not advance")
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || updated.(SorterModel).waiting {
		t.Error("Non-rune keys must be ignored")
	}
}

func TestSorterModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, map[rune]string{'s': "skip"}, "a.jpg")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(SorterModel)
	if !m.Quitting() || !m.sorter.QuitRequested() {
		t.Error("Expected q to request quit")
	}
	if cmd == nil {
		t.Fatal("Expected tea.Quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected a QuitMsg")
	}
}

func TestRenderImage(t *testing.T) {
	tests := []struct {
		name      string
		img       image.Image
		cols      int
		rows      int
		wantLines int
		wantWidth int
	}{
		{"Fits exactly", solid(4, 4), 4, 2, 2, 4},
		{"Downscaled wide", solid(40, 10), 8, 10, 1, 8},
		{"Not upscaled", solid(2, 2), 50, 50, 1, 2},
		{"Odd height", solid(3, 3), 10, 10, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderImage(tt.img, tt.cols, tt.rows)
			lines := strings.Split(out, "\n")
			if len(lines) != tt.wantLines {
				t.Errorf("Expected %d lines, got %d", tt.wantLines, len(lines))
			}
			for _, line := range lines {
				if w := lipgloss.Width(line); w != tt.wantWidth {
					t.Errorf("Expected line width %d, got %d", tt.wantWidth, w)
				}
			}
		})
	}

	if RenderImage(nil, 10, 10) != "" || RenderImage(solid(2, 2), 0, 5) != "" {
		t.Error("Expected empty output for nil image or empty area")
	}
}
