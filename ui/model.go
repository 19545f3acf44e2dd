package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/imagesorter/triage"
)

// Layout constants
const (
	imagePanelPercent = 70
	infoPanelHeight   = 6  // title, two text lines, a progress bar and the border
	keybindPanelRows  = 10 // including the border
	borderSize        = 2
)

type keyMap struct {
	Quit key.Binding
}

var defaultKeys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "exit"),
	),
}

// SorterModel is the interactive triage screen. It only reads from the sorter
// for rendering and calls Accept and OnKey from Update.
type SorterModel struct {
	sorter *triage.Sorter
	keys   keyMap

	// UI components
	progress progress.Model

	// Layout
	width  int
	height int

	// frame caches the rendered image for frameIndex at the current size
	frame      string
	frameIndex int

	// Control state
	waiting  bool
	lastErr  error
	quitting bool

	// Version for display
	Version string
}

// NewSorterModel creates the model. Init issues the first receive.
func NewSorterModel(s *triage.Sorter, version string) SorterModel {
	return SorterModel{
		sorter:     s,
		keys:       defaultKeys,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		frameIndex: -1,
		waiting:    true,
		Version:    version,
	}
}

// Init implements tea.Model
func (m SorterModel) Init() tea.Cmd {
	return m.receive()
}

// receive runs the blocking queue read off the update loop
func (m SorterModel) receive() tea.Cmd {
	s := m.sorter
	return func() tea.Msg {
		t, ok := s.Receive()
		return taskMsg{Task: t, OK: ok}
	}
}

// Update implements tea.Model
func (m SorterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.sorter.RequestQuit()
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(m.imagePanelWidth()-borderSize, 1)
		m.frameIndex = -1
		m.refreshFrame()

	case taskMsg:
		m.waiting = false
		m.lastErr = nil
		m.sorter.Accept(msg.Task, msg.OK)
		m.refreshFrame()
	}

	return m, nil
}

func (m SorterModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Keys pressed while the next image is on its way are dropped
	if m.waiting || m.sorter.State() != triage.Displaying {
		return m, nil
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}

	if err := m.sorter.OnKey(msg.Runes[0]); err != nil {
		m.lastErr = err
		return m, nil
	}

	if m.sorter.Handled() {
		m.lastErr = nil
		m.waiting = true
		return m, m.receive()
	}
	return m, nil
}

// Quitting reports whether the user asked to exit
func (m SorterModel) Quitting() bool { return m.quitting }

func (m SorterModel) imagePanelWidth() int {
	return m.width * imagePanelPercent / 100
}

func (m *SorterModel) refreshFrame() {
	idx, ok := m.sorter.CurrentIndex()
	if !ok {
		m.frame = ""
		m.frameIndex = -1
		return
	}
	if idx == m.frameIndex || m.width == 0 {
		return
	}

	cols := m.imagePanelWidth() - borderSize
	rows := m.height - infoPanelHeight - borderSize
	m.frame = RenderImage(m.sorter.CurrentImage(), cols, rows)
	m.frameIndex = idx
}

// View implements tea.Model
func (m SorterModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}
	if m.width == 0 || m.height == 0 {
		return "Loading...\n"
	}

	leftWidth := m.imagePanelWidth()
	rightWidth := m.width - leftWidth

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderImagePanel(leftWidth, m.height-infoPanelHeight),
		m.renderInfoPanel(leftWidth, infoPanelHeight),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderKeybindPanel(rightWidth, keybindPanelRows),
		m.renderLogPanel(rightWidth, m.height-keybindPanelRows),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m SorterModel) renderImagePanel(w, h int) string {
	innerW, innerH := max(w-borderSize, 1), max(h-borderSize, 1)

	var body string
	switch m.sorter.State() {
	case triage.Finished:
		body = SuccessStyle.Render("All images have been sorted!")
	case triage.AwaitingFirst:
		body = ProcessingStyle.Render("Preparing images...")
	default:
		body = m.frame
	}

	return PanelStyle.
		Width(innerW).
		Height(innerH).
		MaxHeight(h).
		Render(lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, body))
}

func (m SorterModel) renderInfoPanel(w, h int) string {
	count, total := m.sorter.Progress()
	percent := 0.0
	if total > 0 {
		percent = float64(count) / float64(total)
	}

	file := "-"
	if path := m.sorter.CurrentPath(); path != "" {
		file = filepath.Base(path)
	}

	body := strings.Join([]string{
		fmt.Sprintf("File: %s", file),
		fmt.Sprintf("Progress: %d / %d", count, total),
		m.progress.ViewAs(percent),
	}, "\n")

	return panel("Info", body, w, h)
}

func (m SorterModel) renderKeybindPanel(w, h int) string {
	var lines []string
	for _, b := range m.sorter.Keybinds() {
		text := fmt.Sprintf("[%c] -> %s", b.Key, b.Dest)
		if b.Dest.Skip {
			lines = append(lines, SkipStyle.Render(text))
		} else {
			lines = append(lines, DestStyle.Render(text))
		}
	}
	lines = append(lines, "---")
	lines = append(lines, QuitStyle.Render(fmt.Sprintf("[%s] -> %s", m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc)))

	return panel("Keybinds", strings.Join(lines, "\n"), w, h)
}

func (m SorterModel) renderLogPanel(w, h int) string {
	var body string
	switch {
	case m.lastErr != nil:
		body = ErrorStyle.Render(fmt.Sprintf("❌ %v", m.lastErr))
	case m.sorter.LastLog() != nil:
		body = m.sorter.LastLog().String()
	}
	return panel("Last Action", body, w, h)
}

// panel draws a bordered box of total size w x h with a bold title line
func panel(title, body string, w, h int) string {
	innerW, innerH := max(w-borderSize, 1), max(h-borderSize, 1)
	content := PanelTitleStyle.Render(title) + "\n" + body
	return PanelStyle.
		Width(innerW).
		Height(innerH).
		MaxHeight(h).
		Render(content)
}
