package tui

import (
	"ciutil/internal/model"
	"ciutil/internal/roots"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel holds the TUI state of the pattern tester.
type AppModel struct {
	// Data
	Paths   []string
	Pattern string
	Engine  roots.Engine
	Exclude []string
	Resolve func(pattern string) (string, error) // expands presets such as "@linting"
	Matches []model.RootMatch
	Roots   []string
	Output  string
	Err     error

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg
	Format      model.OutputFormat

	// Pattern editing
	InputMode   bool
	InputBuffer textinput.Model

	// Components
	OutputViewport viewport.Model
}

// InitialModel returns the tester state for paths and the starting pattern.
// resolve expands preset names in typed patterns; nil uses patterns as typed.
func InitialModel(paths []string, pattern string, resolve func(string) (string, error), engine roots.Engine, exclude []string, format model.OutputFormat) AppModel {
	ti := textinput.New()
	ti.Placeholder = "^([^/]+)/"
	ti.CharLimit = 256
	ti.Width = 40

	m := AppModel{
		Paths:          paths,
		Pattern:        pattern,
		Engine:         engine,
		Exclude:        exclude,
		Resolve:        resolve,
		Format:         format,
		InputBuffer:    ti,
		OutputViewport: viewport.New(40, 5),
	}
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// recompute reruns the extraction for the current pattern and format.
func (m *AppModel) recompute() {
	m.Err = nil
	m.Matches = nil
	m.Roots = nil
	m.Output = ""

	pattern := m.Pattern
	if m.Resolve != nil {
		resolved, err := m.Resolve(pattern)
		if err != nil {
			m.Err = err
			m.OutputViewport.SetContent("")
			return
		}
		pattern = resolved
	}
	e, err := roots.New(pattern, roots.WithEngine(m.Engine), roots.WithExclude(m.Exclude...))
	if err != nil {
		m.Err = err
		m.OutputViewport.SetContent("")
		return
	}
	matches, err := e.Explain(m.Paths)
	if err != nil {
		m.Err = err
		return
	}
	m.Matches = matches
	for _, rm := range matches {
		if rm.Emitted() {
			m.Roots = append(m.Roots, rm.Root)
		}
	}
	out, err := roots.Format(m.Roots, m.Format)
	if err != nil {
		m.Err = err
		return
	}
	m.Output = roots.OutputName + "=" + out
	m.OutputViewport.SetContent(m.Output)

	if m.SelectedIdx >= len(m.Matches) {
		m.SelectedIdx = max(0, len(m.Matches)-1)
	}
}
