package tui

import (
	"ciutil/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.OutputViewport.Width = msg.Width/2 - 4
		m.OutputViewport.Height = max(3, msg.Height/4)
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.Pattern = m.InputBuffer.Value()
				m.recompute()
				return m, nil
			case tea.KeyEsc:
				// Leave the pattern as it was
				m.InputMode = false
				m.InputBuffer.Blur()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < len(m.Matches)-1 {
				m.SelectedIdx++
			}
		case "f":
			if m.Format == model.FormatJSON {
				m.Format = model.FormatCSV
			} else {
				m.Format = model.FormatJSON
			}
			m.recompute()
		case "/", "e":
			m.InputMode = true
			m.InputBuffer.SetValue(m.Pattern)
			m.InputBuffer.CursorEnd()
			m.InputBuffer.Focus()
			return m, textinput.Blink
		case "pgup":
			m.OutputViewport.LineUp(1)
		case "pgdown":
			m.OutputViewport.LineDown(1)
		}
	}

	return m, cmd
}
