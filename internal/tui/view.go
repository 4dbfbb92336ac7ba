package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ciutil/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	newRootStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true) // Sky Blue/Cyan
	dimmedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

func (m AppModel) View() string {
	width := m.WindowSize.Width
	height := m.WindowSize.Height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	// Subtracting 6 for horizontal margin (borders x2 + buffer)
	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	interiorHeight := height - 8
	if interiorHeight < 4 {
		interiorHeight = 4
	}

	// LEFT PANEL: paths with their match status
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render("Paths"))
	leftView.WriteString("\n\n")

	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.Matches)
	if len(m.Matches) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - (visibleItems / 2)
		}
		if startIdx+visibleItems > len(m.Matches) {
			startIdx = len(m.Matches) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		rm := m.Matches[i]
		line := fmt.Sprintf("%2d. %s %s", i+1, report.StatusIcon(rm), rm.Path)
		if r := []rune(line); len(r) > leftWidth-2 && leftWidth > 8 {
			line = string(r[:leftWidth-5]) + "..."
		}

		style := dimmedStyle
		switch {
		case i == m.SelectedIdx:
			style = selectedStyle
		case rm.Emitted():
			style = newRootStyle
		case rm.Root != "":
			style = normalStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}
	if len(m.Matches) == 0 {
		leftView.WriteString(dimmedStyle.Render("(no paths)"))
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: pattern, selected path details, roots and the output line
	var rightView strings.Builder
	rightView.WriteString(titleStyle.Render("Pattern"))
	rightView.WriteString("\n\n")
	if m.InputMode {
		rightView.WriteString(m.InputBuffer.View())
	} else {
		rightView.WriteString(normalStyle.Render(m.Pattern))
	}
	rightView.WriteString("\n")
	rightView.WriteString(dimmedStyle.Render(fmt.Sprintf("engine=%s format=%s", m.Engine, m.Format)))
	rightView.WriteString("\n\n")

	if m.Err != nil {
		rightView.WriteString(errorStyle.Render("Error: " + m.Err.Error()))
		rightView.WriteString("\n")
	} else {
		if m.SelectedIdx < len(m.Matches) {
			rm := m.Matches[m.SelectedIdx]
			rightView.WriteString(fmt.Sprintf("Selected: %s\n", rm.Path))
			rightView.WriteString(fmt.Sprintf("Result:   %s\n\n", report.Describe(rm)))
		}
		rightView.WriteString(titleStyle.Render(fmt.Sprintf("Roots (%d)", len(m.Roots))))
		rightView.WriteString("\n\n")
		for _, r := range m.Roots {
			rightView.WriteString(newRootStyle.Render("  " + r))
			rightView.WriteString("\n")
		}
		rightView.WriteString("\n")
		rightView.WriteString(m.OutputViewport.View())
	}

	rBorderColor := borderColor
	if m.InputMode {
		rBorderColor = activeColor
	}
	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(rBorderColor).
		Render(rightView.String())

	footer := "↑/k ↓/j move • / edit pattern • f json/csv • q quit"
	if m.InputMode {
		footer = "enter apply • esc cancel"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		footerStyle.Render(footer),
	)
}
