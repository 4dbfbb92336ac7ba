// Package report renders a root extraction run as a readable table.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ciutil/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	newStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)

	dupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange
)

// StatusIcon returns the icon for one match outcome.
func StatusIcon(m model.RootMatch) string {
	switch {
	case m.Excluded:
		return model.IconExcluded
	case m.Kind == model.NoMatch:
		return model.IconMissing
	case m.Kind == model.EmptyCapture:
		return model.IconEmpty
	case m.Duplicate:
		return model.IconDuplicate
	}
	return model.IconNew
}

// Describe is the plain-text status of one match outcome.
func Describe(m model.RootMatch) string {
	switch {
	case m.Excluded:
		return "excluded"
	case m.Kind == model.NoMatch:
		return "no match"
	case m.Kind == model.EmptyCapture:
		return "empty capture"
	case m.Duplicate:
		return "duplicate of " + m.Root
	}
	return "new root " + m.Root
}

// Render builds the report for a run of pattern over matches.
func Render(pattern string, matches []model.RootMatch, output string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Unique Root Directories"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Pattern: %s\n\n", pattern)

	width := 0
	for _, m := range matches {
		width = max(width, lipgloss.Width(string(m.Path)))
	}

	emitted := 0
	for i, m := range matches {
		style := skipStyle
		switch {
		case m.Emitted():
			style = newStyle
			emitted++
		case m.Kind == model.Captured && !m.Excluded:
			style = dupStyle
		}
		line := fmt.Sprintf("%3d. %s %-*s  %s", i+1, StatusIcon(m), width, m.Path, Describe(m))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	if len(matches) == 0 {
		b.WriteString(skipStyle.Render("  (no paths)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%d path(s), %d unique root(s)\n", len(matches), emitted)
	if emitted == 0 && len(matches) > 0 {
		b.WriteString(adviceStyle.Render("No path produced a root. Check that group 1 of the pattern captures the root segment."))
		b.WriteString("\n")
	}
	b.WriteString("Output: " + output + "\n")
	return b.String()
}
