// Package style provides terminal output styling for the sigfind CLI,
// adapted from the box/status rendering conventions in
// jinterlante1206-AleutianLocal's pkg/ux, built around discovery results
// instead of a generic approve/skip workflow.
package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorMatch   = lipgloss.Color("#5FD7A7") // strong match, score near top
	ColorPartial = lipgloss.Color("#F4D03F") // partial / near-miss score
	ColorMiss    = lipgloss.Color("#E74C3C") // disqualified / not found
	ColorMuted   = lipgloss.Color("#6C7B8A")
	ColorAccent  = lipgloss.Color("#4FA8D8")
)

// Styles holds the pre-configured lipgloss styles the CLI renders with.
var Styles = struct {
	Title   lipgloss.Style
	Path    lipgloss.Style
	Score   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
	ErrorBox lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Path:     lipgloss.NewStyle().Foreground(ColorAccent),
	Score:    lipgloss.NewStyle().Bold(true).Foreground(ColorMatch),
	Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
	Error:    lipgloss.NewStyle().Foreground(ColorMiss),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMiss).
		Padding(0, 1),
}

// ScoreStyle picks a color band for a score in [0,~1.5], where 0.7 is an
// exact name hit before any bonuses.
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.7:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorMatch)
	case score >= 0.4:
		return lipgloss.NewStyle().Foreground(ColorPartial)
	default:
		return lipgloss.NewStyle().Foreground(ColorMiss)
	}
}

// RenderScore formats a score with its color band applied.
func RenderScore(score float64) string {
	return ScoreStyle(score).Render(fmt.Sprintf("%.2f", score))
}

// Box renders title+content in a rounded border panel.
func Box(title, content string) string {
	return Styles.Box.Render(Styles.Title.Render(title) + "\n" + content)
}

// ErrorBox renders title+content in a red-bordered panel, for NotFound/
// LoadError/BadSignature reporting.
func ErrorBox(title, content string) string {
	return Styles.ErrorBox.Render(Styles.Error.Bold(true).Render(title) + "\n" + content)
}
