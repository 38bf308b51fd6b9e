package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	okColor     = lipgloss.Color("#10B981")
	failColor   = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#6B6B6B")
	accentColor = lipgloss.Color("#F59E0B")

	okStyle     = lipgloss.NewStyle().Foreground(okColor).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(failColor).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	headerStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
)

// ProgressBar renders a one-line bar for batch profiling.
type ProgressBar struct {
	completed int
	total     int
	width     int
}

// NewProgressBar creates a new progress bar with the specified total and width.
func NewProgressBar(total int, width int) *ProgressBar {
	if width <= 0 {
		width = 15
	}
	return &ProgressBar{
		total: total,
		width: width,
	}
}

// Step advances the bar by one group.
func (p *ProgressBar) Step() {
	if p.completed < p.total {
		p.completed++
	}
}

// Render returns the bar followed by label, colored by whether the group
// produced a rule.
func (p *ProgressBar) Render(label string, ok bool) string {
	if p.total == 0 {
		return ""
	}

	filled := p.width * p.completed / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	style := okStyle
	if !ok {
		style = failStyle
	}

	return style.Render("["+bar+"]") +
		mutedStyle.Render(fmt.Sprintf(" %d/%d ", p.completed, p.total)) +
		style.Render(label)
}
