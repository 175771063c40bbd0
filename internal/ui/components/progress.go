package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/paesprep/internal/ui/theme"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// ProgressBar displays a horizontal score bar.
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64
	ShowPercent bool
	Width       int

	// Plain renders without styling.
	Plain bool
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		b.WriteString(p.style(theme.Body).Render(label) + "  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := p.Width - lipgloss.Width(b.String()) - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))

	b.WriteString(p.style(theme.ProgressFilled).Render(strings.Repeat(barFilled, filled)))
	b.WriteString(p.style(theme.ProgressEmpty).Render(strings.Repeat(barEmpty, barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(p.style(theme.Subtitle).Render(fmt.Sprintf("  %3d%%", int(p.Percent*100+0.5))))
	}
	return b.String()
}

func (p ProgressBar) style(s lipgloss.Style) lipgloss.Style {
	if p.Plain {
		return lipgloss.NewStyle()
	}
	return s
}
