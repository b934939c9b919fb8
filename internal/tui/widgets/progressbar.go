// ABOUTME: Progress bar widgets for completion ratios
// ABOUTME: Renders filled/empty segments with an optional percentage label

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width       int
	FilledColor lipgloss.Color
	EmptyColor  lipgloss.Color
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:       20,
		FilledColor: lipgloss.Color("#3B82F6"), // Blue, matches completed projects
		EmptyColor:  lipgloss.Color("#374151"), // Dark gray
	}
}

// Percent returns part as a percentage of total, 0 when total is 0
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// ProgressBar renders a bar filled to percent
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(config.Width))
	empty := config.Width - filled

	return lipgloss.NewStyle().Foreground(config.FilledColor).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(config.EmptyColor).Render(strings.Repeat("░", empty))
}

// ProgressBarWithLabel renders the bar followed by the rounded percentage
func ProgressBarWithLabel(percent float64, config ProgressBarConfig) string {
	label := lipgloss.NewStyle().Foreground(config.FilledColor).Render(fmt.Sprintf("%3.0f%%", percent))
	return ProgressBar(percent, config) + " " + label
}
