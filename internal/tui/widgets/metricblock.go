// ABOUTME: Compact stat card widget for the dashboard
// ABOUTME: Renders an icon, a large count and a label inside a bordered box

package widgets

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/projecthub-cli/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	IconColor   lipgloss.Color
	ValueColor  lipgloss.Color
	LabelColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       20,
		BorderColor: lipgloss.Color("#374151"),
		IconColor:   lipgloss.Color("#8B5CF6"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
		LabelColor:  lipgloss.Color("#9CA3AF"),
	}
}

// MetricBlock renders icon, value and label stacked in a rounded box
func MetricBlock(icon icons.Icon, value, label string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	innerWidth := max(1, config.Width-4)

	iconLine := lipgloss.NewStyle().Foreground(config.IconColor).Render(icon.String())
	valueLine := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true).Render(value)
	labelLine := lipgloss.NewStyle().Foreground(config.LabelColor).Render(truncate(label, innerWidth))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(config.BorderColor).
		Padding(0, 1).
		Width(config.Width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, iconLine, valueLine, labelLine))
}

// CountBlock renders a count metric
func CountBlock(icon icons.Icon, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, strconv.Itoa(count), label, config)
}

// truncate shortens a string to maxLen runes with ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
