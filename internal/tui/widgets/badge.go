// ABOUTME: Badge widgets for project role and status
// ABOUTME: Provides colored inline badges and status indicators

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#374151")
	BadgeNeutralFg = lipgloss.Color("#9CA3AF")
	BadgeOwnerBg   = lipgloss.Color("#8B5CF6")
	BadgeOwnerFg   = lipgloss.Color("#E9D5FF")
)

// Badge renders a colored badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	return badgeStyle(bg, fg).Render(text)
}

func badgeStyle(bg, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)
}

// RoleBadge renders "Owner" for owned projects and "Member" otherwise
func RoleBadge(p models.Project) string {
	if p.IsOwner() {
		return badgeStyle(BadgeOwnerBg, BadgeOwnerFg).Render("Owner")
	}
	return Badge("Member", StatusNeutral)
}

// ProjectStatusLevel maps a project status to a badge level
func ProjectStatusLevel(status string) StatusLevel {
	switch status {
	case models.StatusActive:
		return StatusOK
	case models.StatusCompleted:
		return StatusInfo
	default:
		return StatusNeutral
	}
}

// StatusDot renders the colored dot shown on project cards
func StatusDot(status string) string {
	color := BadgeNeutralBg
	switch ProjectStatusLevel(status) {
	case StatusOK:
		color = BadgeOKBg
	case StatusInfo:
		color = BadgeInfoBg
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	switch level {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(BadgeOKBg).Render(icons.CheckOK.String())
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(icons.Warning.String())
	case StatusCritical:
		return lipgloss.NewStyle().Foreground(BadgeCritBg).Render(icons.Critical.String())
	case StatusInfo:
		return lipgloss.NewStyle().Foreground(BadgeInfoBg).Render(icons.Info.String())
	default:
		return lipgloss.NewStyle().Foreground(BadgeNeutralFg).Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	icon := StatusIcon(level)

	var color lipgloss.Color
	switch level {
	case StatusOK:
		color = BadgeOKBg
	case StatusWarning:
		color = BadgeWarnBg
	case StatusCritical:
		color = BadgeCritBg
	case StatusInfo:
		color = BadgeInfoBg
	default:
		color = BadgeNeutralFg
	}

	textStyle := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s", icon, textStyle.Render(text))
}
