// ABOUTME: Start menu shown when nobody is logged in
// ABOUTME: Lets the user choose between logging in, creating an account or quitting

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/projecthub-cli/internal/tui/styles"
)

// Choice represents a menu entry
type Choice int

const (
	ChoiceLogin Choice = iota
	ChoiceRegister
	ChoiceQuit
)

// SelectedMsg is sent when the user confirms a choice
type SelectedMsg struct {
	Choice Choice
}

type option struct {
	label       string
	description string
	value       Choice
}

// Menu is the anonymous start screen
type Menu struct {
	options []option
	cursor  int
}

// New creates the start menu with "Log in" selected
func New() *Menu {
	return &Menu{
		options: []option{
			{label: "Log in", description: "Use an existing account", value: ChoiceLogin},
			{label: "Create account", description: "Register with name, email and password", value: ChoiceRegister},
			{label: "Quit", description: "Leave ProjectHub", value: ChoiceQuit},
		},
	}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		return m, m.selected(m.options[m.cursor].value)
	case "l":
		return m, m.selected(ChoiceLogin)
	case "r":
		return m, m.selected(ChoiceRegister)
	case "q", "esc":
		return m, m.selected(ChoiceQuit)
	}
	return m, nil
}

func (m *Menu) selected(c Choice) tea.Cmd {
	return func() tea.Msg { return SelectedMsg{Choice: c} }
}

// Selected returns the highlighted choice
func (m *Menu) Selected() Choice {
	return m.options[m.cursor].value
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Welcome to ProjectHub"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Project management for your team"))
	sb.WriteString("\n\n")

	selected := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	normal := lipgloss.NewStyle().Foreground(styles.Text)
	desc := lipgloss.NewStyle().Foreground(styles.Muted)

	for i, opt := range m.options {
		cursor := "  "
		label := normal.Render(opt.label)
		if i == m.cursor {
			cursor = selected.Render("> ")
			label = selected.Render(opt.label)
		}
		sb.WriteString(cursor + label + "  " + desc.Render(opt.description) + "\n")
	}

	return sb.String()
}

// String returns the string representation of a Choice
func (c Choice) String() string {
	switch c {
	case ChoiceLogin:
		return "login"
	case ChoiceRegister:
		return "register"
	case ChoiceQuit:
		return "quit"
	default:
		return "unknown"
	}
}
