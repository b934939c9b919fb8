// ABOUTME: New-project screen as a bubbletea model wrapping a huh form
// ABOUTME: New projects always start active

package projectform

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/tui/styles"
	"github.com/markalston/projecthub-cli/internal/validation"
)

// SubmittedMsg carries the project to create
type SubmittedMsg struct {
	Input models.ProjectInput
}

// CancelledMsg is sent when the user closes the form
type CancelledMsg struct{}

// Form is the create-project screen
type Form struct {
	form        *huh.Form
	name        string
	description string
	err         string
	busy        bool
}

// New creates an empty project form
func New() *Form {
	f := &Form{}
	f.form = f.createForm()
	return f
}

func (f *Form) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.name).
				Validate(func(s string) error { return validation.Required("name", s) }),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&f.description),
		).Title("New project"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}
	if f.busy {
		return f, nil
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		return f, f.submit()
	}
	return f, cmd
}

func (f *Form) submit() tea.Cmd {
	in := models.ProjectInput{
		Name:        strings.TrimSpace(f.name),
		Description: strings.TrimSpace(f.description),
		Status:      models.StatusActive,
	}
	if err := validation.Project(in); err != nil {
		return f.SetError(err.Error())
	}
	f.busy = true
	f.err = ""
	return func() tea.Msg { return SubmittedMsg{Input: in} }
}

// SetError shows message and reopens the form with the values kept
func (f *Form) SetError(message string) tea.Cmd {
	f.err = message
	f.busy = false
	f.form = f.createForm()
	return f.form.Init()
}

// Busy reports whether the create request is in flight
func (f *Form) Busy() bool {
	return f.busy
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder
	if f.err != "" {
		sb.WriteString(styles.ErrorBox.Render(f.err))
		sb.WriteString("\n\n")
	}
	if f.busy {
		sb.WriteString(styles.Subtitle.Render("Creating project..."))
		return sb.String()
	}
	sb.WriteString(f.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("esc cancel"))
	return sb.String()
}
