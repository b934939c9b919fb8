// ABOUTME: Registration screen as a bubbletea model wrapping a huh form
// ABOUTME: Field rules are checked inline so no invalid form reaches the backend

package register

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/markalston/projecthub-cli/internal/tui/styles"
	"github.com/markalston/projecthub-cli/internal/validation"
)

// SubmittedMsg carries a validated registration
type SubmittedMsg struct {
	Registration validation.Registration
}

// CancelledMsg is sent when the user leaves the screen
type CancelledMsg struct{}

// Form is the registration screen
type Form struct {
	form    *huh.Form
	name    string
	email   string
	pass    string
	confirm string
	err     string
	busy    bool
}

// New creates an empty registration form
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
				Validate(validation.Name),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&f.email).
				Validate(validation.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.pass).
				Validate(validation.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&f.confirm).
				Validate(func(s string) error { return validation.Confirmation(f.pass, s) }),
		).Title("Create account"),
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

// submit re-validates the whole form and emits it. A failure is shown in
// place and the form restarts with the typed values kept.
func (f *Form) submit() tea.Cmd {
	reg := validation.Registration{
		Name:            strings.TrimSpace(f.name),
		Email:           strings.TrimSpace(f.email),
		Password:        f.pass,
		ConfirmPassword: f.confirm,
	}
	if err := reg.Validate(); err != nil {
		return f.SetError(err.Error())
	}
	f.busy = true
	f.err = ""
	return func() tea.Msg { return SubmittedMsg{Registration: reg} }
}

// SetError shows message and lets the user edit the form again
func (f *Form) SetError(message string) tea.Cmd {
	f.err = message
	f.busy = false
	f.form = f.createForm()
	return f.form.Init()
}

// Busy reports whether a register request is in flight
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
		sb.WriteString(styles.Subtitle.Render("Creating account..."))
		return sb.String()
	}
	sb.WriteString(f.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("esc back"))
	return sb.String()
}
