// ABOUTME: Login screen as a bubbletea model wrapping a huh form
// ABOUTME: Emits the submitted credentials; the app performs the request

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/tui/styles"
	"github.com/markalston/projecthub-cli/internal/validation"
)

// SubmittedMsg carries the credentials once the form is complete
type SubmittedMsg struct {
	Credentials models.Credentials
}

// CancelledMsg is sent when the user leaves the login screen
type CancelledMsg struct{}

// Form is the login screen
type Form struct {
	form     *huh.Form
	email    string
	password string
	err      string
	notice   string
	busy     bool
}

// New creates a login form, pre-filling email when known
func New(email string) *Form {
	f := &Form{email: email}
	f.form = f.createForm()
	return f
}

func (f *Form) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&f.email).
				Validate(validation.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(func(s string) error { return validation.Required("password", s) }),
		).Title("Log in").
			Description("Sign in to see your projects"),
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

// submit emits the credentials and marks the form busy until the app answers
func (f *Form) submit() tea.Cmd {
	f.busy = true
	f.err = ""
	creds := models.Credentials{Email: strings.TrimSpace(f.email), Password: f.password}
	return func() tea.Msg { return SubmittedMsg{Credentials: creds} }
}

// SetError shows message and resets the form for another attempt.
// The email is kept; the password is cleared.
func (f *Form) SetError(message string) tea.Cmd {
	f.err = message
	f.busy = false
	f.password = ""
	f.form = f.createForm()
	return f.form.Init()
}

// SetNotice shows an informational message above the form
func (f *Form) SetNotice(message string) {
	f.notice = message
}

// Busy reports whether a login request is in flight
func (f *Form) Busy() bool {
	return f.busy
}

// Email returns the email typed so far
func (f *Form) Email() string {
	return f.email
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder

	if f.notice != "" {
		sb.WriteString(styles.NoticeBox.Render(f.notice))
		sb.WriteString("\n\n")
	}
	if f.err != "" {
		sb.WriteString(styles.ErrorBox.Render(f.err))
		sb.WriteString("\n\n")
	}
	if f.busy {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		return sb.String()
	}

	sb.WriteString(f.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("Don't have an account? Press esc and choose Create account"))
	return sb.String()
}
