// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, session expiry and routes keyboard input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/service"
	"github.com/markalston/projecthub-cli/internal/session"
	"github.com/markalston/projecthub-cli/internal/tui/dashboard"
	"github.com/markalston/projecthub-cli/internal/tui/debuglog"
	"github.com/markalston/projecthub-cli/internal/tui/icons"
	"github.com/markalston/projecthub-cli/internal/tui/login"
	"github.com/markalston/projecthub-cli/internal/tui/menu"
	"github.com/markalston/projecthub-cli/internal/tui/projectform"
	"github.com/markalston/projecthub-cli/internal/tui/recentaccounts"
	"github.com/markalston/projecthub-cli/internal/tui/register"
	"github.com/markalston/projecthub-cli/internal/tui/styles"
	"github.com/markalston/projecthub-cli/internal/validation"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenDashboard
	ScreenCreateProject
)

// Layout constants
const (
	minTerminalWidth  = 80 // Minimum width before using single-column layout
	panelPadding      = 4  // Horizontal padding inside a panel (2 each side)
	actionsPaneWidth  = 26
	sessionExpiredMsg = "Your session has expired. Please log in again."
)

// authDoneMsg is sent when a login or register request returns
type authDoneMsg struct {
	result *models.AuthResult
	err    error
}

// dashboardLoadedMsg is sent when the dashboard data is loaded
type dashboardLoadedMsg struct {
	data *service.Dashboard
	err  error
}

// projectCreatedMsg is sent when a create-project request returns
type projectCreatedMsg struct {
	err error
}

// sessionInvalidatedMsg is sent when the session is torn down, usually by a 401
type sessionInvalidatedMsg struct{}

// App is the root model for the TUI
type App struct {
	svc        *service.Services
	ctx        context.Context
	cancel     context.CancelFunc
	screen     Screen
	width      int
	height     int
	err        error
	loading    bool
	data       *service.Dashboard
	lastUpdate time.Time

	// Child models
	menu         *menu.Menu
	loginForm    *login.Form
	registerForm *register.Form
	projectForm  *projectform.Form
	dashboard    *dashboard.Dashboard
	spinner      spinner.Model

	recent *recentaccounts.Accounts

	// Session invalidation is delivered from request goroutines through this channel
	invalidated        chan struct{}
	stopWatching       func()
	expectInvalidation bool
}

// New creates a new TUI application. A stored session skips the start menu.
func New(svc *service.Services) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		svc:         svc,
		ctx:         ctx,
		cancel:      cancel,
		screen:      ScreenMenu,
		menu:        menu.New(),
		invalidated: make(chan struct{}, 1),
		recent:      recentaccounts.New(""),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
	}

	if svc != nil {
		a.stopWatching = svc.Session.OnInvalidated(func() {
			select {
			case a.invalidated <- struct{}{}:
			default:
			}
		})
		if svc.Auth.IsAuthenticated() {
			a.screen = ScreenDashboard
			a.loading = true
		}
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.waitForInvalidation()}
	if a.screen == ScreenDashboard {
		cmds = append(cmds, a.spinner.Tick, a.loadDashboard())
	}
	return tea.Batch(cmds...)
}

// Close stops watching the session and cancels in-flight requests
func (a *App) Close() {
	if a.stopWatching != nil {
		a.stopWatching()
		a.stopWatching = nil
	}
	a.cancel()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.dashboardContentWidth(), a.contentHeight())
		}
		return a.updateActiveForm(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenDashboard:
			return a.updateDashboard(msg)
		default:
			return a.updateActiveForm(msg)
		}

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case menu.SelectedMsg:
		switch msg.Choice {
		case menu.ChoiceLogin:
			return a, a.showLogin("")
		case menu.ChoiceRegister:
			return a, a.showRegister()
		default:
			return a, tea.Quit
		}

	case login.SubmittedMsg:
		return a, a.login(msg.Credentials)

	case register.SubmittedMsg:
		return a, a.register(msg.Registration)

	case login.CancelledMsg, register.CancelledMsg:
		a.showMenu()
		return a, nil

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case dashboardLoadedMsg:
		return a.handleDashboardLoaded(msg)

	case projectform.SubmittedMsg:
		return a, a.createProject(msg.Input)

	case projectform.CancelledMsg:
		a.screen = ScreenDashboard
		a.projectForm = nil
		return a, nil

	case projectCreatedMsg:
		return a.handleProjectCreated(msg)

	case sessionInvalidatedMsg:
		return a.handleSessionInvalidated()

	default:
		// huh forms need their internal messages
		return a.updateActiveForm(msg)
	}
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.menu == nil {
		return a, nil
	}
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.loading {
			return a, a.refresh()
		}
	case "n":
		if !a.loading {
			return a, a.showCreateProject()
		}
	case "l":
		return a, a.logout()
	}
	return a, nil
}

// updateActiveForm forwards msg to whichever form is on screen
func (a *App) updateActiveForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case a.screen == ScreenLogin && a.loginForm != nil:
		var model tea.Model
		model, cmd = a.loginForm.Update(msg)
		a.loginForm = model.(*login.Form)
	case a.screen == ScreenRegister && a.registerForm != nil:
		var model tea.Model
		model, cmd = a.registerForm.Update(msg)
		a.registerForm = model.(*register.Form)
	case a.screen == ScreenCreateProject && a.projectForm != nil:
		var model tea.Model
		model, cmd = a.projectForm.Update(msg)
		a.projectForm = model.(*projectform.Form)
	}
	return a, cmd
}

func (a *App) showMenu() {
	a.screen = ScreenMenu
	a.menu = menu.New()
	a.loginForm = nil
	a.registerForm = nil
	a.projectForm = nil
}

func (a *App) showLogin(notice string) tea.Cmd {
	email := a.recent.Latest()
	if a.loginForm != nil && a.loginForm.Email() != "" {
		email = a.loginForm.Email()
	}
	a.loginForm = login.New(email)
	if notice != "" {
		a.loginForm.SetNotice(notice)
	}
	a.screen = ScreenLogin
	return a.loginForm.Init()
}

func (a *App) showRegister() tea.Cmd {
	a.registerForm = register.New()
	a.screen = ScreenRegister
	return a.registerForm.Init()
}

func (a *App) showCreateProject() tea.Cmd {
	a.projectForm = projectform.New()
	a.screen = ScreenCreateProject
	return a.projectForm.Init()
}

// showDashboard switches to the dashboard and starts loading it
func (a *App) showDashboard() tea.Cmd {
	a.screen = ScreenDashboard
	a.menu = nil
	a.loginForm = nil
	a.registerForm = nil
	a.projectForm = nil
	return a.refresh()
}

func (a *App) refresh() tea.Cmd {
	a.loading = true
	a.err = nil
	return tea.Batch(a.spinner.Tick, a.loadDashboard())
}

// logout clears the session without a network call and opens the login form
func (a *App) logout() tea.Cmd {
	if a.svc != nil {
		a.expectInvalidation = true
		if err := a.svc.Auth.Logout(); err != nil {
			debuglog.Error("logout", err)
		}
	}
	a.resetDashboard()
	return a.showLogin("")
}

func (a *App) resetDashboard() {
	a.data = nil
	a.dashboard = nil
	a.err = nil
	a.loading = false
	a.lastUpdate = time.Time{}
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	message := ""
	switch {
	case msg.err != nil:
		debuglog.Error("authenticate", msg.err)
		message = msg.err.Error()
	case !msg.result.Success:
		message = string(msg.result.Error)
		if message == "" {
			message = "Authentication failed"
		}
	}

	if message != "" {
		switch a.screen {
		case ScreenLogin:
			if a.loginForm != nil {
				return a, a.loginForm.SetError(message)
			}
		case ScreenRegister:
			if a.registerForm != nil {
				return a, a.registerForm.SetError(message)
			}
		}
		return a, nil
	}

	email := a.currentEmail()
	debuglog.Info("authenticated", "email", email)
	if err := a.recent.Add(email); err != nil {
		debuglog.Error("remember account", err)
	}
	return a, a.showDashboard()
}

func (a *App) handleDashboardLoaded(msg dashboardLoadedMsg) (tea.Model, tea.Cmd) {
	if a.screen != ScreenDashboard && a.screen != ScreenCreateProject {
		return a, nil
	}
	a.loading = false

	if msg.err != nil {
		debuglog.Error("load dashboard", msg.err)
		if isSessionError(msg.err) {
			return a, a.expireSession()
		}
		a.err = msg.err
		return a, nil
	}

	a.err = nil
	a.data = msg.data
	a.lastUpdate = time.Now()
	if a.dashboard == nil {
		a.dashboard = dashboard.New(a.data, a.dashboardContentWidth(), a.contentHeight())
	} else {
		a.dashboard.Update(a.data)
	}
	return a, nil
}

func (a *App) handleProjectCreated(msg projectCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("create project", msg.err)
		if isSessionError(msg.err) {
			return a, a.expireSession()
		}
		if a.projectForm != nil {
			return a, a.projectForm.SetError(msg.err.Error())
		}
		return a, nil
	}
	a.projectForm = nil
	a.screen = ScreenDashboard
	return a, a.refresh()
}

// handleSessionInvalidated re-arms the watcher and, unless the user logged
// out, sends a signed-in user back to the login screen.
func (a *App) handleSessionInvalidated() (tea.Model, tea.Cmd) {
	wait := a.waitForInvalidation()
	if a.expectInvalidation {
		a.expectInvalidation = false
		return a, wait
	}
	if a.screen != ScreenDashboard && a.screen != ScreenCreateProject {
		return a, wait
	}
	return a, tea.Batch(wait, a.expireSession())
}

// expireSession drops dashboard state and shows the login form with a notice.
// Safe to call from both the invalidation event and a failed request.
func (a *App) expireSession() tea.Cmd {
	if a.screen == ScreenLogin {
		return nil
	}
	a.resetDashboard()
	a.projectForm = nil
	a.menu = nil
	return a.showLogin(sessionExpiredMsg)
}

func isSessionError(err error) bool {
	return client.IsUnauthorized(err) || errors.Is(err, session.ErrNoSession)
}

func (a *App) currentEmail() string {
	if a.svc == nil {
		return ""
	}
	if u := a.svc.Auth.CurrentUser(); u != nil {
		return u.Email
	}
	return ""
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		if a.loginForm != nil {
			content = a.viewForm(a.loginForm.View())
		}
	case ScreenRegister:
		if a.registerForm != nil {
			content = a.viewForm(a.registerForm.View())
		}
	case ScreenDashboard:
		content = a.viewDashboard()
	case ScreenCreateProject:
		if a.projectForm != nil {
			content = a.viewForm(a.projectForm.View())
		}
	default:
		content = a.viewMenu()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewMenu() string {
	if a.menu != nil {
		return styles.Panel.Render(a.menu.View())
	}
	return ""
}

// viewForm boxes a form, capped at a readable width
func (a *App) viewForm(form string) string {
	return styles.ActivePanel.Width(min(a.frameWidth()-4, 72)).Render(form)
}

// viewDashboard renders the dashboard with actions pane
func (a *App) viewDashboard() string {
	var left string
	switch {
	case a.err != nil:
		left = styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n\n" +
			styles.Help.Render("Press r to retry")
	case a.loading && a.dashboard == nil:
		left = a.spinner.View() + " Loading your projects..."
	case a.dashboard != nil:
		left = a.dashboard.View()
	}
	leftPane := styles.ActivePanel.Width(a.dashboardWidth()).Render(left)

	if a.singleColumn() {
		return leftPane
	}

	rightContent := styles.Title.Render(icons.Settings.String()+" Actions") + "\n\n"
	rightContent += icons.Refresh.String() + " Refresh\n"
	rightContent += icons.Plus.String() + " New project\n"
	rightContent += icons.Logout.String() + " Log out\n"
	rightContent += icons.Quit.String() + " Quit\n"
	rightPane := styles.Panel.Width(a.actionsWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// frameWidth is the terminal width, clamped to the minimum layout width
func (a *App) frameWidth() int {
	return max(a.width, minTerminalWidth)
}

func (a *App) singleColumn() bool {
	return a.width < minTerminalWidth
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.singleColumn() {
		return a.frameWidth() - 2
	}
	return a.frameWidth() - a.actionsWidth() - 4
}

// dashboardContentWidth is the usable width inside the dashboard pane
func (a *App) dashboardContentWidth() int {
	return a.dashboardWidth() - panelPadding
}

// actionsWidth calculates the width for the actions pane
func (a *App) actionsWidth() int {
	return actionsPaneWidth
}

// contentHeight calculates the height available for dashboard content
func (a *App) contentHeight() int {
	// Header and footer take 1 line each, plus the newline after/before them.
	// The panel border and padding take 4 more.
	return max(a.height-8, 0)
}

// renderHeader creates the header bar with app branding and the signed-in user
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftRendered := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("ProjectHub"))

	rightRendered := ""
	if a.screen == ScreenDashboard || a.screen == ScreenCreateProject {
		if u := a.currentUser(); u != nil {
			rightRendered = " " + contextStyle.Render(icons.User.String()+" "+u.Name) + " "
		}
	}

	fillWidth := max(width-4-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 0) // -4 for ╭─ and ─╮
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╭─" + leftRendered + fill + rightRendered + "─╮")
}

func (a *App) currentUser() *models.User {
	if a.data != nil && a.data.User != nil {
		return a.data.User
	}
	if a.svc == nil {
		return nil
	}
	return a.svc.Auth.CurrentUser()
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenLogin, ScreenRegister:
		shortcuts = []string{"Tab Next", "Enter Submit", "Esc Back"}
	case ScreenDashboard:
		shortcuts = []string{"r Refresh", "n New project", "l Logout", "q Quit"}
	case ScreenCreateProject:
		shortcuts = []string{"Tab Next", "Enter Submit", "Esc Cancel"}
	}

	styled := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		key, label, _ := strings.Cut(s, " ")
		styled = append(styled, keyStyle.Render(key)+" "+labelStyle.Render(label))
	}
	leftText := " " + strings.Join(styled, "  ") + " "

	rightText := ""
	if a.loading && a.dashboard != nil && a.screen == ScreenDashboard {
		rightText = " " + a.spinner.View() + statusStyle.Render(" Refreshing") + " "
	} else if !a.lastUpdate.IsZero() && a.screen == ScreenDashboard {
		rightText = " " + statusStyle.Render("Updated "+formatTimeSince(a.lastUpdate)) + " "
	}

	fillWidth := max(width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText), 0) // -4 for ╰─ and ─╯
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╰─" + leftText + fill + rightText + "─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// waitForInvalidation blocks until the session is invalidated or the app closes
func (a *App) waitForInvalidation() tea.Cmd {
	if a.svc == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-a.invalidated:
			return sessionInvalidatedMsg{}
		case <-a.ctx.Done():
			return nil
		}
	}
}

func (a *App) login(creds models.Credentials) tea.Cmd {
	return func() tea.Msg {
		result, err := a.svc.Auth.Login(a.ctx, creds)
		return authDoneMsg{result: result, err: err}
	}
}

func (a *App) register(reg validation.Registration) tea.Cmd {
	return func() tea.Msg {
		result, err := a.svc.Auth.Register(a.ctx, reg.Input())
		return authDoneMsg{result: result, err: err}
	}
}

// loadDashboard fetches projects and profile together
func (a *App) loadDashboard() tea.Cmd {
	if a.svc == nil {
		return nil
	}
	return func() tea.Msg {
		data, err := service.LoadDashboard(a.ctx, a.svc.Auth, a.svc.Projects)
		return dashboardLoadedMsg{data: data, err: err}
	}
}

func (a *App) createProject(in models.ProjectInput) tea.Cmd {
	return func() tea.Msg {
		_, err := a.svc.Projects.Create(a.ctx, in)
		return projectCreatedMsg{err: err}
	}
}

// Run starts the TUI. Recent login emails are kept under configDir.
func Run(svc *service.Services, configDir string) error {
	app := New(svc)
	app.recent = recentaccounts.New(configDir)
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
