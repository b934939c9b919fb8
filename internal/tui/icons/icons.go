// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

// EnvNerdFonts forces Nerd Font icons on ("1"/"true") or off
const EnvNerdFonts = "PROJECTHUB_NERD_FONTS"

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	if env := os.Getenv(EnvNerdFonts); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// Terminals that commonly ship with a Nerd Font configured
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Dashboard statistics
	Target   = Icon{"󰓾", "◎"} // nf-md-target
	Clock    = Icon{"󰥔", "◷"} // nf-md-clock_outline
	Folder   = Icon{"󰉋", "▤"} // nf-md-folder
	Users    = Icon{"󰡉", "☺"} // nf-md-account_group
	Calendar = Icon{"󰃭", "▦"} // nf-md-calendar
	User     = Icon{"󰀄", "◉"} // nf-md-account

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Plus    = Icon{"󰐕", "+"} // nf-md-plus
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Logout  = Icon{"󰍃", "⇥"} // nf-md-logout
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Application
	App      = Icon{"󰉋", "◈"} // nf-md-folder
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
)
