// ABOUTME: Remembers the emails of recent successful logins
// ABOUTME: Stored as JSON next to the session file so the login form can pre-fill

package recentaccounts

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// MaxAccounts is the maximum number of emails to keep
const MaxAccounts = 5

// FileName is the file created under the config directory
const FileName = "recent.json"

// Accounts manages the list of recently used login emails
type Accounts struct {
	configDir string
	emails    []string
}

type recentData struct {
	Emails []string `json:"emails"`
}

// New creates an Accounts manager for configDir. An empty dir disables persistence.
func New(configDir string) *Accounts {
	return &Accounts{configDir: configDir}
}

func (a *Accounts) configFile() string {
	return filepath.Join(a.configDir, FileName)
}

// Load reads the list from disk. A missing or corrupt file yields an empty list.
func (a *Accounts) Load() ([]string, error) {
	a.emails = []string{}
	if a.configDir == "" {
		return a.emails, nil
	}

	data, err := os.ReadFile(a.configFile())
	if errors.Is(err, os.ErrNotExist) {
		return a.emails, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		return a.emails, nil
	}
	for _, email := range recent.Emails {
		if email = strings.TrimSpace(email); email != "" {
			a.emails = append(a.emails, email)
		}
	}
	return a.emails, nil
}

// Save writes emails to disk, trimmed to MaxAccounts
func (a *Accounts) Save(emails []string) error {
	if len(emails) > MaxAccounts {
		emails = emails[:MaxAccounts]
	}
	a.emails = emails
	if a.configDir == "" {
		return nil
	}

	if err := os.MkdirAll(a.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(recentData{Emails: emails}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.configFile(), data, 0600)
}

// Add moves email to the front of the list, matching case-insensitively
func (a *Accounts) Add(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if a.emails == nil {
		if _, err := a.Load(); err != nil {
			a.emails = []string{}
		}
	}

	next := make([]string, 0, len(a.emails)+1)
	next = append(next, email)
	for _, e := range a.emails {
		if !strings.EqualFold(e, email) {
			next = append(next, e)
		}
	}
	return a.Save(next)
}

// List returns the current list, loading it on first use
func (a *Accounts) List() []string {
	if a.emails == nil {
		_, _ = a.Load()
	}
	return a.emails
}

// Latest returns the most recent email, or ""
func (a *Accounts) Latest() string {
	if list := a.List(); len(list) > 0 {
		return list[0]
	}
	return ""
}
