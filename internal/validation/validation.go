// ABOUTME: Client-side input validation run before any network call
// ABOUTME: Registration and project form rules surfaced directly to the UI

package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/markalston/projecthub-cli/internal/models"
)

// Registration limits
const (
	MinNameLength     = 3
	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error describes a single invalid field
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Registration holds the register form, including the confirmation field
type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the form in field order and returns the first problem
func (r Registration) Validate() error {
	if err := Name(r.Name); err != nil {
		return err
	}
	if err := Email(r.Email); err != nil {
		return err
	}
	if err := Password(r.Password); err != nil {
		return err
	}
	return Confirmation(r.Password, r.ConfirmPassword)
}

// Name validates a display name length in characters
func Name(name string) error {
	if utf8.RuneCountInString(name) < MinNameLength {
		return &Error{Field: "name", Message: fmt.Sprintf("name must be at least %d characters", MinNameLength)}
	}
	return nil
}

// Password validates a password length in characters
func Password(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &Error{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	}
	return nil
}

// Confirmation checks that the repeated password matches
func Confirmation(password, confirm string) error {
	if password != confirm {
		return &Error{Field: "confirmPassword", Message: "passwords do not match"}
	}
	return nil
}

// Input returns the request body; the confirmation is never sent
func (r Registration) Input() models.RegisterInput {
	return models.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

// Email validates an email address
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return &Error{Field: "email", Message: "invalid email"}
	}
	return nil
}

// Required rejects blank values
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Error{Field: field, Message: field + " is required"}
	}
	return nil
}

// Status accepts the known project statuses; empty is allowed
func Status(status string) error {
	switch status {
	case "", models.StatusActive, models.StatusCompleted:
		return nil
	default:
		return &Error{Field: "status", Message: fmt.Sprintf("status must be %q or %q", models.StatusActive, models.StatusCompleted)}
	}
}

// Project validates a create body
func Project(in models.ProjectInput) error {
	if err := Required("name", in.Name); err != nil {
		return err
	}
	return Status(in.Status)
}
