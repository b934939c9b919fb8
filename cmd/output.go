// ABOUTME: Shared output and error reporting for projecthub commands
// ABOUTME: Maps normalized errors to exit codes and prints JSON or text

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/service"
	"github.com/markalston/projecthub-cli/internal/session"
	"github.com/markalston/projecthub-cli/internal/validation"
)

const (
	msgNotLoggedIn    = "Not logged in. Run 'projecthub login' first."
	msgSessionExpired = "Session expired. Run 'projecthub login' to sign in again."
)

// signalContext cancels on SIGINT/SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

// printPayload writes backend data as indented JSON, or "null" when absent
func printPayload(w io.Writer, p models.Payload) {
	if len(p) == 0 {
		fmt.Fprintln(w, "null")
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, p, "", "  "); err != nil {
		fmt.Fprintln(w, string(p))
		return
	}
	fmt.Fprintln(w, buf.String())
}

// reportError prints err and returns the matching exit code
func reportError(w io.Writer, err error) int {
	code := exitCodeFor(err)
	slog.Debug("Command failed", "error", err, "exit_code", code)

	if IsJSONOutput() {
		out := map[string]any{"success": false, "error": err.Error()}
		if status := client.StatusCode(err); status != 0 {
			out["status"] = status
		}
		var verr *validation.Error
		if errors.As(err, &verr) {
			out["field"] = verr.Field
		}
		printJSON(w, out)
		return code
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return code
}

// exitCodeFor classifies an error
func exitCodeFor(err error) int {
	var verr *validation.Error
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &verr):
		return exitUser
	case errors.Is(err, session.ErrNoSession), client.IsUnauthorized(err):
		return exitAuth
	default:
		return exitBackend
	}
}

// requireSession checks for a stored token before any protected call
func requireSession(svc *service.Services, w io.Writer) bool {
	if svc.Auth.IsAuthenticated() {
		return true
	}
	if IsJSONOutput() {
		printJSON(w, map[string]any{"success": false, "error": msgNotLoggedIn})
	} else {
		fmt.Fprintln(w, msgNotLoggedIn)
	}
	return false
}

// watchSession prints a notice when a 401 tears the session down.
// The returned func unsubscribes.
func watchSession(svc *service.Services, w io.Writer) func() {
	return svc.Session.OnInvalidated(func() {
		if !IsJSONOutput() {
			fmt.Fprintln(w, msgSessionExpired)
		}
	})
}

// authFailure returns the business error of a login/register result
func authFailure(result *models.AuthResult, fallback string) string {
	if result.Error != "" {
		return string(result.Error)
	}
	return fallback
}
