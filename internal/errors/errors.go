package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by the CLI and the query API. Match with errors.Is.
var (
	ErrNotConfigured    = errors.New("connection details not configured")
	ErrConnection       = errors.New("document store connection failed")
	ErrFileNotFound     = errors.New("file not found")
	ErrParse            = errors.New("malformed import data")
	ErrStoreUnavailable = errors.New("secret store unavailable")
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// NotConfigured reports a connection setting that was never stored
func NotConfigured(setting string) error {
	return UserError{
		Message:    fmt.Sprintf("You have not set up your %s", setting),
		Suggestion: "Run 'dataseeder setup' to store your connection details",
		Err:        ErrNotConfigured,
	}
}

// ConnectionFailed wraps a driver error raised while connecting to the document store
func ConnectionFailed(err error) error {
	return UserError{
		Message:    "Failed to connect to MongoDB",
		Details:    err.Error(),
		Suggestion: connectionSuggestion(err),
		Err:        fmt.Errorf("%w: %w", ErrConnection, err),
	}
}

// FileNotFound reports a missing import file
func FileNotFound(path string) error {
	return UserError{
		Message:    fmt.Sprintf("Please enter a valid filename: %s does not exist", path),
		Suggestion: "Verify the path exists and is spelled correctly",
		Err:        ErrFileNotFound,
	}
}

// ParseFailed wraps a decoding or shape error for an import file
func ParseFailed(path string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("Could not parse %s", path),
		Details:    err.Error(),
		Suggestion: "The file must hold a JSON array of item objects, or an object wrapping one under the configured wrapper key",
		Err:        fmt.Errorf("%w: %w", ErrParse, err),
	}
}

// StoreUnavailable wraps an OS secret store failure
func StoreUnavailable(op string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("Secret store unavailable during %s", op),
		Details:    err.Error(),
		Suggestion: "Make sure a keyring service (Keychain, Secret Service, Credential Manager) is running and unlocked",
		Err:        fmt.Errorf("%w: %w", ErrStoreUnavailable, err),
	}
}

// connectionSuggestion returns helpful suggestions based on the driver error text
func connectionSuggestion(err error) string {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "scheme must be"), strings.Contains(errStr, "error parsing uri"):
		return "The connection string must start with mongodb:// or mongodb+srv://"
	case strings.Contains(errStr, "authentication failed"), strings.Contains(errStr, "auth error"):
		return "Check the username and password in the connection string"
	case strings.Contains(errStr, "server selection"), strings.Contains(errStr, "connection refused"):
		return "Make sure the MongoDB server is running and reachable"
	case strings.Contains(errStr, "no such host"):
		return "Check the host name in the connection string"
	case strings.Contains(errStr, "deadline exceeded"), strings.Contains(errStr, "timeout"):
		return "The server did not answer in time. Check your network connection and try again"
	}
	return "Run 'dataseeder setup --get-settings' to review the stored connection string"
}
