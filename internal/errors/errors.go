package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrAlreadyActive     = errors.New("seek session already active")
	ErrPlayerUnavailable = errors.New("player unavailable")
	ErrTimeout           = errors.New("player request timeout")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// HoldseekError wraps an error with a user-friendly suggestion.
type HoldseekError struct {
	Err        error
	Suggestion string
}

func (e *HoldseekError) Error() string {
	return e.Err.Error()
}

func (e *HoldseekError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &HoldseekError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var hsErr *HoldseekError
	if errors.As(err, &hsErr) && hsErr.Suggestion != "" {
		return hsErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrAlreadyActive) {
		return "The gesture layer delivered a second hold before the first ended; serialize touch sessions"
	}

	if errors.Is(err, ErrPlayerUnavailable) || strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such file or directory") {
		return "Start mpv with --input-ipc-server=<socket> or use the simulated player (player.backend = \"sim\")"
	}

	if errors.Is(err, ErrTimeout) || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return "The player is slow to respond; raise seek.player_timeout"
	}

	if errors.Is(err, ErrConfigNotFound) {
		return "Run 'holdseek config init' to create a configuration file"
	}

	if errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Check the file shown by 'holdseek config path' against 'holdseek config show'"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
