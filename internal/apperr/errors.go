// Package apperr defines the error taxonomy shared by the parser, the
// connection manager and the dispatcher, and maps each class to an exit code.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitInternal = 70
)

// UsageError reports malformed, missing or invalid command-line input.
// It is always detected before a connection is attempted.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	if e == nil || e.Err == nil {
		return "invalid usage"
	}
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error { return e.Err }

// NewUsageError formats a UsageError.
func NewUsageError(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ConnectionError reports that the service endpoint could not be built or
// the transport handshake did not complete.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("connect %s: failed", e.Target)
	}
	return fmt.Sprintf("connect %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RemoteError is a structured status returned by the automation service.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e == nil {
		return ""
	}
	code := strings.TrimSpace(e.Code)
	message := strings.TrimSpace(e.Message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("code = %s desc = %s", code, message)
	case code != "":
		return "code = " + code
	case message != "":
		return message
	}
	return "remote error"
}

// InternalError reports a broken invariant inside hkctl itself, such as a
// command accepted by the grammar that has no registered handler.
type InternalError struct {
	Detail string
}

func (e *InternalError) Error() string {
	if e == nil || strings.TrimSpace(e.Detail) == "" {
		return "internal error"
	}
	return "internal error: " + e.Detail
}

// IsUsage reports whether err is, or wraps, a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// IsRemote reports whether err is, or wraps, a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ie *InternalError
	if errors.As(err, &ie) {
		return ExitInternal
	}
	if IsUsage(err) {
		return ExitUsage
	}
	return ExitFailure
}

// UserMessage returns a message safe to show on the terminal.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return "Error returned by server: " + re.Error()
	}
	var ce *ConnectionError
	if errors.As(err, &ce) {
		return fmt.Sprintf("cannot reach automation service at %s", ce.Target)
	}
	return err.Error()
}

// DebugMessage returns detailed error text for logs.
func DebugMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
