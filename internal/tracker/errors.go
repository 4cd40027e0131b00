package tracker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind classifies failures of a tracker call.
type Kind int

const (
	// KindUnexpected is any failure that is neither a status nor a timeout.
	KindUnexpected Kind = iota
	// KindHTTPStatus means the tracker answered with a non-2xx status.
	KindHTTPStatus
	// KindTimeout means the call exceeded its deadline.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http_status"
	case KindTimeout:
		return "timeout"
	default:
		return "unexpected"
	}
}

// TimeoutMessage is the exact text returned to callers when a tracker call
// times out.
const TimeoutMessage = "Error: Request timed out. Please try again."

// StatusError is returned when the tracker responds with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Jira API returned %d: %s", e.StatusCode, e.Body)
}

// TimeoutError is returned when a tracker call exceeds its deadline.
type TimeoutError struct {
	Method string
	Path   string
	Err    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s %s timed out: %v", e.Method, e.Path, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// KindOf classifies err. A nil error is KindUnexpected.
func KindOf(err error) Kind {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return KindHTTPStatus
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return KindTimeout
	}
	return KindUnexpected
}

// FormatError renders err as the caller-facing "Error: ..." string.
func FormatError(err error) string {
	if err == nil {
		return "Error: unknown error"
	}

	switch KindOf(err) {
	case KindHTTPStatus:
		var statusErr *StatusError
		errors.As(err, &statusErr)
		msg := "Error: " + statusErr.Error()
		if hint := credentialHint(statusErr.StatusCode); hint != "" {
			msg += "\n" + hint
		}
		return msg
	case KindTimeout:
		return TimeoutMessage
	default:
		return "Error: " + err.Error()
	}
}

// credentialHint explains the statuses that usually mean bad configuration.
func credentialHint(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Check TRACKER_EMAIL and TRACKER_TOKEN."
	case http.StatusForbidden:
		return "The configured account lacks permission for this operation."
	default:
		return ""
	}
}

// isTimeout reports whether a transport error was caused by a deadline.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout exceeded")
}
