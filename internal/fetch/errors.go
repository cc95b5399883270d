package fetch

import (
	"fmt"
	"time"
)

// TimeoutError reports that navigation or the network-idle wait exceeded its bound.
type TimeoutError struct {
	URL     string
	Stage   string
	Timeout time.Duration
	Cause   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %s during %s of %s", e.Timeout, e.Stage, e.URL)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// NavigationError reports any other failure while loading a page.
type NavigationError struct {
	URL     string
	Message string
	Cause   error
}

func (e *NavigationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("navigation error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("navigation error for %s: %s", e.URL, e.Message)
}

func (e *NavigationError) Unwrap() error {
	return e.Cause
}

// SessionError reports a missing or unreadable session artifact.
type SessionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("session error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("session error for %s: %s", e.Path, e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Cause
}
