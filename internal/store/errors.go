package store

import "fmt"

// WriteError reports that a collection could not be persisted.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: failed to save %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// LockError reports that the advisory lock for a collection was not acquired.
type LockError struct {
	Path  string
	Cause error
}

func (e *LockError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("lock error: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("lock error: %s is held by another writer", e.Path)
}

func (e *LockError) Unwrap() error {
	return e.Cause
}

// LoadError reports a missing or malformed collection in strict mode.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
