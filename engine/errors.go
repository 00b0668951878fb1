// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"
)

// ErrPermission means the requester is neither the drawing's organizer nor
// an administrator.
var ErrPermission = errors.New("requester may not perform this action")

// StateConflictError means the requested transition is invalid for the
// drawing's current status/lock combination, including a race lost against
// a concurrent resolution.
type StateConflictError struct {
	Status string
	Locked bool
}

func (e *StateConflictError) Error() string {
	if e.Locked {
		return fmt.Sprintf("drawing is locked (status %s)", e.Status)
	}
	return fmt.Sprintf("drawing is %s", e.Status)
}

// IsStateConflict reports whether err is a StateConflictError.
func IsStateConflict(err error) bool {
	var sc *StateConflictError
	return errors.As(err, &sc)
}

// SystemError wraps an unexpected internal failure during resolution. The
// drawing has already been forced to cancelled by the time a SystemError
// surfaces; it exists so operators see the cause.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("draw resolution failed: %v", e.Err)
}

func (e *SystemError) Unwrap() error { return e.Err }
