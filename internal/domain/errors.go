package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidState   = errors.New("operation not legal for current status")
	ErrNotReady       = errors.New("release conditions not met")
	ErrConflict       = errors.New("conflicting pending request")
	ErrAlreadyDecided = errors.New("appeal already decided")
	ErrNotFound       = errors.New("not found")
)

// NotReadyError carries the preconditions that failed so callers can
// render an actionable message.
type NotReadyError struct {
	EscrowID    string
	Status      EscrowStatus
	Unsatisfied []ConditionType
	OpenDispute bool
}

func (e *NotReadyError) Error() string {
	if e.OpenDispute {
		return fmt.Sprintf("escrow %s: release blocked by open dispute", e.EscrowID)
	}
	if len(e.Unsatisfied) > 0 {
		return fmt.Sprintf("escrow %s: unsatisfied conditions %v", e.EscrowID, e.Unsatisfied)
	}
	return fmt.Sprintf("escrow %s: not in releasing state (status %s)", e.EscrowID, e.Status)
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}

// InvalidStateError names the transition that was refused.
type InvalidStateError struct {
	EscrowID  string
	Status    EscrowStatus
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("escrow %s: cannot %s from status %s", e.EscrowID, e.Operation, e.Status)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
