package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when the actor lacks the admin capability
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when an action is already in progress for the
// same entity (double submit)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when request validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrInvalidTransition is returned when the requested action has no legal
// edge from the entity's current status
type ErrInvalidTransition struct {
	Entity string
	From   string
	Action string
	Detail string
}

func (e *ErrInvalidTransition) Error() string {
	msg := fmt.Sprintf("invalid transition: cannot %s %s in status %s", e.Action, e.Entity, e.From)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ErrConcurrentModification is returned when the conditional status write
// matched zero rows because another admin changed the entity first
type ErrConcurrentModification struct {
	Entity string
	ID     string
}

func (e *ErrConcurrentModification) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently, reload and retry", e.Entity, e.ID)
}

// ErrMissingReason is returned when a cancel/reject action carries an
// empty or whitespace-only reason
type ErrMissingReason struct {
	Action string
}

func (e *ErrMissingReason) Error() string {
	return fmt.Sprintf("a reason is required to %s", e.Action)
}

// ErrMissingProof is returned when delivery confirmation is attempted
// without a delivery proof reference
type ErrMissingProof struct{}

func (e *ErrMissingProof) Error() string {
	return "delivery proof is required"
}

// ErrInvalidFileType is returned before upload when a proof file is not
// an image
type ErrInvalidFileType struct {
	ContentType string
}

func (e *ErrInvalidFileType) Error() string {
	return fmt.Sprintf("proof file must be an image, got %s", e.ContentType)
}

// ErrFileTooLarge is returned before upload when a proof file exceeds the
// size ceiling
type ErrFileTooLarge struct {
	Size  int64
	Limit int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("proof file is %d bytes, limit is %d", e.Size, e.Limit)
}
