package services

import "errors"

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyDeleted means a soft delete targeted a row already in the
	// trash.
	ErrAlreadyDeleted = errors.New("already marked for deletion")

	// ErrNotDeleted means a restore targeted a row that is not in the trash.
	ErrNotDeleted = errors.New("not marked as deleted")

	// ErrDuplicateName means a name collides with a sibling under the same
	// parent.
	ErrDuplicateName = errors.New("name already in use")

	// ErrInvalidStatusTransition means an ad status change is not allowed
	// from the current state.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
