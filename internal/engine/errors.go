package engine

import "github.com/pkg/errors"

var (
	// ErrNotFound reports a lookup by id, handle, or tag that matched
	// nothing. Expected steady-state outcome for queries, never fatal.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateHandle reports a registration conflict. The caller must
	// choose another handle.
	ErrDuplicateHandle = errors.New("handle already taken")
	// ErrInvalidFollow reports a self-follow attempt.
	ErrInvalidFollow = errors.New("cannot follow yourself")
	// ErrNotExists reports a follow edge whose endpoint does not reference
	// a registered user.
	ErrNotExists = errors.New("user does not exist")
)
