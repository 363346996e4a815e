package engine

import (
	"time"

	"github.com/pkg/errors"
)

// CreateUser registers a new user and returns its assigned id. The handle
// uniqueness check and the insertion happen inside the same critical section:
// two concurrent registrations for the same handle cannot both observe
// "absent" and both insert, so at most one of them succeeds and the others
// fail with ErrDuplicateHandle.
func (e *Engine) CreateUser(handle, sessionRef string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, taken := e.handleIndex[handle]; taken {
		return 0, errors.Wrapf(ErrDuplicateHandle, "handle %q", handle)
	}

	e.userSeq++
	id := e.userSeq
	e.users[id] = &User{
		ID:         id,
		Handle:     handle,
		SessionRef: sessionRef,
		CreatedAt:  time.Now(),
	}
	e.handleIndex[handle] = id
	return id, nil
}

// User returns the user stored under id.
// The returned pointer is shared; callers must treat it as read-only.
func (e *Engine) User(id int64) (*User, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	u, ok := e.users[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "user %d", id)
	}
	return u, nil
}

// UserByHandle returns the user registered under handle (exact match).
// The returned pointer is shared; callers must treat it as read-only.
func (e *Engine) UserByHandle(handle string) (*User, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	id, ok := e.handleIndex[handle]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "handle %q", handle)
	}
	return e.users[id], nil
}

// UserExists reports whether id references a registered user.
func (e *Engine) UserExists(id int64) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.users[id]
	return ok
}

// HandleExists reports whether handle is already registered.
func (e *Engine) HandleExists(handle string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.handleIndex[handle]
	return ok
}
