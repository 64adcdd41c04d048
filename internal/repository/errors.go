package repository

import "errors"

// ErrNotFound indicates an entity was not located. For entries this covers
// both "does not exist" and "owned by someone else" so callers cannot tell
// the two apart.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicateEmail indicates the email unique constraint was violated.
var ErrDuplicateEmail = errors.New("repository: email already registered")
