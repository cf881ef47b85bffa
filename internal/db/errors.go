package db

import (
	"errors"
)

// ErrorNotFound is returned when a referenced entity, course, grade or task
// does not exist.
var ErrorNotFound = errors.New("not found")

// ErrorConflict is returned when a write would violate a uniqueness rule
// (identifier, email, course code, course name, task type or grade key).
var ErrorConflict = errors.New("already exists")

// ErrorInvalidRequest is a user facing error returned by repositories when a
// required argument is missing or malformed.
var ErrorInvalidRequest = errors.New("invalid request")

// IsUserError reports whether err belongs to the user facing error classes.
// Any other repository error is a transient store failure and should be
// surfaced to the caller as such, never as "does not exist".
func IsUserError(err error) bool {
	return errors.Is(err, ErrorNotFound) || errors.Is(err, ErrorConflict) || errors.Is(err, ErrorInvalidRequest)
}
