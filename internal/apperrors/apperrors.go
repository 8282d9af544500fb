// Package apperrors defines the error categories surfaced to API callers.
// Errors are created through logger.ErrorWithType so the category can be
// matched with errors.Is while the message stays specific.
package apperrors

import "errors"

var (
	// ErrNotFound covers both missing records and owned records that belong
	// to somebody else; callers cannot tell the two apart.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrAlreadyMember = errors.New("already a member")
	ErrNotMember     = errors.New("not a member")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("validation error")
)

// Message strips the category prefix added by ErrorWithType, leaving the
// human readable part for the response body.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, category := range []error{
		ErrNotFound, ErrAlreadyExists, ErrAlreadyMember, ErrNotMember,
		ErrUnauthorized, ErrForbidden, ErrValidation,
	} {
		prefix := category.Error() + ": "
		if errors.Is(err, category) && len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
