package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownMode is returned when a display mode name is not recognised.
var ErrUnknownMode = errors.New("unknown display mode")

// ErrUnknownKind is returned when a number kind name is not recognised.
var ErrUnknownKind = errors.New("unknown number kind")

// ValidationError reports the first input rule a submission broke.
// Message is meant to be shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidationError unwraps err into a ValidationError, if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
