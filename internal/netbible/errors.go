package netbible

import "errors"

// Error classes for failed fetches. Callers match these with errors.Is to
// choose a user-facing message.
var (
	// ErrTimeout reports that the request exceeded its time budget.
	ErrTimeout = errors.New("verse service request timed out")

	// ErrConnect reports that the service could not be reached at all.
	ErrConnect = errors.New("could not connect to verse service")

	// ErrStatus reports a non-success HTTP status from the service.
	ErrStatus = errors.New("verse service returned an error status")

	// ErrBadPayload reports a response body that could not be decoded
	// into a verse.
	ErrBadPayload = errors.New("verse service returned an unusable payload")
)
