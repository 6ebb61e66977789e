package app

import "errors"

var (
	// ErrForbidden signals that the acting operator's role lacks the
	// capability for the requested field or action.
	ErrForbidden = errors.New("forbidden")

	// ErrJobNotFound signals a job id absent from the snapshot (or not
	// visible to the caller, which is indistinguishable on purpose).
	ErrJobNotFound = errors.New("job not found")

	// ErrOperatorNotFound signals an unknown operator id or name.
	ErrOperatorNotFound = errors.New("operator not found")

	// ErrClientNotFound signals an unknown client id.
	ErrClientNotFound = errors.New("client not found")

	// ErrBadCredentials signals a failed login.
	ErrBadCredentials = errors.New("wrong password")
)
