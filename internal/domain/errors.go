package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput covers local precondition failures: bad amounts, bad
	// status transitions, malformed contact details. Raised before any
	// remote call is made.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAuth signals an invalid or mismatched MONEI API key. Never retried;
	// automatic sync must stay disabled while this persists.
	ErrAuth = errors.New("authentication failed")
	// ErrTransport covers network, connection and timeout failures against
	// the MONEI API. Retryable; aborts the in-progress sync run.
	ErrTransport = errors.New("transport error")
	// ErrRemote wraps a GraphQL-level error payload returned by MONEI.
	// The remote-provided message is carried by the wrapping error.
	ErrRemote         = errors.New("remote error")
	ErrConflict       = errors.New("conflict")
	ErrSyncInProgress = errors.New("a payment sync is already running")
	ErrSyncDisabled   = errors.New("payment sync is disabled")
)
