package approval

import "errors"

var (
	// ErrInvalidTransition means the request's current status does not allow
	// the attempted action. Repeating an already-applied transition yields
	// this error instead of re-applying side effects.
	ErrInvalidTransition = errors.New("request status does not allow this action")

	// ErrInsufficientCapability means the actor's capability is below what
	// the authorization matrix requires for the attempted transition.
	ErrInsufficientCapability = errors.New("insufficient approval capability")

	// ErrMissingRejectionReason is returned when reject is called without a
	// reason; the request status is left unchanged.
	ErrMissingRejectionReason = errors.New("rejection reason is required")

	ErrRequestNotFound = errors.New("approval request not found")
)
