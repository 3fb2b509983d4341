package movement

import "errors"

var (
	ErrMovementNotFound  = errors.New("movement not found")
	ErrInvalidStatus     = errors.New("invalid movement status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidType       = errors.New("invalid movement type")
	ErrInvalidEndpoint   = errors.New("invalid movement endpoint")
	ErrEndpointMismatch  = errors.New("endpoint kind does not match movement type")
	ErrCustodyConflict   = errors.New("device already has a movement in transit")
	ErrMovementTerminal  = errors.New("movement is in a terminal state")
	ErrMovementImmutable = errors.New("movement core fields cannot be edited")
)
