package provisioning

import "errors"

var (
	// ErrIllegalState is returned when a step runs without the state the
	// previous steps should have recorded on the request.
	ErrIllegalState = errors.New("illegal state")

	// ErrNotFound is returned when the target cluster or project does not exist.
	ErrNotFound = errors.New("not found")
)
