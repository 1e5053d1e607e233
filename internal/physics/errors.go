package physics

import "errors"

var (
	// ErrUnknownBody indicates a body handle that was never issued by this world.
	ErrUnknownBody = errors.New("physics: unknown body handle")

	// ErrUnknownCollider indicates a collider handle that was never issued by this world.
	ErrUnknownCollider = errors.New("physics: unknown collider handle")
)
