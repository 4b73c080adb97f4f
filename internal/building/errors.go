package building

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the building model. Callers match them with errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReference = errors.New("invalid reference")
	ErrRoomOverlap      = errors.New("room overlaps existing walls")
)

// Specific conditions, each wrapping one of the kinds above.
var (
	ErrWallFull = fmt.Errorf("%w: wall already borders two rooms", ErrRoomOverlap)
	ErrNoWalls  = fmt.Errorf("%w: room has no resolvable walls", ErrInvalidReference)
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

func missingf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidReference}, args...)...)
}
