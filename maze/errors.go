package maze

import "errors"

// Generation errors. Call sites wrap these with context; match with errors.Is.
var (
	// ErrInvalidDimension is returned when a grid is requested smaller than 3x3.
	ErrInvalidDimension = errors.New("invalid maze dimension")
	// ErrOutOfBounds is returned for coordinates outside [0, dimension).
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrNoAvailableTile is returned when no Open border tile is eligible for a portal.
	ErrNoAvailableTile = errors.New("no available border tile")
	// ErrUnreachable is returned when the path walk dead-ends before the exit.
	ErrUnreachable = errors.New("exit unreachable from walk")
	// ErrLoopDetected is returned when the path walk steps onto a tile it already visited.
	ErrLoopDetected = errors.New("walk revisited a tile")
	// ErrInvalidArgument is returned for malformed calls, such as a tile compared to itself.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBrokenLayout is returned when a post-processing stage leaves other than one Entrance and one Exit.
	ErrBrokenLayout = errors.New("maze layout broken by stage")
)
