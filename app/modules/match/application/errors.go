package matchservice

import "errors"

// Application errors. Like the engine's own errors they are business outcomes: operations
// report them in the result's Failure and return a nil error.
var (
	// ErrMatchNotFound indicates no stored match has the requested id.
	ErrMatchNotFound = errors.New("match not found")

	// ErrInvalidMatchID indicates an empty match id.
	ErrInvalidMatchID = errors.New("invalid match id")

	// ErrInvalidScore indicates strokes outside the accepted range.
	ErrInvalidScore = errors.New("invalid score value")

	// ErrMatchCompleted indicates a write against a match that has been marked complete.
	ErrMatchCompleted = errors.New("match is already complete")

	// ErrInvalidTeeTime indicates tee time text that could not be understood.
	ErrInvalidTeeTime = errors.New("could not understand tee time")

	// ErrInvalidFilter indicates an unknown list filter.
	ErrInvalidFilter = errors.New("invalid match filter")
)

const (
	MinStrokes = 1
	MaxStrokes = 15
)
