package message

import (
	"errors"
	"fmt"
)

// Structural errors. They are always returned wrapped in a *ParseError.
var (
	// ErrNoHeaders is returned when the raw header is empty.
	ErrNoHeaders = errors.New("no headers found")

	// ErrNoContent is returned when a message has no body at all.
	ErrNoContent = errors.New("no content found")

	// ErrMissingBoundary is returned when a multipart message either does not
	// name its boundary or the boundary never appears in the body.
	ErrMissingBoundary = errors.New("multipart boundary is missing")
)

// Stage names a step of the parse.
type Stage int

// The stages, in the order they run.
const (
	StageHeader Stage = iota
	StageStructure
	StageBody
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageHeader:
		return "header"
	case StageStructure:
		return "structure"
	case StageBody:
		return "body"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ParseError reports the stage at which a parse failed.
type ParseError struct {
	Stage Stage
	Err   error
}

// Error returns the error message.
func (err *ParseError) Error() string {
	return fmt.Sprintf("parsing message %s: %v", err.Stage, err.Err)
}

// Unwrap returns the underlying error.
func (err *ParseError) Unwrap() error {
	return err.Err
}

func stageError(s Stage, err error) error {
	return &ParseError{Stage: s, Err: err}
}
