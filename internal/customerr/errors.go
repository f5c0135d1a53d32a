package customerr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when an expense id is not in the store.
	ErrNotFound = errors.New("expense not found")
	// ErrNotCommand marks assistant text that is plain conversation.
	ErrNotCommand = errors.New("not a command")
	// ErrParse classifies malformed command text, see ParseError.
	ErrParse = errors.New("malformed command")
	// ErrTransport is a failed call to the text generation service.
	ErrTransport = errors.New("text generation service unavailable")
	// ErrMalformedResponse is a reply body without the expected structure.
	ErrMalformedResponse = errors.New("malformed text generation response")
)

// ParseError describes why a recognised command could not be parsed.
type ParseError struct {
	Command string
	Input   string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Command, e.Reason)
}

// Is makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NotFoundError carries the missing id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("expense %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
