package ai

import (
	"errors"
	"fmt"
)

// ErrInvalidTranscript is returned when transcript data is neither a list of
// messages nor an object holding a "messages" list.
var ErrInvalidTranscript = errors.New("invalid transcript")

// TranscriptError describes which part of a transcript could not be parsed.
type TranscriptError struct {
	// Index of the offending message, or -1 when the document itself is malformed
	Index int

	// Reason is a human-readable description of the problem
	Reason string
}

// Error implements the error interface.
func (e *TranscriptError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidTranscript, e.Reason)
	}
	return fmt.Sprintf("%s: message %d: %s", ErrInvalidTranscript, e.Index, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidTranscript.
func (e *TranscriptError) Unwrap() error {
	return ErrInvalidTranscript
}
