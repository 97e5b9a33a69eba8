package quiz

import "errors"

var (
	// ErrUnsupportedMode is returned when a quiz is requested in a mode the category cannot be played in
	ErrUnsupportedMode = errors.New("unsupported quiz mode")
	// ErrEmptyCategory is returned when a category has nothing to ask about
	ErrEmptyCategory = errors.New("category has no items")
	// ErrSessionAlreadySubmitted is returned for any mutation after submit
	ErrSessionAlreadySubmitted = errors.New("quiz session already submitted")
	// ErrUnknownPrompt is returned when an answer references a question that is not in the session
	ErrUnknownPrompt = errors.New("unknown prompt")
)
