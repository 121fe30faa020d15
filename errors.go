package textmodel

import (
	"errors"

	"github.com/gogpu/textmodel/text"
)

var (
	// ErrInvalidRange is returned when an edit range exceeds the text.
	ErrInvalidRange = errors.New("textmodel: invalid range")

	// ErrInvalidModel is returned by Validate when a model invariant does
	// not hold.
	ErrInvalidModel = errors.New("textmodel: invalid model")

	// ErrNilState is returned when an update is given no state.
	ErrNilState = errors.New("textmodel: nil state")
)

// Errors of the text package, re-exported for callers of this package.
var (
	ErrNoDefaultFont    = text.ErrNoDefaultFont
	ErrInvalidLineRange = text.ErrInvalidLineRange
)
