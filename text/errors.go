package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoDefaultFont is returned when a FontClient has no font to fall back to.
	ErrNoDefaultFont = errors.New("text: no default font")

	// ErrInvalidLineRange is returned when a line does not fit the paragraph
	// or model it refers to.
	ErrInvalidLineRange = errors.New("text: invalid line range")

	// ErrUnknownParser is returned when a font parser name is not registered.
	ErrUnknownParser = errors.New("text: unknown font parser")
)

// RangeError is returned when a character or glyph range exceeds the
// buffers it indexes.
type RangeError struct {
	Op     string
	Index  uint32
	Length uint32
	Size   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("text: %s: range [%d, %d) out of bounds (size %d)",
		e.Op, e.Index, e.Index+e.Length, e.Size)
}

func checkRange(op string, start, length uint32, size int) error {
	if uint64(start)+uint64(length) > uint64(size) {
		return &RangeError{Op: op, Index: start, Length: length, Size: size}
	}
	return nil
}
