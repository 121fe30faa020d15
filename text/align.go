package text

import (
	"strings"

	"github.com/chewxy/math32"
)

// HorizontalAlignment places lines inside the layout width.
type HorizontalAlignment uint8

const (
	// AlignBegin places lines at the left edge.
	AlignBegin HorizontalAlignment = iota
	// AlignCenter centers lines, rounding the offset down.
	AlignCenter
	// AlignEnd places lines at the right edge.
	AlignEnd
)

// String returns the string representation of the alignment.
func (a HorizontalAlignment) String() string {
	switch a {
	case AlignBegin:
		return "Begin"
	case AlignCenter:
		return "Center"
	case AlignEnd:
		return "End"
	default:
		return unknownStr
	}
}

// ParseHorizontalAlignment parses "begin", "center" or "end", ignoring case.
func ParseHorizontalAlignment(s string) (HorizontalAlignment, bool) {
	for a := AlignBegin; a <= AlignEnd; a++ {
		if strings.EqualFold(s, a.String()) {
			return a, true
		}
	}
	return AlignBegin, false
}

// Align sets the AlignmentOffset of every line that intersects
// [start, start+length) from the width of size and the line's width
// without trailing white space. The offset is recomputed, not accumulated,
// so aligning twice gives the same result as aligning once.
func (e *LayoutEngine) Align(size Size, start CharacterIndex, length Length, alignment HorizontalAlignment, lines []LineRun) {
	end := start + length
	for i := range lines {
		line := &lines[i]
		if line.NumberOfCharacters > 0 && (line.End() <= start || line.CharacterIndex >= end) {
			continue
		}
		lineWidth := line.Width - line.ExtraLength
		switch alignment {
		case AlignCenter:
			line.AlignmentOffset = math32.Floor((size.Width - lineWidth) / 2)
		case AlignEnd:
			line.AlignmentOffset = size.Width - lineWidth
		default:
			line.AlignmentOffset = 0
		}
	}
}
