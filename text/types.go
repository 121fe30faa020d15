package text

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// CharacterIndex is the index of a character in the logical text.
type CharacterIndex = uint32

// GlyphIndex is the index of a glyph in the visual model.
type GlyphIndex = uint32

// Length is a number of characters, glyphs or runs.
type Length = uint32

// FontID identifies a font registered in a FontClient.
// Zero means no font.
type FontID uint32

// Direction specifies the direction of a character, a line or a paragraph.
type Direction bool

const (
	// LeftToRight is the default direction.
	LeftToRight Direction = false
	// RightToLeft is used by Arabic and Hebrew text, among others.
	RightToLeft Direction = true
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	if d == RightToLeft {
		return "RTL"
	}
	return "LTR"
}

// LineBreakInfo classifies the position after a character.
type LineBreakInfo uint8

const (
	// LineMustBreak forces a line break after the character.
	LineMustBreak LineBreakInfo = iota
	// LineAllowBreak allows a line break after the character.
	LineAllowBreak
	// LineNoBreak forbids a line break after the character.
	LineNoBreak
)

// String returns the string representation of the break info.
func (b LineBreakInfo) String() string {
	switch b {
	case LineMustBreak:
		return "MustBreak"
	case LineAllowBreak:
		return "AllowBreak"
	case LineNoBreak:
		return "NoBreak"
	default:
		return unknownStr
	}
}

// WordBreakInfo tells whether a word ends after a character.
type WordBreakInfo uint8

const (
	// WordBreak marks the last character of a word segment.
	WordBreak WordBreakInfo = iota
	// WordNoBreak marks a character inside a word segment.
	WordNoBreak
)

// String returns the string representation of the word break info.
func (b WordBreakInfo) String() string {
	switch b {
	case WordBreak:
		return "WordBreak"
	case WordNoBreak:
		return "WordNoBreak"
	default:
		return unknownStr
	}
}

// CharacterRun is a range of characters.
type CharacterRun struct {
	CharacterIndex     CharacterIndex
	NumberOfCharacters Length
}

// End returns the index one past the last character of the run.
func (r CharacterRun) End() CharacterIndex {
	return r.CharacterIndex + r.NumberOfCharacters
}

// Contains reports whether index falls inside the run.
func (r CharacterRun) Contains(index CharacterIndex) bool {
	return index >= r.CharacterIndex && index < r.End()
}

// GlyphRun is a range of glyphs.
type GlyphRun struct {
	GlyphIndex     GlyphIndex
	NumberOfGlyphs Length
}

// ScriptRun is a run of characters written in one script.
type ScriptRun struct {
	CharacterRun
	Script Script
}

// FontRun is a run of characters rendered with one font.
type FontRun struct {
	CharacterRun
	FontID FontID
}

// BidirectionalParagraphInfoRun holds the resolved embedding levels of one
// paragraph that contains right to left text.
type BidirectionalParagraphInfoRun struct {
	CharacterRun

	// Direction is the paragraph's base direction.
	Direction Direction

	// Levels holds one embedding level per character of the paragraph.
	Levels []uint8

	// whitespace marks the characters that rule L1 resets to the paragraph
	// level when they end a line.
	whitespace []bool
}

// Level returns the embedding level of the character at the given logical
// index, or the paragraph level if the index is outside the paragraph.
func (p *BidirectionalParagraphInfoRun) Level(index CharacterIndex) uint8 {
	if !p.Contains(index) {
		return p.baseLevel()
	}
	return p.Levels[index-p.CharacterIndex]
}

func (p *BidirectionalParagraphInfoRun) baseLevel() uint8 {
	if p.Direction == RightToLeft {
		return 1
	}
	return 0
}

// BidirectionalLineInfoRun holds the visual order of the characters of a
// line. The map is owned by the run.
type BidirectionalLineInfoRun struct {
	CharacterRun

	// Direction is the direction of the paragraph the line belongs to.
	Direction Direction

	// VisualToLogicalMap maps a visual position to a character offset
	// relative to CharacterIndex.
	VisualToLogicalMap []CharacterIndex

	// IsIdentity is set when the visual order equals the logical order.
	IsIdentity bool
}

// GlyphInfo holds a glyph and its metrics in pixels.
type GlyphInfo struct {
	FontID      FontID
	Index       uint32
	Width       float32
	Height      float32
	XBearing    float32
	YBearing    float32
	Advance     float32
	ScaleFactor float32
}

// Vector2 is a position in layout space.
type Vector2 struct {
	X, Y float32
}

// Size is a width and a height.
type Size struct {
	Width, Height float32
}

// LineRun describes one laid-out line.
type LineRun struct {
	GlyphRun
	CharacterRun

	// Width is the accumulated advance of the line's glyphs.
	Width float32
	// Ascender is the maximum ascender of the line's fonts.
	Ascender float32
	// Descender is the minimum (negative) descender of the line's fonts.
	Descender float32
	// LineSpacing is added below the line.
	LineSpacing float32
	// ExtraLength is the width of the white space at the end of the line.
	ExtraLength float32
	// AlignmentOffset is set by the alignment pass.
	AlignmentOffset float32

	Direction          Direction
	IsLastNewParagraph bool
}

// Height returns the line height.
func (l *LineRun) Height() float32 {
	return l.Ascender - l.Descender + l.LineSpacing
}

// Rect represents a rectangle for glyph bounds.
type Rect struct {
	// Min is the top-left corner
	MinX, MinY float64
	// Max is the bottom-right corner
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle is empty.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// IsNewParagraph reports whether r ends a paragraph.
func IsNewParagraph(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// IsWhiteSpace reports whether r is white space for layout purposes.
func IsWhiteSpace(r rune) bool {
	switch r {
	case ' ', '\t', 0xA0, 0x1680, 0x202F, 0x205F, 0x3000:
		return true
	}
	return (r >= 0x2000 && r <= 0x200A) || IsNewParagraph(r)
}
