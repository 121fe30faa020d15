package text

import (
	"strings"

	"github.com/chewxy/math32"
)

// LayoutMode selects the box model.
type LayoutMode uint8

const (
	// SingleLineBox lays every glyph on one line.
	SingleLineBox LayoutMode = iota
	// MultiLineBox wraps lines at the width of the bounding box.
	MultiLineBox
)

// String returns the string representation of the layout mode.
func (m LayoutMode) String() string {
	switch m {
	case SingleLineBox:
		return "SingleLineBox"
	case MultiLineBox:
		return "MultiLineBox"
	default:
		return unknownStr
	}
}

// ParseLayoutMode parses "single" or "multi", ignoring case.
func ParseLayoutMode(s string) (LayoutMode, bool) {
	switch strings.ToLower(s) {
	case "single", "singlelinebox":
		return SingleLineBox, true
	case "multi", "multilinebox":
		return MultiLineBox, true
	}
	return SingleLineBox, false
}

// WrapMode selects where a MultiLineBox layout may break lines.
type WrapMode uint8

const (
	// WrapWord breaks at line break opportunities.
	WrapWord WrapMode = iota
	// WrapCharacter breaks after any glyph.
	WrapCharacter
)

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapWord:
		return "Word"
	case WrapCharacter:
		return "Character"
	default:
		return unknownStr
	}
}

// ParseWrapMode parses "word" or "character", ignoring case.
func ParseWrapMode(s string) (WrapMode, bool) {
	for m := WrapWord; m <= WrapCharacter; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, true
		}
	}
	return WrapWord, false
}

// Parameters holds the logical and visual model a LayoutEngine reads.
type Parameters struct {
	// BoundingBox is the area to lay the text out in.
	BoundingBox Size

	Text                []rune
	LineBreakInfo       []LineBreakInfo
	WordBreakInfo       []WordBreakInfo
	CharacterDirections []Direction

	Glyphs             []GlyphInfo
	GlyphsToCharacters []CharacterIndex
	CharactersPerGlyph []Length
	CharactersToGlyph  []GlyphIndex
	GlyphsPerCharacter []Length

	// LineBidirectionalInfo is read by ReLayoutRightToLeftLines.
	LineBidirectionalInfo []BidirectionalLineInfoRun

	// StartGlyphIndex and NumberOfGlyphs select the glyphs to lay out.
	// Lines from StartLineIndex on are replaced.
	StartGlyphIndex     GlyphIndex
	NumberOfGlyphs      Length
	TotalNumberOfGlyphs Length
	StartLineIndex      uint32

	// EstimatedNumberOfLines only sizes the line buffer.
	EstimatedNumberOfLines uint32

	// IsLastNewParagraph adds an empty line when the text ends with a
	// paragraph separator.
	IsLastNewParagraph bool

	// LineSpacing is extra space added below every line.
	LineSpacing float32
}

// LayoutEngine breaks glyphs into lines and positions them.
type LayoutEngine struct {
	client *FontClient
	layout LayoutMode
	wrap   WrapMode
}

// NewLayoutEngine creates a SingleLineBox, WrapWord engine reading font
// metrics from client.
func NewLayoutEngine(client *FontClient) *LayoutEngine {
	return &LayoutEngine{client: client}
}

// SetLayout sets the box model.
func (e *LayoutEngine) SetLayout(layout LayoutMode) { e.layout = layout }

// Layout returns the box model.
func (e *LayoutEngine) Layout() LayoutMode { return e.layout }

// SetWrapMode sets where lines may break.
func (e *LayoutEngine) SetWrapMode(wrap WrapMode) { e.wrap = wrap }

// WrapMode returns where lines may break.
func (e *LayoutEngine) WrapMode() WrapMode { return e.wrap }

// lineLayout accumulates the glyphs of one line.
type lineLayout struct {
	glyphIndex         GlyphIndex
	numberOfGlyphs     Length
	characterIndex     CharacterIndex
	numberOfCharacters Length
	length             float32
	wsLengthEndOfLine  float32
	ascender           float32
	descender          float32
	lastFontID         FontID
}

// LayoutText lays out params.NumberOfGlyphs glyphs from
// params.StartGlyphIndex, replacing the lines from params.StartLineIndex.
//
// Glyph positions are written to *positions, which is grown to hold
// params.TotalNumberOfGlyphs entries: x = penX + xBearing and
// y = baseline - yBearing. *layoutSize is set to the bounding box of all
// lines. LayoutText reports whether any line was laid out.
func (e *LayoutEngine) LayoutText(params *Parameters, positions *[]Vector2, lines *[]LineRun, layoutSize *Size) bool {
	if int(params.StartLineIndex) < len(*lines) {
		*lines = (*lines)[:params.StartLineIndex]
	}
	if params.TotalNumberOfGlyphs == 0 {
		*lines = (*lines)[:0]
		*layoutSize = Size{}
		return false
	}
	if n := int(params.TotalNumberOfGlyphs); len(*positions) < n {
		*positions = append(*positions, make([]Vector2, n-len(*positions))...)
	} else {
		*positions = (*positions)[:n]
	}
	if cap(*lines) < len(*lines)+int(params.EstimatedNumberOfLines) {
		grown := make([]LineRun, len(*lines), len(*lines)+int(params.EstimatedNumberOfLines))
		copy(grown, *lines)
		*lines = grown
	}

	metrics := make(map[FontID]LineMetrics)
	penY := float32(0)
	for i := range *lines {
		penY += (*lines)[i].Height()
	}

	end := params.StartGlyphIndex + params.NumberOfGlyphs
	for index := params.StartGlyphIndex; index < end; {
		var layout lineLayout
		if e.layout == SingleLineBox {
			layout = e.singleLineLayout(params, index, end, metrics)
		} else {
			layout = e.multiLineLayout(params, index, end, metrics)
		}
		if layout.numberOfGlyphs == 0 {
			break
		}

		line := e.newLine(params, &layout)
		e.positionGlyphs(params, &layout, penY+line.Ascender, *positions)
		penY += line.Height()
		*lines = append(*lines, line)
		index += layout.numberOfGlyphs
	}

	if end == params.TotalNumberOfGlyphs && params.IsLastNewParagraph && e.layout == MultiLineBox {
		last := params.Glyphs[params.TotalNumberOfGlyphs-1]
		m := e.fontMetrics(last.FontID, metrics)
		*lines = append(*lines, LineRun{
			GlyphRun:           GlyphRun{GlyphIndex: params.TotalNumberOfGlyphs},
			CharacterRun:       CharacterRun{CharacterIndex: CharacterIndex(len(params.Text))}, //nolint:gosec // text length fits in uint32
			Ascender:           m.Ascender,
			Descender:          m.Descender,
			LineSpacing:        params.LineSpacing,
			Direction:          characterDirection(params.CharacterDirections, CharacterIndex(len(params.Text))-1), //nolint:gosec // text length fits in uint32
			IsLastNewParagraph: true,
		})
	}

	*layoutSize = boundingBox(*lines)
	logger().Debug("text: laid out",
		"layout", e.layout.String(), "glyphs", params.NumberOfGlyphs, "lines", len(*lines))
	return true
}

func (e *LayoutEngine) fontMetrics(id FontID, cache map[FontID]LineMetrics) LineMetrics {
	if m, ok := cache[id]; ok {
		return m
	}
	m := e.client.GetFontMetrics(id)
	cache[id] = m
	return m
}

// addGlyph adds glyph g to l.
func (e *LayoutEngine) addGlyph(params *Parameters, l *lineLayout, g GlyphIndex, metrics map[FontID]LineMetrics) {
	glyph := &params.Glyphs[g]
	if l.numberOfGlyphs == 0 {
		l.glyphIndex = g
		l.characterIndex = params.GlyphsToCharacters[g]
	}
	l.numberOfGlyphs++
	l.numberOfCharacters += params.CharactersPerGlyph[g]

	width := glyphExtent(params, g)
	l.length += width
	if last := lastCharacter(params, g); IsWhiteSpace(params.Text[last]) {
		l.wsLengthEndOfLine += width
	} else {
		l.wsLengthEndOfLine = 0
	}

	if glyph.FontID != l.lastFontID {
		m := e.fontMetrics(glyph.FontID, metrics)
		l.ascender = math32.Max(l.ascender, m.Ascender)
		l.descender = math32.Min(l.descender, m.Descender)
		l.lastFontID = glyph.FontID
	}
}

// glyphExtent is the glyph's advance, or its width for the last glyph of
// the text.
func glyphExtent(params *Parameters, g GlyphIndex) float32 {
	if g == params.TotalNumberOfGlyphs-1 {
		return params.Glyphs[g].Width
	}
	return params.Glyphs[g].Advance
}

// lastCharacter returns the last character of glyph g's cluster. Break
// info is read there.
func lastCharacter(params *Parameters, g GlyphIndex) CharacterIndex {
	first := params.GlyphsToCharacters[g]
	if n := params.CharactersPerGlyph[g]; n > 1 {
		return first + n - 1
	}
	return first
}

func (e *LayoutEngine) singleLineLayout(params *Parameters, from, end GlyphIndex, metrics map[FontID]LineMetrics) lineLayout {
	var l lineLayout
	for g := from; g < end; g++ {
		e.addGlyph(params, &l, g, metrics)
	}
	return l
}

// multiLineLayout fills one line greedily from glyph from.
//
// A LineMustBreak ends the line after its glyph. A glyph that would make
// the line wider than the box ends the line at the last LineAllowBreak;
// without one, at the last word break; without one, before the
// overflowing glyph. White space never overflows. A line always holds at
// least one glyph.
func (e *LayoutEngine) multiLineLayout(params *Parameters, from, end GlyphIndex, metrics map[FontID]LineMetrics) lineLayout {
	var current, committed, word lineLayout
	width := params.BoundingBox.Width

	for g := from; g < end; g++ {
		last := lastCharacter(params, g)
		space := IsWhiteSpace(params.Text[last])

		if current.numberOfGlyphs > 0 && !space && current.length+glyphExtent(params, g) > width {
			switch {
			case committed.numberOfGlyphs > 0:
				return committed
			case word.numberOfGlyphs > 0:
				return word
			default:
				return current
			}
		}

		e.addGlyph(params, &current, g, metrics)

		switch {
		case params.LineBreakInfo[last] == LineMustBreak:
			return current
		case params.LineBreakInfo[last] == LineAllowBreak || e.wrap == WrapCharacter:
			committed = current
		case params.WordBreakInfo[last] == WordBreak:
			word = current
		}
	}
	return current
}

func (e *LayoutEngine) newLine(params *Parameters, l *lineLayout) LineRun {
	return LineRun{
		GlyphRun: GlyphRun{GlyphIndex: l.glyphIndex, NumberOfGlyphs: l.numberOfGlyphs},
		CharacterRun: CharacterRun{
			CharacterIndex:     l.characterIndex,
			NumberOfCharacters: l.numberOfCharacters,
		},
		Width:       l.length,
		Ascender:    l.ascender,
		Descender:   l.descender,
		LineSpacing: params.LineSpacing,
		ExtraLength: l.wsLengthEndOfLine,
		Direction:   characterDirection(params.CharacterDirections, l.characterIndex),
	}
}

func (e *LayoutEngine) positionGlyphs(params *Parameters, l *lineLayout, baseline float32, positions []Vector2) {
	penX := float32(0)
	for g := l.glyphIndex; g < l.glyphIndex+l.numberOfGlyphs; g++ {
		glyph := &params.Glyphs[g]
		positions[g] = Vector2{X: penX + glyph.XBearing, Y: baseline - glyph.YBearing}
		penX += glyph.Advance
	}
}

// boundingBox returns the size of lines: the widest line without its
// trailing white space, by the sum of the line heights.
func boundingBox(lines []LineRun) Size {
	var size Size
	for i := range lines {
		size.Width = math32.Max(size.Width, lines[i].Width-lines[i].ExtraLength)
		size.Height += lines[i].Height()
	}
	return size
}
