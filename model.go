package textmodel

import (
	"fmt"

	"github.com/gogpu/textmodel/text"
)

// LogicalModel holds the characters of a text and everything derived from
// them in logical order.
type LogicalModel struct {
	Text          []rune
	LineBreakInfo []text.LineBreakInfo
	WordBreakInfo []text.WordBreakInfo

	ScriptRuns          []text.ScriptRun
	FontDescriptionRuns []text.FontDescriptionRun
	FontRuns            []text.FontRun

	// BidirectionalParagraphInfo holds only the paragraphs with right to
	// left text.
	BidirectionalParagraphInfo []text.BidirectionalParagraphInfoRun

	// CharacterDirections is empty when the text is all left to right.
	CharacterDirections []text.Direction

	BidirectionalLineInfo []text.BidirectionalLineInfoRun
}

// VisualModel holds the glyphs of a text and their layout.
type VisualModel struct {
	Glyphs             []text.GlyphInfo
	GlyphsToCharacters []text.CharacterIndex
	CharactersToGlyph  []text.GlyphIndex
	CharactersPerGlyph []text.Length
	GlyphsPerCharacter []text.Length

	// GlyphPositions holds the pen position of every glyph before
	// alignment. See TextLayoutState.AlignedGlyphPositions.
	GlyphPositions []text.Vector2
	Lines          []text.LineRun

	// NaturalSize is the size of the text laid out without wrapping.
	NaturalSize text.Size
	// LayoutSize is the size of the text laid out in the area.
	LayoutSize text.Size
}

// TextLayoutState is the logical and visual model of one text.
type TextLayoutState struct {
	Logical LogicalModel
	Visual  VisualModel

	// Area is the area the text was last laid out in.
	Area text.Size
}

// NumberOfCharacters returns the number of characters of the text.
func (s *TextLayoutState) NumberOfCharacters() text.Length {
	return text.Length(len(s.Logical.Text)) //nolint:gosec // text length fits in uint32
}

// NumberOfGlyphs returns the number of shaped glyphs.
func (s *TextLayoutState) NumberOfGlyphs() text.Length {
	return text.Length(len(s.Visual.Glyphs)) //nolint:gosec // glyph count fits in uint32
}

// ClearModelData drops every derived datum from character from on: break
// info, directions, runs cut at from, the glyphs of the characters from
// on, and every line that reaches from, together with its bidirectional
// line info. The text itself is kept.
func (s *TextLayoutState) ClearModelData(from text.CharacterIndex) {
	l, v := &s.Logical, &s.Visual
	n := text.CharacterIndex(len(l.Text)) //nolint:gosec // text length fits in uint32
	if from > n {
		from = n
	}

	l.LineBreakInfo = truncate(l.LineBreakInfo, int(from))
	l.WordBreakInfo = truncate(l.WordBreakInfo, int(from))
	l.CharacterDirections = truncate(l.CharacterDirections, int(from))
	l.ScriptRuns = cutScriptRuns(l.ScriptRuns, from)
	l.FontRuns = cutFontRuns(l.FontRuns, from)

	paragraphs := l.BidirectionalParagraphInfo[:0]
	for _, p := range l.BidirectionalParagraphInfo {
		if p.End() <= from {
			paragraphs = append(paragraphs, p)
		}
	}
	l.BidirectionalParagraphInfo = paragraphs
	if len(paragraphs) == 0 {
		l.CharacterDirections = l.CharacterDirections[:0]
	}

	firstGlyph := text.GlyphIndex(len(v.Glyphs)) //nolint:gosec // glyph count fits in uint32
	if int(from) < len(v.CharactersToGlyph) {
		firstGlyph = v.CharactersToGlyph[from]
	}
	v.Glyphs = truncate(v.Glyphs, int(firstGlyph))
	v.GlyphsToCharacters = truncate(v.GlyphsToCharacters, int(firstGlyph))
	v.CharactersPerGlyph = truncate(v.CharactersPerGlyph, int(firstGlyph))
	v.GlyphPositions = truncate(v.GlyphPositions, int(firstGlyph))
	v.CharactersToGlyph = truncate(v.CharactersToGlyph, int(from))
	v.GlyphsPerCharacter = truncate(v.GlyphsPerCharacter, int(from))

	lineCut := len(v.Lines)
	for i, line := range v.Lines {
		if line.End() > from || line.GlyphIndex+line.NumberOfGlyphs > firstGlyph || line.IsLastNewParagraph {
			lineCut = i
			break
		}
	}
	v.Lines = v.Lines[:lineCut]
	keptChars := linesEnd(v.Lines)
	lineInfo := l.BidirectionalLineInfo[:0]
	for _, info := range l.BidirectionalLineInfo {
		if info.End() <= keptChars {
			lineInfo = append(lineInfo, info)
		}
	}
	l.BidirectionalLineInfo = lineInfo
}

// CreateGlyphsPerCharacterTable fills GlyphsPerCharacter for the characters
// [start, start+numberOfCharacters) from the glyphs from startGlyph on.
// Every glyph counts for the first character of its cluster.
func (s *TextLayoutState) CreateGlyphsPerCharacterTable(start text.CharacterIndex, startGlyph text.GlyphIndex, numberOfCharacters text.Length) {
	v := &s.Visual
	end := start + numberOfCharacters
	v.GlyphsPerCharacter = resize(v.GlyphsPerCharacter, int(end))
	clear(v.GlyphsPerCharacter[start:end])
	for g := int(startGlyph); g < len(v.Glyphs); g++ {
		if c := v.GlyphsToCharacters[g]; c >= start && c < end {
			v.GlyphsPerCharacter[c]++
		}
	}
}

// CreateCharacterToGlyphTable fills CharactersToGlyph for the characters
// [start, start+numberOfCharacters): every character of a cluster maps to
// the cluster's first glyph.
func (s *TextLayoutState) CreateCharacterToGlyphTable(start text.CharacterIndex, startGlyph text.GlyphIndex, numberOfCharacters text.Length) {
	v := &s.Visual
	end := start + numberOfCharacters
	v.CharactersToGlyph = resize(v.CharactersToGlyph, int(end))
	for g := int(startGlyph); g < len(v.Glyphs); g++ {
		first := v.GlyphsToCharacters[g]
		for c := first; c < first+v.CharactersPerGlyph[g] && c < end; c++ {
			v.CharactersToGlyph[c] = text.GlyphIndex(g) //nolint:gosec // glyph count fits in uint32
		}
	}
}

// AlignedGlyphPositions returns the glyph positions with each line's
// alignment offset applied.
func (s *TextLayoutState) AlignedGlyphPositions() []text.Vector2 {
	v := &s.Visual
	out := make([]text.Vector2, len(v.GlyphPositions))
	copy(out, v.GlyphPositions)
	for _, line := range v.Lines {
		for g := line.GlyphIndex; g < line.GlyphIndex+line.NumberOfGlyphs && int(g) < len(out); g++ {
			out[g].X += line.AlignmentOffset
		}
	}
	return out
}

// LineText returns the characters of line i.
func (s *TextLayoutState) LineText(i int) string {
	if i < 0 || i >= len(s.Visual.Lines) {
		return ""
	}
	line := s.Visual.Lines[i]
	return string(s.Logical.Text[line.CharacterIndex:line.End()])
}

// Validate checks the invariants of the model: script and font runs
// partition the text, every character has a font, the glyph and character
// maps agree, and the lines cover the glyphs in order.
func (s *TextLayoutState) Validate() error {
	l, v := &s.Logical, &s.Visual
	n := s.NumberOfCharacters()

	if err := checkPartition("script runs", n, len(l.ScriptRuns), func(i int) text.CharacterRun {
		return l.ScriptRuns[i].CharacterRun
	}); err != nil {
		return err
	}
	if err := checkPartition("font runs", n, len(l.FontRuns), func(i int) text.CharacterRun {
		return l.FontRuns[i].CharacterRun
	}); err != nil {
		return err
	}
	for _, run := range l.FontRuns {
		if run.FontID == 0 {
			return fmt.Errorf("%w: characters [%d, %d) have no font", ErrInvalidModel, run.CharacterIndex, run.End())
		}
	}
	for _, run := range l.ScriptRuns {
		if run.Script == text.ScriptCommon || run.Script == text.ScriptUnknown {
			return fmt.Errorf("%w: characters [%d, %d) have no script", ErrInvalidModel, run.CharacterIndex, run.End())
		}
	}

	if len(v.GlyphsToCharacters) != len(v.Glyphs) || len(v.CharactersPerGlyph) != len(v.Glyphs) {
		return fmt.Errorf("%w: glyph tables have different lengths", ErrInvalidModel)
	}
	var total text.Length
	for _, count := range v.CharactersPerGlyph {
		total += count
	}
	if total != n {
		return fmt.Errorf("%w: glyphs represent %d characters, text has %d", ErrInvalidModel, total, n)
	}
	if text.Length(len(v.CharactersToGlyph)) != n { //nolint:gosec // table length fits in uint32
		return fmt.Errorf("%w: character to glyph table has %d entries, text has %d", ErrInvalidModel, len(v.CharactersToGlyph), n)
	}
	for c := text.CharacterIndex(0); c < n; c++ {
		g := v.CharactersToGlyph[c]
		if int(g) >= len(v.Glyphs) {
			return fmt.Errorf("%w: character %d maps to glyph %d of %d", ErrInvalidModel, c, g, len(v.Glyphs))
		}
		first := v.GlyphsToCharacters[g]
		if c < first || c >= first+v.CharactersPerGlyph[g] {
			return fmt.Errorf("%w: character %d maps to glyph %d covering [%d, %d)",
				ErrInvalidModel, c, g, first, first+v.CharactersPerGlyph[g])
		}
	}

	var next text.GlyphIndex
	for i, line := range v.Lines {
		if line.GlyphIndex != next {
			return fmt.Errorf("%w: line %d starts at glyph %d, want %d", ErrInvalidModel, i, line.GlyphIndex, next)
		}
		next += line.NumberOfGlyphs
	}
	if len(v.Lines) > 0 && int(next) != len(v.Glyphs) {
		return fmt.Errorf("%w: lines cover %d of %d glyphs", ErrInvalidModel, next, len(v.Glyphs))
	}
	return nil
}

func checkPartition(what string, n text.Length, count int, run func(int) text.CharacterRun) error {
	var next text.CharacterIndex
	for i := range count {
		r := run(i)
		if r.CharacterIndex != next || r.NumberOfCharacters == 0 {
			return fmt.Errorf("%w: %s: run %d covers [%d, %d), want start %d",
				ErrInvalidModel, what, i, r.CharacterIndex, r.End(), next)
		}
		next = r.End()
	}
	if next != n {
		return fmt.Errorf("%w: %s cover %d of %d characters", ErrInvalidModel, what, next, n)
	}
	return nil
}

func cutScriptRuns(runs []text.ScriptRun, from text.CharacterIndex) []text.ScriptRun {
	out := runs[:0]
	for _, r := range runs {
		if r.CharacterIndex >= from {
			break
		}
		if r.End() > from {
			r.NumberOfCharacters = from - r.CharacterIndex
		}
		out = append(out, r)
	}
	return out
}

func cutFontRuns(runs []text.FontRun, from text.CharacterIndex) []text.FontRun {
	out := runs[:0]
	for _, r := range runs {
		if r.CharacterIndex >= from {
			break
		}
		if r.End() > from {
			r.NumberOfCharacters = from - r.CharacterIndex
		}
		out = append(out, r)
	}
	return out
}

func linesEnd(lines []text.LineRun) text.CharacterIndex {
	if len(lines) == 0 {
		return 0
	}
	return lines[len(lines)-1].End()
}

func truncate[T any](s []T, n int) []T {
	if n < len(s) {
		return s[:n]
	}
	return s
}

// resize returns s with length n, zeroing new elements.
func resize[T any](s []T, n int) []T {
	if n <= len(s) {
		return s[:n]
	}
	return append(s, make([]T, n-len(s))...)
}
