package text

import (
	"fmt"
)

// ReorderLines computes the visual order of the characters of every line
// that intersects both [start, start+length) and a bidirectional paragraph.
//
// Each line's levels are copied from its paragraphs; characters outside
// any bidirectional paragraph are at level 0. Rule L1 resets the white
// space at the end of the line to the paragraph level, then rule L2
// reverses every maximal sequence at or above each level, from the highest
// level down to the lowest odd one. The resulting map is owned by the new
// BidirectionalLineInfoRun.
//
// Entries of *lineInfo overlapping the range are replaced. The Direction of
// every reordered line is set to its paragraph's direction.
func ReorderLines(
	paragraphs []BidirectionalParagraphInfoRun,
	start CharacterIndex,
	length Length,
	lines []LineRun,
	lineInfo *[]BidirectionalLineInfoRun,
) error {
	end := start + length
	for k := range paragraphs {
		p := &paragraphs[k]
		if Length(len(p.Levels)) != p.NumberOfCharacters {
			return fmt.Errorf("%w: paragraph at %d has %d levels for %d characters",
				ErrInvalidLineRange, p.CharacterIndex, len(p.Levels), p.NumberOfCharacters)
		}
	}

	var before, after []BidirectionalLineInfoRun
	for _, info := range *lineInfo {
		switch {
		case info.End() <= start:
			before = append(before, info)
		case info.CharacterIndex >= end:
			after = append(after, info)
		}
	}

	var created []BidirectionalLineInfoRun
	for i := range lines {
		line := &lines[i]
		if line.NumberOfCharacters == 0 || line.End() <= start || line.CharacterIndex >= end {
			continue
		}
		if i > 0 && lines[i-1].End() > line.CharacterIndex {
			return fmt.Errorf("%w: line %d starts at %d inside line %d",
				ErrInvalidLineRange, i, line.CharacterIndex, i-1)
		}

		info, ok := reorderLine(paragraphs, line.CharacterRun)
		if !ok {
			continue
		}
		line.Direction = info.Direction
		created = append(created, info)
	}

	result := make([]BidirectionalLineInfoRun, 0, len(before)+len(created)+len(after))
	result = append(result, before...)
	result = append(result, created...)
	result = append(result, after...)
	*lineInfo = result

	logger().Debug("text: lines reordered",
		"start", start, "length", length, "lines", len(created))
	return nil
}

// reorderLine builds the line info of run. It reports false when the line
// touches no bidirectional paragraph.
func reorderLine(paragraphs []BidirectionalParagraphInfoRun, run CharacterRun) (BidirectionalLineInfoRun, bool) {
	levels := make([]uint8, run.NumberOfCharacters)
	resettable := make([]bool, run.NumberOfCharacters)
	bases := make([]uint8, run.NumberOfCharacters)

	found := false
	dir := LeftToRight
	for k := range paragraphs {
		p := &paragraphs[k]
		from := max(p.CharacterIndex, run.CharacterIndex)
		to := min(p.End(), run.End())
		if from >= to {
			continue
		}
		if !found {
			dir = p.Direction
		}
		found = true
		for c := from; c < to; c++ {
			levels[c-run.CharacterIndex] = p.Levels[c-p.CharacterIndex]
			bases[c-run.CharacterIndex] = p.baseLevel()
			if p.whitespace != nil {
				resettable[c-run.CharacterIndex] = p.whitespace[c-p.CharacterIndex]
			}
		}
	}
	if !found {
		return BidirectionalLineInfoRun{}, false
	}

	// L1: trailing white space of the line.
	for i := len(levels) - 1; i >= 0 && resettable[i]; i-- {
		levels[i] = bases[i]
	}

	order, reversed := reverseLevels(levels)
	return BidirectionalLineInfoRun{
		CharacterRun:       run,
		Direction:          dir,
		VisualToLogicalMap: order,
		IsIdentity:         !reversed || isIdentity(order),
	}, true
}

func isIdentity(order []CharacterIndex) bool {
	for i, v := range order {
		if v != CharacterIndex(i) { //nolint:gosec // bounded by the line length
			return false
		}
	}
	return true
}

// ReLayoutRightToLeftLines recomputes the x positions of the glyphs of the
// reordered lines in params.LineBidirectionalInfo that intersect
// [start, start+length), walking their characters in visual order. The
// positions of every other line are left untouched.
func (e *LayoutEngine) ReLayoutRightToLeftLines(params *Parameters, start CharacterIndex, length Length, positions *[]Vector2) {
	end := start + length
	pos := *positions
	relaid := 0
	for k := range params.LineBidirectionalInfo {
		info := &params.LineBidirectionalInfo[k]
		if info.IsIdentity || info.End() <= start || info.CharacterIndex >= end {
			continue
		}

		penX := float32(0)
		for _, offset := range info.VisualToLogicalMap {
			c := info.CharacterIndex + offset
			if int(c) >= len(params.CharactersToGlyph) {
				continue
			}
			first := params.CharactersToGlyph[c]
			for g := first; g < first+params.GlyphsPerCharacter[c]; g++ {
				if int(g) >= len(pos) {
					break
				}
				glyph := &params.Glyphs[g]
				pos[g].X = penX + glyph.XBearing
				penX += glyph.Advance
			}
		}
		relaid++
	}
	logger().Debug("text: right to left lines relaid", "lines", relaid)
}
