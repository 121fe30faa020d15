package text

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"
)

// SetBidirectionalInfo computes the embedding levels of every paragraph of
// text[start:start+length] that contains right to left script runs.
//
// A paragraph ends after a character with LineMustBreak that is a
// paragraph separator or the last character of the range. Paragraphs
// without right to left scripts get no entry. With matchLayoutDirection
// set the paragraph direction is layoutDirection; otherwise it is taken
// from the first strong character.
//
// Entries of *info overlapping the range are replaced.
func SetBidirectionalInfo(
	text []rune,
	scripts []ScriptRun,
	lineBreakInfo []LineBreakInfo,
	start CharacterIndex,
	length Length,
	info *[]BidirectionalParagraphInfoRun,
	matchLayoutDirection bool,
	layoutDirection Direction,
) {
	if length == 0 {
		return
	}
	end := start + length

	var before, after []BidirectionalParagraphInfoRun
	for _, p := range *info {
		switch {
		case p.End() <= start:
			before = append(before, p)
		case p.CharacterIndex >= end:
			after = append(after, p)
		}
	}

	var created []BidirectionalParagraphInfoRun
	paragraphStart := start
	for i := start; i < end; i++ {
		if lineBreakInfo[i] != LineMustBreak || (!IsNewParagraph(text[i]) && i != end-1) {
			continue
		}
		paragraph := CharacterRun{CharacterIndex: paragraphStart, NumberOfCharacters: i + 1 - paragraphStart}
		paragraphStart = i + 1
		if !hasRightToLeftScript(scripts, paragraph) {
			continue
		}

		chars := text[paragraph.CharacterIndex:paragraph.End()]
		base := paragraphLevel(chars)
		if matchLayoutDirection {
			base = 0
			if layoutDirection == RightToLeft {
				base = 1
			}
		}
		levels, whitespace := resolveLevels(chars, base)
		created = append(created, BidirectionalParagraphInfoRun{
			CharacterRun: paragraph,
			Direction:    base == 1,
			Levels:       levels,
			whitespace:   whitespace,
		})
	}

	result := make([]BidirectionalParagraphInfoRun, 0, len(before)+len(created)+len(after))
	result = append(result, before...)
	result = append(result, created...)
	result = append(result, after...)
	*info = result

	logger().Debug("text: bidirectional info set",
		"start", start, "length", length, "paragraphs", len(created))
}

func hasRightToLeftScript(scripts []ScriptRun, paragraph CharacterRun) bool {
	for _, s := range scripts {
		if s.End() <= paragraph.CharacterIndex || s.CharacterIndex >= paragraph.End() {
			continue
		}
		if s.Script.IsRTL() {
			return true
		}
	}
	return false
}

// GetCharactersDirection derives the direction of every character of the
// range from the paragraph levels: odd levels are right to left.
// Characters outside bidirectional paragraphs are left to right.
//
// When info is empty the directions are not touched; an empty direction
// table means all text is left to right.
func GetCharactersDirection(
	info []BidirectionalParagraphInfoRun,
	numberOfCharacters Length,
	start CharacterIndex,
	length Length,
	directions *[]Direction,
) {
	if len(info) == 0 || length == 0 {
		return
	}
	dirs := *directions
	if Length(len(dirs)) < numberOfCharacters {
		dirs = append(dirs, make([]Direction, int(numberOfCharacters)-len(dirs))...)
	}
	dirs = dirs[:numberOfCharacters]

	end := start + length
	for i := start; i < end; i++ {
		dirs[i] = LeftToRight
	}
	for k := range info {
		p := &info[k]
		from := max(p.CharacterIndex, start)
		to := min(p.End(), end)
		for i := from; i < to; i++ {
			dirs[i] = p.Levels[i-p.CharacterIndex]%2 == 1
		}
	}
	*directions = dirs
}

// GetMirroredText copies text into *mirrored and replaces the characters
// of the range resolved to right to left with their Bidi_Mirroring_Glyph.
// It reports whether any character was replaced. text is never modified.
func GetMirroredText(
	text []rune,
	directions []Direction,
	info []BidirectionalParagraphInfoRun,
	start CharacterIndex,
	length Length,
	mirrored *[]rune,
) bool {
	if len(*mirrored) != len(text) {
		*mirrored = make([]rune, len(text))
		copy(*mirrored, text)
	} else {
		copy((*mirrored)[start:start+length], text[start:start+length])
	}
	if len(info) == 0 || len(directions) == 0 {
		return false
	}

	out := *mirrored
	updated := false
	end := start + length
	for i := start; i < end && int(i) < len(directions); i++ {
		if directions[i] != RightToLeft {
			continue
		}
		if m, ok := mirror(text[i]); ok {
			out[i] = m
			updated = true
		}
	}
	return updated
}

// mirror returns the Bidi_Mirroring_Glyph of r. Paired brackets come from
// the x/text bracket data; the other mirrored pairs from mirrorGlyphs.
func mirror(r rune) (rune, bool) {
	if props, _ := bidi.LookupRune(r); props.IsBracket() {
		m, _ := utf8.DecodeRuneInString(bidi.ReverseString(string(r)))
		return m, m != r
	}
	m, ok := mirrorGlyphs[r]
	return m, ok
}

// mirrorGlyphs maps the mirrored characters that are not paired brackets
// to their Bidi_Mirroring_Glyph, in both directions.
var mirrorGlyphs = func() map[rune]rune {
	pairs := [][2]rune{
		{'<', '>'},
		{'\u00AB', '\u00BB'}, // « »
		{'\u2039', '\u203A'}, // ‹ ›
		{'\u2208', '\u220B'},
		{'\u2209', '\u220C'},
		{'\u220A', '\u220D'},
		{'\u2215', '\u29F5'},
		{'\u223C', '\u223D'},
		{'\u2243', '\u22CD'},
		{'\u2252', '\u2253'},
		{'\u2254', '\u2255'},
		{'\u2264', '\u2265'}, // ≤ ≥
		{'\u2266', '\u2267'},
		{'\u2268', '\u2269'},
		{'\u226A', '\u226B'},
		{'\u226E', '\u226F'},
		{'\u2270', '\u2271'},
		{'\u2272', '\u2273'},
		{'\u2276', '\u2277'},
		{'\u2278', '\u2279'},
		{'\u227A', '\u227B'},
		{'\u227C', '\u227D'},
		{'\u2282', '\u2283'},
		{'\u2286', '\u2287'},
		{'\u2288', '\u2289'},
		{'\u228A', '\u228B'},
		{'\u228F', '\u2290'},
		{'\u2291', '\u2292'},
		{'\u22A2', '\u22A3'},
		{'\u22B0', '\u22B1'},
		{'\u22B2', '\u22B3'},
		{'\u22B4', '\u22B5'},
		{'\u22C9', '\u22CA'},
		{'\u22CB', '\u22CC'},
		{'\u22D0', '\u22D1'},
		{'\u22D6', '\u22D7'},
		{'\u22D8', '\u22D9'},
		{'\u22DA', '\u22DB'},
		{'\u22DC', '\u22DD'},
		{'\u22DE', '\u22DF'},
		{'\u22E0', '\u22E1'},
		{'\u22E2', '\u22E3'},
		{'\u22E4', '\u22E5'},
		{'\u22E6', '\u22E7'},
		{'\u22E8', '\u22E9'},
		{'\u22EA', '\u22EB'},
		{'\u22EC', '\u22ED'},
		{'\u22F0', '\u22F1'},
		{'\u29F8', '\u29F9'},
		{'\uFF1C', '\uFF1E'}, // fullwidth < >
	}
	m := make(map[rune]rune, 2*len(pairs))
	for _, p := range pairs {
		m[p[0]] = p[1]
		m[p[1]] = p[0]
	}
	return m
}()
