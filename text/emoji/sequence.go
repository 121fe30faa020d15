package emoji

// SequenceType classifies an emoji sequence.
type SequenceType uint8

const (
	// SequenceNone means the text does not start with an emoji.
	SequenceNone SequenceType = iota
	// SequenceSimple is a single emoji, possibly with U+FE0F.
	SequenceSimple
	// SequenceModified is an emoji followed by a skin tone modifier.
	SequenceModified
	// SequenceKeycap is a digit, '#' or '*' enclosed in a keycap.
	SequenceKeycap
	// SequenceFlag is a pair of regional indicators.
	SequenceFlag
	// SequenceTag is a subdivision flag.
	SequenceTag
	// SequenceZWJ is two or more emoji joined by U+200D.
	SequenceZWJ
)

// String returns the name of the sequence type.
func (t SequenceType) String() string {
	switch t {
	case SequenceNone:
		return "None"
	case SequenceSimple:
		return "Simple"
	case SequenceModified:
		return "Modified"
	case SequenceKeycap:
		return "Keycap"
	case SequenceFlag:
		return "Flag"
	case SequenceTag:
		return "Tag"
	case SequenceZWJ:
		return "ZWJ"
	default:
		return "Unknown"
	}
}

// Sequence is an emoji sequence found at the start of a rune slice.
type Sequence struct {
	// Length is the number of runes of the sequence, zero if there is none.
	Length int
	Type   SequenceType
}

// At returns the emoji sequence text starts with. A text presentation
// emoji counts only when U+FE0F or a skin tone modifier follows it; a
// lone regional indicator is a one rune flag.
func At(text []rune) Sequence {
	n, typ := element(text, false)
	if n == 0 {
		return Sequence{}
	}
	for n+1 < len(text) && IsZWJ(text[n]) {
		m, _ := element(text[n+1:], true)
		if m == 0 {
			break
		}
		n += 1 + m
		typ = SequenceZWJ
	}
	return Sequence{Length: n, Type: typ}
}

// Parse returns the emoji sequences of text in order. Runes outside any
// sequence are skipped.
func Parse(text []rune) []Sequence {
	var seqs []Sequence
	for i := 0; i < len(text); {
		seq := At(text[i:])
		if seq.Length == 0 {
			i++
			continue
		}
		seqs = append(seqs, seq)
		i += seq.Length
	}
	return seqs
}

// element measures one emoji of a sequence. After a joiner the emoji
// presentation is implied.
func element(text []rune, joined bool) (int, SequenceType) {
	if len(text) == 0 {
		return 0, SequenceNone
	}
	r := text[0]
	switch {
	case IsKeycapBase(r):
		return keycapLength(text), SequenceKeycap
	case IsRegionalIndicator(r):
		if len(text) > 1 && IsRegionalIndicator(text[1]) {
			return 2, SequenceFlag
		}
		return 1, SequenceFlag
	case IsBlackFlag(r):
		if n := tagLength(text); n > 0 {
			return n, SequenceTag
		}
	}
	if !IsEmoji(r) {
		return 0, SequenceNone
	}

	n := 1
	typ := SequenceSimple
	presentation := joined || IsEmojiPresentation(r)
	if n < len(text) {
		switch {
		case IsTextPresentation(text[n]):
			return 0, SequenceNone
		case IsEmojiVariation(text[n]):
			presentation = true
			n++
		}
	}
	if n < len(text) && IsEmojiModifier(text[n]) && IsEmojiModifierBase(r) {
		presentation = true
		typ = SequenceModified
		n++
	}
	if !presentation {
		return 0, SequenceNone
	}
	return n, typ
}

func keycapLength(text []rune) int {
	n := 1
	if n < len(text) && IsEmojiVariation(text[n]) {
		n++
	}
	if n < len(text) && IsCombiningEnclosingKeycap(text[n]) {
		return n + 1
	}
	return 0
}

// tagLength measures a black flag followed by tag characters and a cancel
// tag.
func tagLength(text []rune) int {
	n := 1
	for n < len(text) && IsTagCharacter(text[n]) {
		n++
	}
	if n > 1 && n < len(text) && IsCancelTag(text[n]) {
		return n + 1
	}
	return 0
}
