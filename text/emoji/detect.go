package emoji

import "unicode"

// IsEmoji reports whether r is an emoji character, whatever its default
// presentation.
func IsEmoji(r rune) bool {
	return IsEmojiPresentation(r) || isTextDefault(r)
}

// IsEmojiPresentation reports whether r displays as emoji without U+FE0F.
func IsEmojiPresentation(r rune) bool {
	return unicode.Is(presentation, r)
}

// IsEmojiModifier reports whether r is a skin tone modifier.
func IsEmojiModifier(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

// IsEmojiModifierBase reports whether a skin tone modifier may follow r.
func IsEmojiModifierBase(r rune) bool {
	return unicode.Is(modifierBase, r)
}

// IsZWJ reports whether r is the zero width joiner U+200D.
func IsZWJ(r rune) bool {
	return r == 0x200D
}

// IsRegionalIndicator reports whether r is one of the regional indicator
// letters. Two of them form a flag.
func IsRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// IsTextPresentation reports whether r is the text variation selector U+FE0E.
func IsTextPresentation(r rune) bool {
	return r == 0xFE0E
}

// IsEmojiVariation reports whether r is the emoji variation selector U+FE0F.
func IsEmojiVariation(r rune) bool {
	return r == 0xFE0F
}

// IsKeycapBase reports whether r can start a keycap sequence.
func IsKeycapBase(r rune) bool {
	return (r >= '0' && r <= '9') || r == '#' || r == '*'
}

// IsCombiningEnclosingKeycap reports whether r is U+20E3.
func IsCombiningEnclosingKeycap(r rune) bool {
	return r == 0x20E3
}

// IsTagCharacter reports whether r is a tag character of a subdivision
// flag.
func IsTagCharacter(r rune) bool {
	return r >= 0xE0020 && r <= 0xE007E
}

// IsCancelTag reports whether r is U+E007F, the end of a tag sequence.
func IsCancelTag(r rune) bool {
	return r == 0xE007F
}

// IsBlackFlag reports whether r is the base of subdivision flags.
func IsBlackFlag(r rune) bool {
	return r == 0x1F3F4
}

// isTextDefault reports whether r is an emoji that displays as text
// unless followed by U+FE0F.
func isTextDefault(r rune) bool {
	return unicode.Is(textDefault, r)
}
