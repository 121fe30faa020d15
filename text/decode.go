package text

import "unicode/utf8"

// Decode converts UTF-8 input to a sequence of code points.
//
// Decoding stops at the first invalid byte sequence; the valid prefix is
// returned. The result never has more entries than the input has bytes.
func Decode(src []byte) []rune {
	dst := make([]rune, len(src))
	n := DecodeInto(dst, src)
	return dst[:n]
}

// DecodeInto decodes src into dst and returns the number of code points
// written. dst must have room for len(src) code points.
func DecodeInto(dst []rune, src []byte) Length {
	var n Length
	for len(src) > 0 && int(n) < len(dst) {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError && size <= 1 {
			break
		}
		dst[n] = r
		n++
		src = src[size:]
	}
	return n
}

// Encode converts code points back to UTF-8.
func Encode(runes []rune) []byte {
	buf := make([]byte, 0, len(runes))
	for _, r := range runes {
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}
