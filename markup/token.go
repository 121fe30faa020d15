package markup

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// TokenComparison reports whether s1 and s2 are the same token, ignoring
// case.
func TokenComparison(s1 string, s2 []byte) bool {
	if len(s1) != len(s2) {
		// Folding may change the length of non-ASCII text.
		return foldEqual(s1, string(s2))
	}
	for i := 0; i < len(s1); i++ {
		a, b := s1[i], s2[i]
		if a >= 0x80 || b >= 0x80 {
			return foldEqual(s1, string(s2))
		}
		if a != b && toLowerASCII(a) != toLowerASCII(b) {
			return false
		}
	}
	return true
}

func foldEqual(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// tag is a parsed start or end tag.
type tag struct {
	name  string
	attrs []attribute
	end   bool
	empty bool
}

type attribute struct {
	name, value string
}

// attr returns the value of the attribute name and whether it is present.
func (t *tag) attr(name string) (string, bool) {
	for _, a := range t.attrs {
		if TokenComparison(name, []byte(a.name)) {
			return a.value, true
		}
	}
	return "", false
}

// scanTag parses the tag starting at s[0] == '<'. It returns the number of
// bytes the tag spans, or zero when s does not hold a complete tag.
func scanTag(s string) (tag, int) {
	var quote byte
	end := -1
	for i := 1; i < len(s) && end < 0; i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '>':
			end = i
		case c == '<':
			return tag{}, 0
		}
	}
	if end < 0 {
		return tag{}, 0
	}

	body := strings.TrimSpace(s[1:end])
	var t tag
	if strings.HasPrefix(body, "/") {
		t.end = true
		body = strings.TrimSpace(body[1:])
	}
	if strings.HasSuffix(body, "/") {
		t.empty = true
		body = strings.TrimSpace(body[:len(body)-1])
	}
	if body == "" {
		return tag{}, 0
	}
	nameEnd := strings.IndexFunc(body, unicode.IsSpace)
	if nameEnd < 0 {
		nameEnd = len(body)
	}
	t.name = body[:nameEnd]
	t.attrs = scanAttributes(body[nameEnd:])
	return t, end + 1
}

// scanAttributes parses name=value pairs. Names without a value are
// dropped.
func scanAttributes(s string) []attribute {
	var attrs []attribute
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return attrs
		}
		n := strings.IndexFunc(s, func(r rune) bool { return r == '=' || unicode.IsSpace(r) })
		if n < 0 {
			return attrs
		}
		name := s[:n]
		s = strings.TrimLeftFunc(s[n:], unicode.IsSpace)
		if !strings.HasPrefix(s, "=") {
			continue
		}
		s = strings.TrimLeftFunc(s[1:], unicode.IsSpace)

		var value string
		if s != "" && (s[0] == '\'' || s[0] == '"') {
			q := s[0]
			closing := strings.IndexByte(s[1:], q)
			if closing < 0 {
				value, s = s[1:], ""
			} else {
				value, s = s[1:1+closing], s[2+closing:]
			}
			value = strings.TrimSpace(value)
		} else {
			n := strings.IndexFunc(s, unicode.IsSpace)
			if n < 0 {
				n = len(s)
			}
			value, s = s[:n], s[n:]
		}
		if name != "" {
			attrs = append(attrs, attribute{name: name, value: value})
		}
	}
}
