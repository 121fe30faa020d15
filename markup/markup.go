package markup

import (
	"html"
	"image/color"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/textmodel/text"
)

// Tag names.
const (
	TagFont   = "font"
	TagBold   = "b"
	TagItalic = "i"
	TagColor  = "color"
)

// ColorRun sets the color of a range of characters.
type ColorRun struct {
	text.CharacterRun
	Color color.RGBA
}

// Result is the plain text of a markup string and its style runs. Run
// indices count characters of Text.
type Result struct {
	Text      string
	FontRuns  []text.FontDescriptionRun
	ColorRuns []ColorRun
}

type runKind uint8

const (
	runNone runKind = iota
	runFont
	runColor
)

type openTag struct {
	name  string
	kind  runKind
	index int
}

// processor holds the state of one ProcessMarkup call.
type processor struct {
	res   Result
	out   strings.Builder
	count text.CharacterIndex
	stack []openTag
}

// ProcessMarkup strips the tags of s and returns the plain text with the
// font and color runs the tags describe. Runs are ordered by the position
// of their opening tag; a tag left open extends to the end of the text.
func ProcessMarkup(s string) (Result, error) {
	p := &processor{}
	p.out.Grow(len(s))

	plain := 0
	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && (s[i+1] == '<' || s[i+1] == '>') {
				p.text(s[plain:i])
				p.text(s[i+1 : i+2])
				i += 2
				plain = i
				continue
			}
		case '<':
			t, n := scanTag(s[i:])
			if n > 0 {
				p.text(s[plain:i])
				if err := p.tag(t); err != nil {
					return Result{}, err
				}
				i += n
				plain = i
				continue
			}
		}
		i++
	}
	p.text(s[plain:])

	for len(p.stack) > 0 {
		p.close(len(p.stack) - 1)
	}
	p.res.Text = p.out.String()
	p.res.FontRuns = dropEmpty(p.res.FontRuns, func(r text.FontDescriptionRun) bool { return r.NumberOfCharacters == 0 })
	p.res.ColorRuns = dropEmpty(p.res.ColorRuns, func(r ColorRun) bool { return r.NumberOfCharacters == 0 })
	return p.res, nil
}

// text appends plain text with its entities decoded.
func (p *processor) text(s string) {
	if s == "" {
		return
	}
	if strings.IndexByte(s, '&') >= 0 {
		s = html.UnescapeString(s)
	}
	p.out.WriteString(s)
	p.count += text.CharacterIndex(utf8.RuneCountInString(s))
}

func (p *processor) tag(t tag) error {
	if t.end {
		for i := len(p.stack) - 1; i >= 0; i-- {
			if TokenComparison(p.stack[i].name, []byte(t.name)) {
				p.close(i)
				return nil
			}
		}
		return nil
	}

	var run text.FontDescriptionRun
	var c color.RGBA
	kind := runNone
	switch name := []byte(t.name); {
	case TokenComparison(TagBold, name):
		kind = runFont
		run.Description.Weight = text.WeightBold
		run.WeightDefined = true
	case TokenComparison(TagItalic, name):
		kind = runFont
		run.Description.Slant = text.SlantItalic
		run.SlantDefined = true
	case TokenComparison(TagFont, name):
		kind = runFont
		if err := fontAttributes(&t, &run); err != nil {
			return err
		}
	case TokenComparison(TagColor, name):
		kind = runColor
		v, _ := t.attr("value")
		var err error
		if c, err = ParseColor(v); err != nil {
			return &AttributeError{Tag: t.name, Name: "value", Value: v, Err: err}
		}
	}
	if t.empty {
		return nil
	}

	open := openTag{name: t.name, kind: kind}
	start := text.CharacterRun{CharacterIndex: p.count}
	switch kind {
	case runFont:
		run.CharacterRun = start
		open.index = len(p.res.FontRuns)
		p.res.FontRuns = append(p.res.FontRuns, run)
	case runColor:
		open.index = len(p.res.ColorRuns)
		p.res.ColorRuns = append(p.res.ColorRuns, ColorRun{CharacterRun: start, Color: c})
	}
	p.stack = append(p.stack, open)
	return nil
}

// close ends the run of the open tag at stack index i.
func (p *processor) close(i int) {
	o := p.stack[i]
	switch o.kind {
	case runFont:
		r := &p.res.FontRuns[o.index]
		r.NumberOfCharacters = text.Length(p.count - r.CharacterIndex)
	case runColor:
		r := &p.res.ColorRuns[o.index]
		r.NumberOfCharacters = text.Length(p.count - r.CharacterIndex)
	}
	p.stack = append(p.stack[:i], p.stack[i+1:]...)
}

func fontAttributes(t *tag, run *text.FontDescriptionRun) error {
	invalid := func(name, value string) error {
		return &AttributeError{Tag: t.name, Name: name, Value: value, Err: ErrInvalidValue}
	}
	if v, ok := t.attr("family"); ok {
		run.Description.Family = v
		run.FamilyDefined = true
	}
	if v, ok := t.attr("size"); ok {
		size, err := strconv.ParseFloat(v, 32)
		if err != nil || size <= 0 {
			return invalid("size", v)
		}
		run.PointSize = float32(size)
		run.SizeDefined = true
	}
	if v, ok := t.attr("weight"); ok {
		w, found := text.ParseFontWeight(v)
		if !found {
			return invalid("weight", v)
		}
		run.Description.Weight = w
		run.WeightDefined = true
	}
	if v, ok := t.attr("width"); ok {
		w, found := text.ParseFontWidth(v)
		if !found {
			return invalid("width", v)
		}
		run.Description.Width = w
		run.WidthDefined = true
	}
	if v, ok := t.attr("slant"); ok {
		s, found := text.ParseFontSlant(v)
		if !found {
			return invalid("slant", v)
		}
		run.Description.Slant = s
		run.SlantDefined = true
	}
	return nil
}

func dropEmpty[T any](runs []T, empty func(T) bool) []T {
	out := runs[:0]
	for _, r := range runs {
		if !empty(r) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
