package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
// sfnt.Buffer is not safe for concurrent use; callers serialize access.
type ximageParsedFont struct {
	font *opentype.Font
	buf  sfnt.Buffer
}

func (f *ximageParsedFont) Name() string {
	if name, err := f.font.Name(&f.buf, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

func (f *ximageParsedFont) FullName() string {
	if name, err := f.font.Name(&f.buf, sfnt.NameIDFull); err == nil {
		return name
	}
	return ""
}

func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

func (f *ximageParsedFont) GlyphIndex(r rune) uint32 {
	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return uint32(idx)
}

func (f *ximageParsedFont) GlyphAdvance(glyphIndex uint32, ppem float64) float64 {
	advance, err := f.font.GlyphAdvance(&f.buf, sfnt.GlyphIndex(glyphIndex), toFixed(ppem), font.HintingNone) //nolint:gosec // glyph indices of sfnt fonts fit in uint16
	if err != nil {
		return 0
	}
	return fromFixed(advance)
}

func (f *ximageParsedFont) GlyphBounds(glyphIndex uint32, ppem float64) Rect {
	bounds, _, err := f.font.GlyphBounds(&f.buf, sfnt.GlyphIndex(glyphIndex), toFixed(ppem), font.HintingNone) //nolint:gosec // glyph indices of sfnt fonts fit in uint16
	if err != nil {
		return Rect{}
	}
	return Rect{
		MinX: fromFixed(bounds.Min.X),
		MinY: fromFixed(bounds.Min.Y),
		MaxX: fromFixed(bounds.Max.X),
		MaxY: fromFixed(bounds.Max.Y),
	}
}

func (f *ximageParsedFont) Metrics(ppem float64) FontMetrics {
	m, err := f.font.Metrics(&f.buf, toFixed(ppem), font.HintingNone)
	if err != nil {
		return FontMetrics{}
	}
	ascent := fromFixed(m.Ascent)
	descent := fromFixed(m.Descent)
	gap := fromFixed(m.Height) - ascent - descent
	if gap < 0 {
		gap = 0
	}
	return FontMetrics{Ascent: ascent, Descent: descent, LineGap: gap}
}

// toFixed converts a float64 size to fixed.Int26_6.
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fromFixed converts fixed.Int26_6 to float64.
func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
