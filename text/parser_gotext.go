package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
)

// gotextParser implements FontParser using go-text/typesetting.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (p *gotextParser) Parse(data []byte) (ParsedFont, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return newGoTextParsedFont(face, ""), nil
}

// gotextParsedFont implements ParsedFont over a go-text face. It also backs
// fonts discovered through fontscan, which come without their raw data.
type gotextParsedFont struct {
	face   *font.Face
	family string
}

func newGoTextParsedFont(face *font.Face, family string) *gotextParsedFont {
	return &gotextParsedFont{face: face, family: family}
}

func (f *gotextParsedFont) Name() string     { return f.family }
func (f *gotextParsedFont) FullName() string { return f.family }

func (f *gotextParsedFont) NumGlyphs() int {
	// go-text does not expose the maxp glyph count.
	return 0
}

func (f *gotextParsedFont) UnitsPerEm() int {
	return int(f.face.Upem())
}

func (f *gotextParsedFont) GlyphIndex(r rune) uint32 {
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return uint32(gid)
}

func (f *gotextParsedFont) scale(ppem float64) float64 {
	upem := f.face.Upem()
	if upem == 0 {
		return 0
	}
	return ppem / float64(upem)
}

func (f *gotextParsedFont) GlyphAdvance(glyphIndex uint32, ppem float64) float64 {
	return float64(f.face.HorizontalAdvance(font.GID(glyphIndex))) * f.scale(ppem)
}

func (f *gotextParsedFont) GlyphBounds(glyphIndex uint32, ppem float64) Rect {
	ext, ok := f.face.GlyphExtents(font.GID(glyphIndex))
	if !ok {
		return Rect{}
	}
	s := f.scale(ppem)
	// go-text extents grow upwards, Rect grows downwards.
	return Rect{
		MinX: float64(ext.XBearing) * s,
		MinY: -float64(ext.YBearing) * s,
		MaxX: float64(ext.XBearing+ext.Width) * s,
		MaxY: -float64(ext.YBearing+ext.Height) * s,
	}
}

func (f *gotextParsedFont) Metrics(ppem float64) FontMetrics {
	ext, ok := f.face.FontHExtents()
	if !ok {
		return FontMetrics{}
	}
	s := f.scale(ppem)
	return FontMetrics{
		Ascent:  float64(ext.Ascender) * s,
		Descent: -float64(ext.Descender) * s,
		LineGap: float64(ext.LineGap) * s,
	}
}
