package text

import (
	"fmt"
	"sync"
)

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (e.g., golang.org/x/image/font/opentype vs go-text/typesetting).
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
// Sizes are given in pixels per em; results are in pixels.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune.
	// Returns 0 if the glyph is not found.
	GlyphIndex(r rune) uint32

	// GlyphAdvance returns the horizontal advance of a glyph.
	GlyphAdvance(glyphIndex uint32, ppem float64) float64

	// GlyphBounds returns the bounding box of a glyph, y growing downwards.
	GlyphBounds(glyphIndex uint32, ppem float64) Rect

	// Metrics returns the font metrics.
	Metrics(ppem float64) FontMetrics
}

// FontMetrics holds font-level metrics at a specific size.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (positive).
	Descent float64

	// LineGap is the recommended line gap between lines.
	LineGap float64
}

// Height returns the total line height.
func (m FontMetrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Parser backend names.
const (
	ParserXImage = "ximage"
	ParserGoText = "gotext"
)

var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		ParserXImage: &ximageParser{},
		ParserGoText: &gotextParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = ParserXImage

// RegisterParser registers a custom font parser.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser registered under name.
func getParser(name string) (FontParser, error) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParser, name)
}
