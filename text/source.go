package text

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// FontSource represents a loaded font file.
// One FontSource backs a FontID for every point size it is used at.
//
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontSource itself.
	addr *FontSource

	data   []byte
	parsed ParsedFont // metrics backend
	shaped *font.Font // shaping backend

	name  string
	style FontDescription
	color bool
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parser, err := getParser(config.parserName)
	if err != nil {
		return nil, err
	}
	parsed, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	loader, err := opentype.NewLoader(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("text: failed to load font tables: %w", err)
	}
	face, err := font.NewFont(loader)
	if err != nil {
		return nil, fmt.Errorf("text: failed to load font for shaping: %w", err)
	}

	s := &FontSource{
		data:   dataCopy,
		parsed: parsed,
		shaped: face,
		style:  config.style.normalized(),
		color:  hasColorTables(loader),
	}
	s.addr = s

	s.name = config.family
	if s.name == "" {
		s.name = extractFontName(parsed)
	}
	s.style.Family = s.name
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data, opts...)
}

// newFaceSource wraps a face discovered by fontscan.
func newFaceSource(face *font.Face, family string) *FontSource {
	s := &FontSource{
		parsed: newGoTextParsedFont(face, family),
		shaped: face.Font,
		name:   family,
		style:  FontDescription{Family: family}.normalized(),
	}
	s.addr = s
	return s
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Style returns the description the source satisfies.
func (s *FontSource) Style() FontDescription {
	s.copyCheck()
	return s.style
}

// HasColorGlyphs reports whether the font carries color glyph tables.
func (s *FontSource) HasColorGlyphs() bool {
	s.copyCheck()
	return s.color
}

// Parsed returns the parsed font used for metrics.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	return s.parsed
}

// ShapingFont returns the go-text font used for shaping.
// font.Font is read-only and safe for concurrent use, unlike font.Face.
func (s *FontSource) ShapingFont() *font.Font {
	s.copyCheck()
	return s.shaped
}

// copyCheck panics if FontSource was copied by value.
// This is the Ebitengine pattern for preventing accidental copies.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}

var colorTables = []string{"COLR", "CBDT", "sbix", "SVG "}

func hasColorTables(ld *opentype.Loader) bool {
	for _, tag := range colorTables {
		if ld.HasTable(opentype.MustNewTag(tag)) {
			return true
		}
	}
	return false
}
