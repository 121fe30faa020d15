package text

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily is the family of the embedded Go fonts.
const DefaultFamily = "Go"

// LineMetrics holds the vertical metrics of a font in pixels.
type LineMetrics struct {
	// Ascender is the distance from the baseline to the top (positive).
	Ascender float32
	// Descender is the distance from the baseline to the bottom (negative).
	Descender float32
	// LineGap is the recommended extra spacing.
	LineGap float32
	// Height is Ascender - Descender.
	Height float32
}

// FontClient resolves font descriptions to FontIDs and answers glyph and
// metrics queries for them. A FontID stands for a font source at a point
// size.
//
// FontClient is safe for concurrent use; all methods serialize on one
// mutex.
type FontClient struct {
	mu sync.Mutex

	config     fontClientConfig
	dpiH, dpiV uint32

	sources  []*FontSource
	coverage map[*FontSource]*coverage

	fonts []fontEntry // indexed by FontID-1
	ids   map[fontKey]FontID

	fontMap    *fontscan.FontMap
	scanReady  bool
	discovered map[*font.Font]*FontSource
}

type fontEntry struct {
	source    *FontSource
	pointSize float32
}

type fontKey struct {
	source *FontSource
	size   uint32
}

// NewFontClient creates a FontClient. Unless disabled with
// WithEmbeddedFonts(false), the Go fonts are registered as the default
// family.
func NewFontClient(opts ...FontClientOption) (*FontClient, error) {
	config := defaultFontClientConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.defaultFamily == "" {
		config.defaultFamily = DefaultFamily
	}

	c := &FontClient{
		config:     config,
		dpiH:       config.dpiH,
		dpiV:       config.dpiV,
		coverage:   make(map[*FontSource]*coverage),
		ids:        make(map[fontKey]FontID),
		discovered: make(map[*font.Font]*FontSource),
		fontMap:    fontscan.NewFontMap(printfLogger{}),
	}

	if config.embeddedFonts {
		if err := c.addEmbeddedFonts(); err != nil {
			return nil, err
		}
	}
	c.sources = append(c.sources, config.sources...)
	if config.systemFonts {
		if err := c.fontMap.UseSystemFonts(config.cacheDir); err != nil {
			logger().Warn("text: system fonts unavailable", "err", err)
		} else {
			c.scanReady = true
		}
	}
	for _, dir := range config.fontDirs {
		if err := c.scanDirectory(dir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *FontClient) addEmbeddedFonts() error {
	embedded := []struct {
		data  []byte
		style SourceOption
	}{
		{goregular.TTF, WithStyle(WeightNormal, WidthNormal, SlantNormal)},
		{gobold.TTF, WithStyle(WeightBold, WidthNormal, SlantNormal)},
		{goitalic.TTF, WithStyle(WeightNormal, WidthNormal, SlantItalic)},
		{gobolditalic.TTF, WithStyle(WeightBold, WidthNormal, SlantItalic)},
	}
	for _, e := range embedded {
		src, err := NewFontSource(e.data, WithFamily(DefaultFamily), e.style)
		if err != nil {
			return fmt.Errorf("text: embedded font: %w", err)
		}
		c.sources = append(c.sources, src)
	}
	return nil
}

// scanDirectory adds every font file under dir to the fallback font map.
func (c *FontClient) scanDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ttf", ".otf", ".ttc", ".otc":
		default:
			return nil
		}
		// #nosec G304 -- font directory is provided by the user
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("text: open font: %w", err)
		}
		defer f.Close()
		if err := c.fontMap.AddFont(f, path, ""); err != nil {
			logger().Warn("text: skipping font file", "path", path, "err", err)
			return nil
		}
		c.scanReady = true
		return nil
	})
}

// AddFontSource registers a font so descriptions can resolve to it.
func (c *FontClient) AddFontSource(src *FontSource) {
	if src == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = append(c.sources, src)
}

// SetDpi sets the horizontal and vertical resolution used to convert
// point sizes to pixels.
func (c *FontClient) SetDpi(h, v uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dpiH, c.dpiV = h, v
}

// Dpi returns the current resolution.
func (c *FontClient) Dpi() (h, v uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dpiH, c.dpiV
}

// DefaultDescription returns the description used for unstyled text.
func (c *FontClient) DefaultDescription() FontDescription {
	return FontDescription{Family: c.config.defaultFamily}.normalized()
}

// DefaultPointSize returns the size used for unsized text.
func (c *FontClient) DefaultPointSize() float32 {
	return c.config.defaultPointSz
}

// GetFontID returns the font that best matches desc at pointSize.
// Unknown families resolve to the default family; zero is returned only
// when no font is registered at all.
func (c *FontClient) GetFontID(desc FontDescription, pointSize float32) FontID {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.matchSourceLocked(desc)
	if src == nil {
		return 0
	}
	return c.idForLocked(src, pointSize)
}

func (c *FontClient) matchSourceLocked(desc FontDescription) *FontSource {
	desc = desc.Merge(FontDescription{Family: c.config.defaultFamily}).normalized()
	if src := bestSource(c.sources, desc); src != nil {
		return src
	}
	if !strings.EqualFold(desc.Family, c.config.defaultFamily) {
		logger().Debug("text: family not found, using default",
			"family", desc.Family, "default", c.config.defaultFamily)
		desc.Family = c.config.defaultFamily
		if src := bestSource(c.sources, desc); src != nil {
			return src
		}
	}
	if len(c.sources) > 0 {
		return c.sources[0]
	}
	return nil
}

// bestSource picks the source of desc's family closest in style.
func bestSource(sources []*FontSource, desc FontDescription) *FontSource {
	var best *FontSource
	bestScore := math.MaxInt
	for _, src := range sources {
		style := src.style
		if !strings.EqualFold(style.Family, desc.Family) {
			continue
		}
		score := absInt(int(style.Weight)-int(desc.Weight)) +
			2*absInt(int(style.Width)-int(desc.Width))
		if style.Slant != desc.Slant {
			score += 8
		}
		if score < bestScore {
			best, bestScore = src, score
		}
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (c *FontClient) idForLocked(src *FontSource, pointSize float32) FontID {
	if pointSize <= 0 {
		pointSize = c.config.defaultPointSz
	}
	key := fontKey{source: src, size: math.Float32bits(pointSize)}
	if id, ok := c.ids[key]; ok {
		return id
	}
	c.fonts = append(c.fonts, fontEntry{source: src, pointSize: pointSize})
	id := FontID(len(c.fonts))
	c.ids[key] = id
	return id
}

func (c *FontClient) entryLocked(id FontID) (fontEntry, bool) {
	if id == 0 || int(id) > len(c.fonts) {
		return fontEntry{}, false
	}
	return c.fonts[id-1], true
}

func (c *FontClient) pixelSizeLocked(e fontEntry) float64 {
	return float64(e.pointSize) * float64(c.dpiV) / 72
}

// Source returns the font source behind id, or nil.
func (c *FontClient) Source(id FontID) *FontSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, _ := c.entryLocked(id)
	return e.source
}

// PointSize returns the point size of id.
func (c *FontClient) PointSize(id FontID) float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, _ := c.entryLocked(id)
	return e.pointSize
}

// PixelSize returns the size of id in pixels per em.
func (c *FontClient) PixelSize(id FontID) float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entryLocked(id)
	if !ok {
		return 0
	}
	return float32(c.pixelSizeLocked(e))
}

// ShapingFont returns the go-text font and pixel size used to shape id.
func (c *FontClient) ShapingFont(id FontID) (*font.Font, float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entryLocked(id)
	if !ok {
		return nil, 0
	}
	return e.source.shaped, float32(c.pixelSizeLocked(e))
}

// GetFontMetrics returns the vertical metrics of id.
func (c *FontClient) GetFontMetrics(id FontID) LineMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entryLocked(id)
	if !ok {
		return LineMetrics{}
	}
	m := e.source.parsed.Metrics(c.pixelSizeLocked(e))
	return LineMetrics{
		Ascender:  float32(m.Ascent),
		Descender: -float32(m.Descent),
		LineGap:   float32(m.LineGap),
		Height:    float32(m.Ascent + m.Descent),
	}
}

// GetGlyphIndex returns the glyph of r in id, or 0.
func (c *FontClient) GetGlyphIndex(id FontID, r rune) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entryLocked(id)
	if !ok {
		return 0
	}
	return e.source.parsed.GlyphIndex(r)
}

// GetGlyphMetrics fills the metrics of glyphs from their fonts. It returns
// false if a glyph refers to an unknown font; such glyphs are left as is.
func (c *FontClient) GetGlyphMetrics(glyphs []GlyphInfo) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok := true
	for i := range glyphs {
		g := &glyphs[i]
		e, found := c.entryLocked(g.FontID)
		if !found {
			ok = false
			continue
		}
		ppem := c.pixelSizeLocked(e)
		bounds := e.source.parsed.GlyphBounds(g.Index, ppem)
		g.Advance = float32(e.source.parsed.GlyphAdvance(g.Index, ppem))
		g.Width = float32(bounds.Width())
		g.Height = float32(bounds.Height())
		g.XBearing = float32(bounds.MinX)
		g.YBearing = float32(-bounds.MinY)
		g.ScaleFactor = 1
	}
	return ok
}

// IsCharacterSupported reports whether id has a glyph for r.
func (c *FontClient) IsCharacterSupported(id FontID, r rune) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entryLocked(id)
	if !ok {
		return false
	}
	return c.supportsLocked(e.source, r)
}

func (c *FontClient) supportsLocked(src *FontSource, r rune) bool {
	if unicode.IsControl(r) || IsNewParagraph(r) {
		// Control characters never draw; any font will do.
		return true
	}
	cov, ok := c.coverage[src]
	if !ok {
		cov = newCoverage()
		c.coverage[src] = cov
	}
	if supported, checked := cov.lookup(r); checked {
		return supported
	}
	supported := src.parsed.GlyphIndex(r) != 0
	cov.store(r, supported)
	return supported
}

// HasColorGlyphs reports whether id is a color font.
func (c *FontClient) HasColorGlyphs(id FontID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entryLocked(id)
	return ok && e.source.color
}

// FindDefaultFont returns a font of the default family that supports r,
// falling back to any known font, and finally to the default font itself.
func (c *FontClient) FindDefaultFont(r rune, pointSize float32) FontID {
	id := c.GetFontID(c.DefaultDescription(), pointSize)
	if id == 0 || c.IsCharacterSupported(id, r) {
		return id
	}
	if fallback := c.FindFallbackFont(id, r, pointSize, false); fallback != 0 {
		return fallback
	}
	return id
}

// FindFallbackFont looks for a font other than preferred that supports r.
// Registered fonts are tried first, then the fonts known to fontscan.
// With preferColor set, only color fonts are accepted. It returns zero if
// nothing supports r.
func (c *FontClient) FindFallbackFont(preferred FontID, r rune, pointSize float32, preferColor bool) FontID {
	c.mu.Lock()
	defer c.mu.Unlock()

	var family string
	if e, ok := c.entryLocked(preferred); ok {
		family = e.source.style.Family
		if pointSize <= 0 {
			pointSize = e.pointSize
		}
	}

	for _, src := range c.sources {
		if preferColor && !src.color {
			continue
		}
		if c.supportsLocked(src, r) {
			return c.idForLocked(src, pointSize)
		}
	}

	if !c.scanReady || preferColor {
		return 0
	}
	families := []string{fontscan.SansSerif}
	if family != "" {
		families = append([]string{family}, families...)
	}
	c.fontMap.SetQuery(fontscan.Query{Families: families})
	face := c.fontMap.ResolveFace(r)
	if face == nil {
		return 0
	}
	src, ok := c.discovered[face.Font]
	if !ok {
		src = newFaceSource(face, "")
		c.discovered[face.Font] = src
		logger().Debug("text: adopted fallback font", "rune", r)
	}
	if !c.supportsLocked(src, r) {
		return 0
	}
	return c.idForLocked(src, pointSize)
}

// printfLogger routes fontscan diagnostics to the package logger.
type printfLogger struct{}

func (printfLogger) Printf(format string, args ...interface{}) {
	logger().Debug(fmt.Sprintf(format, args...))
}
