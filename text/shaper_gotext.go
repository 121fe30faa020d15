package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// HarfbuzzEngine shapes runs with the HarfBuzz port of go-text/typesetting.
// It supports ligatures, kerning, contextual forms, marks and right to
// left scripts.
//
// HarfbuzzEngine is safe for concurrent use. shaping.HarfbuzzShaper holds
// mutable buffers, so instances are pooled; a font.Face is created per run
// because faces are not safe for concurrent use either.
type HarfbuzzEngine struct {
	client   *FontClient
	language language.Language
	pool     sync.Pool
}

// NewHarfbuzzEngine creates a HarfbuzzEngine reading fonts from client.
func NewHarfbuzzEngine(client *FontClient) *HarfbuzzEngine {
	return &HarfbuzzEngine{
		client:   client,
		language: language.NewLanguage("en"),
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// SetLanguage sets the language passed to HarfBuzz, as a BCP 47 tag.
// It selects language-specific forms where the font has them.
func (e *HarfbuzzEngine) SetLanguage(tag string) {
	e.language = language.NewLanguage(tag)
}

// CacheVariant returns the language, which changes the glyphs HarfBuzz
// picks.
func (e *HarfbuzzEngine) CacheVariant() string {
	return string(e.language)
}

// MirrorsRightToLeft reports that HarfBuzz mirrors right to left runs
// itself.
func (e *HarfbuzzEngine) MirrorsRightToLeft() bool {
	return true
}

// Shape implements ShapingEngine.
func (e *HarfbuzzEngine) Shape(run ShapingRun) []ShapedGlyph {
	if run.End <= run.Start {
		return nil
	}
	shaped, ppem := e.client.ShapingFont(run.Font)
	if shaped == nil {
		return nil
	}

	dir := di.DirectionLTR
	if run.Direction == RightToLeft {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      run.Text,
		RunStart:  int(run.Start),
		RunEnd:    int(run.End),
		Direction: dir,
		Face:      font.NewFace(shaped),
		Size:      floatToFixed(ppem),
		Script:    run.Script.LanguageScript(),
		Language:  e.language,
	}

	hb := e.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	e.pool.Put(hb)

	return convertGlyphs(output.Glyphs, int(run.Start), dir)
}

// convertGlyphs converts go-text glyphs to logical order with clusters
// relative to runStart. Right to left output is in visual order; its
// clusters are reversed while the glyphs inside a cluster keep their order.
func convertGlyphs(glyphs []shaping.Glyph, runStart int, dir di.Direction) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}
	result := make([]ShapedGlyph, 0, len(glyphs))
	appendGlyph := func(g shaping.Glyph) {
		result = append(result, ShapedGlyph{
			ID:      uint32(g.GlyphID),
			Cluster: CharacterIndex(max(g.ClusterIndex-runStart, 0)), //nolint:gosec // clamped to non-negative
			Advance: fixedToFloat(g.XAdvance),
			XOffset: fixedToFloat(g.XOffset),
			YOffset: fixedToFloat(g.YOffset),
		})
	}

	if dir != di.DirectionRTL {
		for _, g := range glyphs {
			appendGlyph(g)
		}
		return result
	}
	for end := len(glyphs); end > 0; {
		start := end - 1
		for start > 0 && glyphs[start-1].ClusterIndex == glyphs[end-1].ClusterIndex {
			start--
		}
		for _, g := range glyphs[start:end] {
			appendGlyph(g)
		}
		end = start
	}
	return result
}

// floatToFixed converts a size in pixels to 26.6 fixed point.
func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a 26.6 fixed point value to pixels.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
