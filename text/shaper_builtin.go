package text

// SimpleEngine maps every character to its nominal glyph and advances by
// the glyph's advance width. It supports Latin, Cyrillic, Greek, CJK and
// other scripts that need no contextual shaping.
//
// The shaping is left to right one glyph per character without:
//   - ligature substitution (fi, fl, etc.)
//   - kerning pairs
//   - contextual forms
//   - mark positioning
//
// SimpleEngine is stateless and safe for concurrent use.
type SimpleEngine struct {
	client *FontClient
}

// NewSimpleEngine creates a SimpleEngine reading fonts from client.
func NewSimpleEngine(client *FontClient) *SimpleEngine {
	return &SimpleEngine{client: client}
}

// Shape implements ShapingEngine.
func (e *SimpleEngine) Shape(run ShapingRun) []ShapedGlyph {
	if run.End <= run.Start {
		return nil
	}
	glyphs := make([]ShapedGlyph, run.End-run.Start)
	for i := range glyphs {
		glyphs[i] = ShapedGlyph{
			ID:      e.client.GetGlyphIndex(run.Font, run.Text[run.Start+CharacterIndex(i)]), //nolint:gosec // bounded by the run length
			Cluster: CharacterIndex(i),                                                    //nolint:gosec // bounded by the run length
		}
	}
	info := make([]GlyphInfo, len(glyphs))
	for i, g := range glyphs {
		info[i] = GlyphInfo{FontID: run.Font, Index: g.ID}
	}
	e.client.GetGlyphMetrics(info)
	for i := range glyphs {
		glyphs[i].Advance = info[i].Advance
	}
	return glyphs
}
