package text

// MetricsResolver fills glyph metrics from a FontClient.
type MetricsResolver struct {
	client *FontClient
}

// NewMetricsResolver creates a MetricsResolver over client.
func NewMetricsResolver(client *FontClient) *MetricsResolver {
	return &MetricsResolver{client: client}
}

// GetGlyphsMetrics fills Width, Height, XBearing and YBearing of glyphs
// from their fonts, in batches of consecutive glyphs sharing a font.
//
// The shaper's Advance is kept, and the offsets the shaper left in
// XBearing and YBearing are added to the font bearings. Glyphs listed in
// newParagraphGlyphs, indices into glyphs, get zero Width, Advance and
// XBearing.
func (m *MetricsResolver) GetGlyphsMetrics(glyphs []GlyphInfo, newParagraphGlyphs []GlyphIndex) {
	for start := 0; start < len(glyphs); {
		end := start + 1
		for end < len(glyphs) && glyphs[end].FontID == glyphs[start].FontID {
			end++
		}
		m.resolveBatch(glyphs[start:end])
		start = end
	}

	for _, index := range newParagraphGlyphs {
		if int(index) >= len(glyphs) {
			continue
		}
		g := &glyphs[index]
		g.Width = 0
		g.Advance = 0
		g.XBearing = 0
	}
}

func (m *MetricsResolver) resolveBatch(batch []GlyphInfo) {
	type shaped struct{ advance, xOffset, yOffset float32 }
	saved := make([]shaped, len(batch))
	for i, g := range batch {
		saved[i] = shaped{g.Advance, g.XBearing, g.YBearing}
	}
	if !m.client.GetGlyphMetrics(batch) {
		logger().Warn("text: glyph metrics unavailable", "font", batch[0].FontID)
	}
	for i := range batch {
		g := &batch[i]
		g.Advance = saved[i].advance
		g.XBearing += saved[i].xOffset
		g.YBearing += saved[i].yOffset
	}
}
