package text

import (
	"fmt"

	"github.com/gogpu/textmodel/text/cache"
)

// ShapedGlyph is a glyph produced by a ShapingEngine.
type ShapedGlyph struct {
	// ID is the glyph index in the font.
	ID uint32

	// Cluster is the offset, relative to the start of the shaped run, of
	// the first character the glyph belongs to.
	Cluster CharacterIndex

	// Advance is the horizontal pen advance in pixels.
	Advance float32

	// XOffset and YOffset displace the glyph from the pen position.
	XOffset, YOffset float32
}

// ShapingRun is one run handed to a ShapingEngine: the characters
// Text[Start:End], all in one script, font, direction and paragraph.
type ShapingRun struct {
	Text       []rune
	Start, End CharacterIndex
	Script     Script
	Direction  Direction
	Font       FontID
}

// ShapingEngine converts a run of characters to glyphs.
//
// The glyphs are returned in logical order with non-decreasing clusters,
// whatever the run's direction.
type ShapingEngine interface {
	Shape(run ShapingRun) []ShapedGlyph
}

// mirroringEngine is implemented by engines that apply Bidi_Mirroring_Glyph
// themselves to right to left runs. The Shaper gives those engines the
// unmirrored text.
type mirroringEngine interface {
	MirrorsRightToLeft() bool
}

// cacheVariant is implemented by engines whose output depends on settings
// beyond the run, such as a language. The variant is part of the shaping
// cache key.
type cacheVariant interface {
	CacheVariant() string
}

// engineName names engine in shaping cache keys.
func engineName(engine ShapingEngine) string {
	name := fmt.Sprintf("%T", engine)
	if v, ok := engine.(cacheVariant); ok {
		name += "/" + v.CacheVariant()
	}
	return name
}

// ShapeInput holds the logical model a Shaper reads.
type ShapeInput struct {
	Text []rune

	// Mirrored is Text with right to left characters mirrored. It is
	// optional.
	Mirrored []rune

	// CharacterDirections is optional; empty means all left to right.
	CharacterDirections []Direction

	LineBreakInfo []LineBreakInfo
	Scripts       []ScriptRun
	Fonts         []FontRun
}

// ShapeResult holds the glyphs of a shaped range and their mapping back to
// characters.
type ShapeResult struct {
	Glyphs []GlyphInfo

	// GlyphsToCharacters holds, per glyph, the index of the first
	// character of its cluster.
	GlyphsToCharacters []CharacterIndex

	// CharactersPerGlyph holds, per glyph, the number of characters it
	// represents. The first glyph of a cluster carries the whole cluster;
	// the others carry zero.
	CharactersPerGlyph []Length

	// NewParagraphGlyphs holds the indices of glyphs that represent a
	// paragraph separator.
	NewParagraphGlyphs []GlyphIndex
}

// Reset empties r, keeping its storage.
func (r *ShapeResult) Reset() {
	r.Glyphs = r.Glyphs[:0]
	r.GlyphsToCharacters = r.GlyphsToCharacters[:0]
	r.CharactersPerGlyph = r.CharactersPerGlyph[:0]
	r.NewParagraphGlyphs = r.NewParagraphGlyphs[:0]
}

// ShaperOption configures a Shaper.
type ShaperOption func(*Shaper)

// WithEngine makes engine shape the runs of script.
func WithEngine(script Script, engine ShapingEngine) ShaperOption {
	return func(s *Shaper) {
		s.engines[script] = engine
	}
}

// WithDefaultEngine replaces the engine used for scripts without an entry.
func WithDefaultEngine(engine ShapingEngine) ShaperOption {
	return func(s *Shaper) {
		if engine != nil {
			s.fallback = engine
		}
	}
}

// WithSimpleShaping shapes every script that needs no contextual shaping
// with a SimpleEngine.
func WithSimpleShaping() ShaperOption {
	return func(s *Shaper) {
		simple := NewSimpleEngine(s.client)
		for script := ScriptCommon; script < scriptCount; script++ {
			if !script.RequiresComplexShaping() {
				s.engines[script] = simple
			}
		}
	}
}

// WithShapingCache memoizes engine output in c.
func WithShapingCache(c *cache.ShapingCache[[]ShapedGlyph]) ShaperOption {
	return func(s *Shaper) {
		s.cache = c
	}
}

// Shaper splits text into runs of one script, font, direction and
// paragraph and dispatches each run to the engine registered for its
// script.
type Shaper struct {
	client   *FontClient
	engines  map[Script]ShapingEngine
	fallback ShapingEngine
	cache    *cache.ShapingCache[[]ShapedGlyph]
}

// NewShaper creates a Shaper whose default engine is a HarfbuzzEngine.
func NewShaper(client *FontClient, opts ...ShaperOption) *Shaper {
	s := &Shaper{
		client:  client,
		engines: make(map[Script]ShapingEngine),
	}
	s.fallback = NewHarfbuzzEngine(client)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the engine used for script.
func (s *Shaper) Engine(script Script) ShapingEngine {
	if e, ok := s.engines[script]; ok {
		return e
	}
	return s.fallback
}

// Shape shapes the characters [start, start+length) of in and appends the
// glyphs to out. Glyph indices stored in out.NewParagraphGlyphs start at
// startGlyph.
func (s *Shaper) Shape(in *ShapeInput, start CharacterIndex, startGlyph GlyphIndex, length Length, out *ShapeResult) error {
	if length == 0 {
		return nil
	}
	if err := checkRange("shape", start, length, len(in.Text)); err != nil {
		return err
	}

	end := start + length
	scriptIndex := runIndexAt(in.Scripts, start)
	fontIndex := fontRunIndexAt(in.Fonts, start)
	runs := 0

	for runStart := start; runStart < end; {
		for scriptIndex+1 < len(in.Scripts) && in.Scripts[scriptIndex].End() <= runStart {
			scriptIndex++
		}
		for fontIndex+1 < len(in.Fonts) && in.Fonts[fontIndex].End() <= runStart {
			fontIndex++
		}

		runEnd := end
		script := ScriptLatin
		if scriptIndex < len(in.Scripts) {
			script = in.Scripts[scriptIndex].Script
			if e := in.Scripts[scriptIndex].End(); e > runStart && e < runEnd {
				runEnd = e
			}
		}
		var fontID FontID
		if fontIndex < len(in.Fonts) {
			fontID = in.Fonts[fontIndex].FontID
			if e := in.Fonts[fontIndex].End(); e > runStart && e < runEnd {
				runEnd = e
			}
		}
		dir := characterDirection(in.CharacterDirections, runStart)
		for i := runStart; i < runEnd; i++ {
			if i > runStart && characterDirection(in.CharacterDirections, i) != dir {
				runEnd = i
				break
			}
			if in.LineBreakInfo[i] == LineMustBreak && IsNewParagraph(in.Text[i]) {
				runEnd = i + 1
				break
			}
		}

		s.shapeRun(in, ShapingRun{
			Start:     runStart,
			End:       runEnd,
			Script:    script,
			Direction: dir,
			Font:      fontID,
		}, startGlyph, out)
		runs++
		runStart = runEnd
	}

	logger().Debug("text: shaped",
		"start", start, "length", length, "runs", runs, "glyphs", len(out.Glyphs))
	return nil
}

func (s *Shaper) shapeRun(in *ShapeInput, run ShapingRun, startGlyph GlyphIndex, out *ShapeResult) {
	engine := s.Engine(run.Script)

	run.Text = in.Text
	if in.Mirrored != nil {
		mirroring, ok := engine.(mirroringEngine)
		if run.Direction == LeftToRight || !ok || !mirroring.MirrorsRightToLeft() {
			run.Text = in.Mirrored
		}
	}

	var glyphs []ShapedGlyph
	if s.cache != nil {
		chars := run.Text[run.Start:run.End]
		key := cache.NewShapingKey(chars, uint32(run.Font), s.client.PixelSize(run.Font),
			uint8(run.Script), run.Direction == RightToLeft).WithEngine(engineName(engine))
		glyphs = s.cache.GetOrCreate(key, func() []ShapedGlyph {
			return engine.Shape(run)
		})
	} else {
		glyphs = engine.Shape(run)
	}

	appendShapedRun(out, in.Text, run, glyphs, startGlyph)
}

// appendShapedRun converts the glyphs of run to the visual model.
func appendShapedRun(out *ShapeResult, text []rune, run ShapingRun, glyphs []ShapedGlyph, startGlyph GlyphIndex) {
	runLength := run.End - run.Start
	if len(glyphs) == 0 {
		// Every character needs a glyph; .notdef stands in.
		glyphs = make([]ShapedGlyph, runLength)
		for i := range glyphs {
			glyphs[i].Cluster = CharacterIndex(i)
		}
	}

	// Clusters must start at the run start and never decrease.
	clusters := make([]CharacterIndex, len(glyphs))
	var prev CharacterIndex
	for i, g := range glyphs {
		c := min(g.Cluster, runLength-1)
		if i == 0 {
			c = 0
		}
		c = max(c, prev)
		clusters[i] = c
		prev = c
	}

	first := len(out.Glyphs)
	for i, g := range glyphs {
		out.Glyphs = append(out.Glyphs, GlyphInfo{
			FontID:   run.Font,
			Index:    g.ID,
			Advance:  g.Advance,
			XBearing: g.XOffset,
			YBearing: g.YOffset,
		})
		out.GlyphsToCharacters = append(out.GlyphsToCharacters, run.Start+clusters[i])

		var count Length
		if i == 0 || clusters[i] != clusters[i-1] {
			next := runLength
			for j := i + 1; j < len(clusters); j++ {
				if clusters[j] != clusters[i] {
					next = clusters[j]
					break
				}
			}
			count = next - clusters[i]
		}
		out.CharactersPerGlyph = append(out.CharactersPerGlyph, count)

		if count > 0 {
			from := run.Start + clusters[i]
			for c := from; c < from+count; c++ {
				if IsNewParagraph(text[c]) {
					out.NewParagraphGlyphs = append(out.NewParagraphGlyphs,
						startGlyph+GlyphIndex(first+i)) //nolint:gosec // glyph counts fit in uint32
					break
				}
			}
		}
	}
}

func characterDirection(directions []Direction, index CharacterIndex) Direction {
	if int(index) < len(directions) {
		return directions[index]
	}
	return LeftToRight
}

func runIndexAt(runs []ScriptRun, index CharacterIndex) int {
	for i := range runs {
		if runs[i].End() > index {
			return i
		}
	}
	return max(len(runs)-1, 0)
}

func fontRunIndexAt(runs []FontRun, index CharacterIndex) int {
	for i := range runs {
		if runs[i].End() > index {
			return i
		}
	}
	return max(len(runs)-1, 0)
}
