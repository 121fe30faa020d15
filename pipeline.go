package textmodel

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/textmodel/text"
)

// LayoutOptions selects the optional passes run after line layout.
type LayoutOptions struct {
	// Reorder repositions the glyphs of lines with right to left text in
	// visual order.
	Reorder bool
	// Align applies Alignment to every line.
	Align     bool
	Alignment text.HorizontalAlignment
}

// DefaultLayoutOptions reorders and aligns lines to the beginning.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{Reorder: true, Align: true, Alignment: text.AlignBegin}
}

// Pipeline turns text into a TextLayoutState. It owns one instance of every
// stage and shares the FontClient and MultilanguageSupport it was given.
//
// A Pipeline may be used by several goroutines, each with its own state.
type Pipeline struct {
	opts      pipelineOptions
	fonts     *text.FontClient
	multilang *text.MultilanguageSupport
	shaper    *text.Shaper
	metrics   *text.MetricsResolver
	layout    *text.LayoutEngine
	natural   *text.LayoutEngine
}

// NewPipeline creates a Pipeline. Without WithFontClient it creates a
// FontClient with the embedded Go fonts.
func NewPipeline(opts ...PipelineOption) (*Pipeline, error) {
	o := defaultPipelineOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fonts := o.fontClient
	if fonts == nil {
		var err error
		if fonts, err = text.NewFontClient(o.fontClientOpts...); err != nil {
			return nil, fmt.Errorf("textmodel: font client: %w", err)
		}
	}
	if o.dpiH != 0 && o.dpiV != 0 {
		fonts.SetDpi(o.dpiH, o.dpiV)
	}
	multilang := o.multilang
	if multilang == nil {
		multilang = text.NewMultilanguageSupport(fonts)
	}

	var shaperOpts []text.ShaperOption
	if o.simpleShaping {
		shaperOpts = append(shaperOpts, text.WithSimpleShaping())
	}
	for script, engine := range o.engines {
		shaperOpts = append(shaperOpts, text.WithEngine(script, engine))
	}
	if o.shapingCache != nil {
		shaperOpts = append(shaperOpts, text.WithShapingCache(o.shapingCache))
	}

	layout := text.NewLayoutEngine(fonts)
	layout.SetLayout(o.layout)
	layout.SetWrapMode(o.wrap)
	natural := text.NewLayoutEngine(fonts)
	natural.SetLayout(text.MultiLineBox)

	p := &Pipeline{
		opts:      o,
		fonts:     fonts,
		multilang: multilang,
		shaper:    text.NewShaper(fonts, shaperOpts...),
		metrics:   text.NewMetricsResolver(fonts),
		layout:    layout,
		natural:   natural,
	}
	Logger().Debug("textmodel: pipeline created",
		"layout", o.layout.String(), "wrap", o.wrap.String(), "simple", o.simpleShaping)
	return p, nil
}

var (
	defaultOnce     sync.Once
	defaultPipeline *Pipeline
	errDefault      error
)

// DefaultPipeline returns a Pipeline with default options, created on
// first use.
func DefaultPipeline() (*Pipeline, error) {
	defaultOnce.Do(func() {
		defaultPipeline, errDefault = NewPipeline()
	})
	return defaultPipeline, errDefault
}

// FontClient returns the FontClient the pipeline resolves fonts through.
func (p *Pipeline) FontClient() *text.FontClient { return p.fonts }

// MultilanguageSupport returns the script and font validator of the
// pipeline.
func (p *Pipeline) MultilanguageSupport() *text.MultilanguageSupport { return p.multilang }

// Shaper returns the shaper of the pipeline.
func (p *Pipeline) Shaper() *text.Shaper { return p.shaper }

// LayoutEngine returns the layout engine of the pipeline.
func (p *Pipeline) LayoutEngine() *text.LayoutEngine { return p.layout }

// CreateTextModel builds the model of s laid out in area.
//
// fontDescriptions override the FontClient's default description for
// ranges of characters. Decoding stops at the first malformed UTF-8
// sequence. Empty text gives an empty model.
func (p *Pipeline) CreateTextModel(
	s string,
	area text.Size,
	fontDescriptions []text.FontDescriptionRun,
	options LayoutOptions,
) (*TextLayoutState, error) {
	state := &TextLayoutState{}
	state.Logical.Text = text.Decode([]byte(p.normalize(s)))
	state.Logical.FontDescriptionRuns = fontDescriptions
	if err := p.build(state, 0, area, options); err != nil {
		return nil, err
	}
	return state, nil
}

// UpdateTextModel replaces numberOfCharactersToRemove characters at
// modifyIndex with insert and rebuilds the model from the start of the
// paragraph holding modifyIndex. fontDescriptions replace the description
// runs of the state and must cover the new text.
func (p *Pipeline) UpdateTextModel(
	state *TextLayoutState,
	modifyIndex text.CharacterIndex,
	numberOfCharactersToRemove text.Length,
	insert string,
	area text.Size,
	fontDescriptions []text.FontDescriptionRun,
	options LayoutOptions,
) error {
	if state == nil {
		return ErrNilState
	}
	n := state.NumberOfCharacters()
	if uint64(modifyIndex)+uint64(numberOfCharactersToRemove) > uint64(n) {
		return fmt.Errorf("%w: remove [%d, %d) from %d characters",
			ErrInvalidRange, modifyIndex, modifyIndex+numberOfCharactersToRemove, n)
	}

	from := paragraphStart(state.Logical.Text, modifyIndex)
	if area != state.Area {
		state.Visual.Lines = state.Visual.Lines[:0]
	}
	state.ClearModelData(from)

	inserted := text.Decode([]byte(p.normalize(insert)))
	old := state.Logical.Text
	updated := make([]rune, 0, len(old)-int(numberOfCharactersToRemove)+len(inserted))
	updated = append(updated, old[:modifyIndex]...)
	updated = append(updated, inserted...)
	updated = append(updated, old[modifyIndex+numberOfCharactersToRemove:]...)
	state.Logical.Text = updated
	state.Logical.FontDescriptionRuns = fontDescriptions

	Logger().Debug("textmodel: update",
		"index", modifyIndex, "removed", numberOfCharactersToRemove, "inserted", len(inserted), "from", from)
	return p.build(state, from, area, options)
}

// Relayout lays out the model of state again in area, keeping its glyphs.
func (p *Pipeline) Relayout(state *TextLayoutState, area text.Size, options LayoutOptions) error {
	if state == nil {
		return ErrNilState
	}
	state.Visual.Lines = state.Visual.Lines[:0]
	state.Logical.BidirectionalLineInfo = state.Logical.BidirectionalLineInfo[:0]
	return p.layoutStage(state, area, options)
}

// build runs every stage on the characters from from to the end of the
// text. Derived data before from must be valid.
func (p *Pipeline) build(state *TextLayoutState, from text.CharacterIndex, area text.Size, options LayoutOptions) error {
	l, v := &state.Logical, &state.Visual
	n := state.NumberOfCharacters()
	length := n - from

	l.LineBreakInfo = resize(l.LineBreakInfo, int(n))
	text.SetLineBreakInfo(l.Text, from, length, l.LineBreakInfo)
	if n == 0 {
		descriptions := l.FontDescriptionRuns
		*state = TextLayoutState{Area: area}
		state.Logical.FontDescriptionRuns = descriptions
		return nil
	}
	l.WordBreakInfo = resize(l.WordBreakInfo, int(n))
	text.SetWordBreakInfo(l.Text, from, length, l.WordBreakInfo)

	p.multilang.SetScripts(l.Text, from, length, &l.ScriptRuns)
	if err := p.multilang.ValidateFonts(l.Text, l.ScriptRuns, l.FontDescriptionRuns,
		p.fonts.DefaultDescription(), p.fonts.DefaultPointSize(), from, length, &l.FontRuns); err != nil {
		return fmt.Errorf("textmodel: fonts: %w", err)
	}

	text.SetBidirectionalInfo(l.Text, l.ScriptRuns, l.LineBreakInfo, from, length,
		&l.BidirectionalParagraphInfo, p.opts.matchLayoutDirection, p.opts.layoutDirection)

	var mirrored []rune
	if len(l.BidirectionalParagraphInfo) > 0 {
		text.GetCharactersDirection(l.BidirectionalParagraphInfo, n, from, length, &l.CharacterDirections)
		if !text.GetMirroredText(l.Text, l.CharacterDirections, l.BidirectionalParagraphInfo, from, length, &mirrored) {
			mirrored = nil
		}
	} else {
		l.CharacterDirections = l.CharacterDirections[:0]
	}

	startGlyph := text.GlyphIndex(len(v.Glyphs)) //nolint:gosec // glyph count fits in uint32
	var shaped text.ShapeResult
	err := p.shaper.Shape(&text.ShapeInput{
		Text:                l.Text,
		Mirrored:            mirrored,
		CharacterDirections: l.CharacterDirections,
		LineBreakInfo:       l.LineBreakInfo,
		Scripts:             l.ScriptRuns,
		Fonts:               l.FontRuns,
	}, from, startGlyph, length, &shaped)
	if err != nil {
		return fmt.Errorf("textmodel: shape: %w", err)
	}
	v.Glyphs = append(v.Glyphs, shaped.Glyphs...)
	v.GlyphsToCharacters = append(v.GlyphsToCharacters, shaped.GlyphsToCharacters...)
	v.CharactersPerGlyph = append(v.CharactersPerGlyph, shaped.CharactersPerGlyph...)

	state.CreateGlyphsPerCharacterTable(from, startGlyph, length)
	state.CreateCharacterToGlyphTable(from, startGlyph, length)

	newParagraphs := make([]text.GlyphIndex, len(shaped.NewParagraphGlyphs))
	for i, g := range shaped.NewParagraphGlyphs {
		newParagraphs[i] = g - startGlyph
	}
	p.metrics.GetGlyphsMetrics(v.Glyphs[startGlyph:], newParagraphs)

	return p.layoutStage(state, area, options)
}

// layoutStage lays out the glyphs after the last kept line, then reorders
// and aligns the new lines.
func (p *Pipeline) layoutStage(state *TextLayoutState, area text.Size, options LayoutOptions) error {
	l, v := &state.Logical, &state.Visual
	n := state.NumberOfCharacters()
	state.Area = area

	var startGlyph text.GlyphIndex
	if k := len(v.Lines); k > 0 {
		startGlyph = v.Lines[k-1].GlyphIndex + v.Lines[k-1].NumberOfGlyphs
	}
	layoutFrom := linesEnd(v.Lines)
	total := state.NumberOfGlyphs()

	params := &text.Parameters{
		BoundingBox:            area,
		Text:                   l.Text,
		LineBreakInfo:          l.LineBreakInfo,
		WordBreakInfo:          l.WordBreakInfo,
		CharacterDirections:    l.CharacterDirections,
		Glyphs:                 v.Glyphs,
		GlyphsToCharacters:     v.GlyphsToCharacters,
		CharactersPerGlyph:     v.CharactersPerGlyph,
		CharactersToGlyph:      v.CharactersToGlyph,
		GlyphsPerCharacter:     v.GlyphsPerCharacter,
		StartGlyphIndex:        startGlyph,
		NumberOfGlyphs:         total - startGlyph,
		TotalNumberOfGlyphs:    total,
		StartLineIndex:         uint32(len(v.Lines)), //nolint:gosec // line count fits in uint32
		EstimatedNumberOfLines: estimateLines(l.LineBreakInfo[layoutFrom:]),
		IsLastNewParagraph:     n > 0 && text.IsNewParagraph(l.Text[n-1]),
		LineSpacing:            p.opts.lineSpacing,
	}
	p.layout.LayoutText(params, &v.GlyphPositions, &v.Lines, &v.LayoutSize)
	v.NaturalSize = p.naturalSize(params, v.LayoutSize)

	if len(l.BidirectionalParagraphInfo) > 0 {
		if err := text.ReorderLines(l.BidirectionalParagraphInfo, layoutFrom, n-layoutFrom,
			v.Lines, &l.BidirectionalLineInfo); err != nil {
			return fmt.Errorf("textmodel: reorder: %w", err)
		}
		if options.Reorder {
			params.LineBidirectionalInfo = l.BidirectionalLineInfo
			p.layout.ReLayoutRightToLeftLines(params, layoutFrom, n-layoutFrom, &v.GlyphPositions)
		}
	}

	if options.Align {
		p.layout.Align(area, layoutFrom, n-layoutFrom, options.Alignment, v.Lines)
	}

	Logger().Debug("textmodel: laid out",
		"characters", n, "glyphs", total, "lines", len(v.Lines),
		"width", v.LayoutSize.Width, "height", v.LayoutSize.Height)
	return nil
}

// naturalSize lays the whole text out without a width limit. A single
// line box already ignores the width.
func (p *Pipeline) naturalSize(params *text.Parameters, laidOut text.Size) text.Size {
	if p.layout.Layout() == text.SingleLineBox {
		return laidOut
	}
	unbounded := *params
	unbounded.BoundingBox.Width = math32.MaxFloat32
	unbounded.StartGlyphIndex, unbounded.StartLineIndex = 0, 0
	unbounded.NumberOfGlyphs = unbounded.TotalNumberOfGlyphs
	var (
		positions []text.Vector2
		lines     []text.LineRun
		size      text.Size
	)
	p.natural.LayoutText(&unbounded, &positions, &lines, &size)
	return size
}

func (p *Pipeline) normalize(s string) string {
	if p.opts.normalize {
		return norm.NFC.String(s)
	}
	return s
}

// paragraphStart returns the index of the first character of the paragraph
// holding index.
func paragraphStart(runes []rune, index text.CharacterIndex) text.CharacterIndex {
	for i := index; i > 0; i-- {
		if text.IsNewParagraph(runes[i-1]) {
			return i
		}
	}
	return 0
}

// estimateLines counts the mandatory breaks in info.
func estimateLines(info []text.LineBreakInfo) uint32 {
	lines := uint32(1)
	for _, b := range info {
		if b == text.LineMustBreak {
			lines++
		}
	}
	return lines
}
