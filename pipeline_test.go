package textmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/textmodel/text"
)

var wideArea = text.Size{Width: 10000, Height: 1000}

func newTestPipeline(t *testing.T, opts ...PipelineOption) *Pipeline {
	t.Helper()
	p, err := NewPipeline(opts...)
	require.NoError(t, err)
	return p
}

func createModel(t *testing.T, p *Pipeline, s string, area text.Size) *TextLayoutState {
	t.Helper()
	state, err := p.CreateTextModel(s, area, nil, DefaultLayoutOptions())
	require.NoError(t, err)
	require.NoError(t, state.Validate())
	return state
}

func TestCreateTextModelPartitions(t *testing.T) {
	p := newTestPipeline(t)
	inputs := []string{
		"Hello World",
		"Hello, Мир! Γειά σου",
		"one\ntwo\n\nthree",
		"abc שלום def",
		"مرحبا بالعالم",
		"áë",
	}
	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			state := createModel(t, p, s, wideArea)
			n := state.NumberOfCharacters()

			var next text.CharacterIndex
			for _, run := range state.Logical.ScriptRuns {
				assert.Equal(t, next, run.CharacterIndex)
				assert.NotZero(t, run.NumberOfCharacters)
				next = run.End()
			}
			assert.Equal(t, n, next, "script runs cover the text")

			next = 0
			for _, run := range state.Logical.FontRuns {
				assert.Equal(t, next, run.CharacterIndex)
				assert.NotZero(t, run.FontID)
				next = run.End()
			}
			assert.Equal(t, n, next, "font runs cover the text")
		})
	}
}

func TestCreateTextModelFontsSupportCharacters(t *testing.T) {
	p := newTestPipeline(t)
	state := createModel(t, p, "Hello, Мир! Γειά σου", wideArea)

	for _, run := range state.Logical.FontRuns {
		for c := run.CharacterIndex; c < run.End(); c++ {
			r := state.Logical.Text[c]
			assert.True(t, p.FontClient().IsCharacterSupported(run.FontID, r),
				"font %d does not support %q", run.FontID, r)
		}
	}
}

func TestCreateTextModelGlyphCharacterMaps(t *testing.T) {
	p := newTestPipeline(t)
	state := createModel(t, p, "office ﬃ Hello\nשלום (abc)", wideArea)
	v := &state.Visual

	var sum text.Length
	for _, count := range v.CharactersPerGlyph {
		sum += count
	}
	assert.Equal(t, state.NumberOfCharacters(), sum)

	for c := text.CharacterIndex(0); c < state.NumberOfCharacters(); c++ {
		g := v.CharactersToGlyph[c]
		first := v.GlyphsToCharacters[g]
		assert.GreaterOrEqual(t, c, first)
		assert.Less(t, c, first+v.CharactersPerGlyph[g])
	}

	var glyphs text.Length
	for _, count := range v.GlyphsPerCharacter {
		glyphs += count
	}
	assert.Equal(t, state.NumberOfGlyphs(), glyphs)
}

func TestCreateTextModelZeroesParagraphSeparators(t *testing.T) {
	p := newTestPipeline(t, WithLayout(text.MultiLineBox))
	state := createModel(t, p, "Hello\nWorld\u2029!", wideArea)

	found := 0
	for c, r := range state.Logical.Text {
		if !text.IsNewParagraph(r) {
			continue
		}
		found++
		g := state.Visual.CharactersToGlyph[c]
		glyph := state.Visual.Glyphs[g]
		assert.Zero(t, glyph.Width, "width of %U", r)
		assert.Zero(t, glyph.Advance, "advance of %U", r)
		assert.Zero(t, glyph.XBearing, "bearing of %U", r)
	}
	assert.Equal(t, 2, found)
	assert.Len(t, state.Visual.Lines, 3)
}

func TestAlignIsIdempotent(t *testing.T) {
	p := newTestPipeline(t, WithLayout(text.MultiLineBox))
	area := text.Size{Width: 300, Height: 100}
	state, err := p.CreateTextModel("Hello\nWide World", area, nil, LayoutOptions{
		Align:     true,
		Alignment: text.AlignCenter,
	})
	require.NoError(t, err)
	once := state.AlignedGlyphPositions()

	n := state.NumberOfCharacters()
	p.LayoutEngine().Align(area, 0, n, text.AlignCenter, state.Visual.Lines)
	p.LayoutEngine().Align(area, 0, n, text.AlignCenter, state.Visual.Lines)
	assert.Equal(t, once, state.AlignedGlyphPositions())

	for _, line := range state.Visual.Lines {
		want := float32(int((area.Width - (line.Width - line.ExtraLength)) / 2))
		assert.InDelta(t, want, line.AlignmentOffset, 1e-3)
	}
}

func TestAlignEnd(t *testing.T) {
	p := newTestPipeline(t)
	area := text.Size{Width: 500, Height: 50}
	state, err := p.CreateTextModel("Hello", area, nil, LayoutOptions{
		Align:     true,
		Alignment: text.AlignEnd,
	})
	require.NoError(t, err)
	require.Len(t, state.Visual.Lines, 1)
	line := state.Visual.Lines[0]
	assert.InDelta(t, area.Width-line.Width, line.AlignmentOffset, 1e-3)
	assert.Greater(t, state.AlignedGlyphPositions()[0].X, state.Visual.GlyphPositions[0].X)
}

func TestBidiDirectionSymmetry(t *testing.T) {
	p := newTestPipeline(t)

	ltr := createModel(t, p, "Hello World 123", wideArea)
	assert.Empty(t, ltr.Logical.BidirectionalParagraphInfo)
	assert.Empty(t, ltr.Logical.CharacterDirections)
	assert.Empty(t, ltr.Logical.BidirectionalLineInfo)

	rtl := createModel(t, p, "שלום", wideArea)
	require.Len(t, rtl.Logical.CharacterDirections, 4)
	for i, dir := range rtl.Logical.CharacterDirections {
		assert.Equal(t, text.RightToLeft, dir, "character %d", i)
	}
	require.Len(t, rtl.Logical.BidirectionalParagraphInfo, 1)
	assert.Equal(t, text.RightToLeft, rtl.Logical.BidirectionalParagraphInfo[0].Direction)
}

func TestReorderPositionsRightToLeftRun(t *testing.T) {
	p := newTestPipeline(t)
	state := createModel(t, p, "abc שלום", wideArea)

	require.Len(t, state.Logical.BidirectionalLineInfo, 1)
	info := state.Logical.BidirectionalLineInfo[0]
	assert.False(t, info.IsIdentity)
	assert.Equal(t, []text.CharacterIndex{0, 1, 2, 3, 7, 6, 5, 4}, info.VisualToLogicalMap)

	pos := state.Visual.GlyphPositions
	first := state.Visual.CharactersToGlyph[4]
	last := state.Visual.CharactersToGlyph[7]
	assert.Less(t, pos[last].X, pos[first].X, "last Hebrew letter is drawn left of the first")
	assert.Less(t, pos[state.Visual.CharactersToGlyph[2]].X, pos[last].X)
}

func TestReorderDisabledKeepsLogicalPositions(t *testing.T) {
	p := newTestPipeline(t)
	state, err := p.CreateTextModel("abc שלום", wideArea, nil, LayoutOptions{})
	require.NoError(t, err)

	// Line info is still computed; only positions stay logical.
	require.Len(t, state.Logical.BidirectionalLineInfo, 1)
	pos := state.Visual.GlyphPositions
	assert.Less(t, pos[state.Visual.CharactersToGlyph[4]].X, pos[state.Visual.CharactersToGlyph[7]].X)
}

func TestHelloWorldWrapping(t *testing.T) {
	p := newTestPipeline(t, WithLayout(text.MultiLineBox))

	wide := createModel(t, p, "Hello World", wideArea)
	require.Len(t, wide.Visual.Lines, 1)
	natural := wide.Visual.LayoutSize.Width
	assert.InDelta(t, natural, wide.Visual.NaturalSize.Width, 1e-3)

	narrow := createModel(t, p, "Hello World", text.Size{Width: natural * 0.75, Height: 100})
	require.Greater(t, len(narrow.Visual.Lines), 1)

	var glyphs text.Length
	for _, line := range narrow.Visual.Lines {
		glyphs += line.NumberOfGlyphs
	}
	assert.Equal(t, narrow.NumberOfGlyphs(), glyphs)

	assert.Equal(t, "Hello ", narrow.LineText(0))
	assert.Equal(t, "World", narrow.LineText(1))
	assert.Positive(t, narrow.Visual.Lines[0].ExtraLength)
	assert.InDelta(t, natural, narrow.Visual.NaturalSize.Width, 1e-3)
	assert.Less(t, narrow.Visual.LayoutSize.Width, natural)
	assert.Greater(t, narrow.Visual.GlyphPositions[6].Y, narrow.Visual.GlyphPositions[0].Y)
}

func TestWrapCharacter(t *testing.T) {
	p := newTestPipeline(t, WithLayout(text.MultiLineBox), WithWrapMode(text.WrapCharacter))
	wide := createModel(t, p, "Helloworld", wideArea)
	natural := wide.Visual.LayoutSize.Width

	narrow := createModel(t, p, "Helloworld", text.Size{Width: natural / 2, Height: 100})
	require.Greater(t, len(narrow.Visual.Lines), 1)
	for _, line := range narrow.Visual.Lines {
		assert.LessOrEqual(t, line.Width-line.ExtraLength, natural/2+1e-3)
	}
}

func TestEmptyInput(t *testing.T) {
	p := newTestPipeline(t)
	state, err := p.CreateTextModel("", wideArea, nil, DefaultLayoutOptions())
	require.NoError(t, err)

	assert.Zero(t, state.NumberOfCharacters())
	assert.Zero(t, state.NumberOfGlyphs())
	assert.Empty(t, state.Visual.Lines)
	assert.Equal(t, text.Size{}, state.Visual.LayoutSize)
	assert.Empty(t, state.Logical.ScriptRuns)
	assert.Empty(t, state.Logical.FontRuns)
	assert.Empty(t, state.Logical.BidirectionalParagraphInfo)
	assert.NoError(t, state.Validate())
}

func TestMalformedUTF8(t *testing.T) {
	p := newTestPipeline(t)
	state := createModel(t, p, "ab\xffcd", wideArea)
	assert.Equal(t, []rune("ab"), state.Logical.Text)
}

func TestFontDescriptionRuns(t *testing.T) {
	p := newTestPipeline(t)
	bold := text.FontDescriptionRun{
		CharacterRun:  text.CharacterRun{CharacterIndex: 6, NumberOfCharacters: 5},
		Description:   text.FontDescription{Weight: text.WeightBold},
		WeightDefined: true,
	}
	state, err := p.CreateTextModel("Hello World", wideArea, []text.FontDescriptionRun{bold}, DefaultLayoutOptions())
	require.NoError(t, err)
	require.NoError(t, state.Validate())

	require.Len(t, state.Logical.FontRuns, 2)
	regular, boldRun := state.Logical.FontRuns[0], state.Logical.FontRuns[1]
	assert.Equal(t, text.CharacterIndex(6), boldRun.CharacterIndex)
	assert.NotEqual(t, regular.FontID, boldRun.FontID)
	assert.Equal(t, text.WeightBold, p.FontClient().Source(boldRun.FontID).Style().Weight)
}

// modelsEqual compares everything but the transient buffers of two models.
func modelsEqual(t *testing.T, want, got *TextLayoutState) {
	t.Helper()
	assert.Equal(t, want.Logical.Text, got.Logical.Text)
	assert.Equal(t, want.Logical.LineBreakInfo, got.Logical.LineBreakInfo)
	assert.Equal(t, want.Logical.WordBreakInfo, got.Logical.WordBreakInfo)
	assert.Equal(t, want.Logical.ScriptRuns, got.Logical.ScriptRuns)
	assert.Equal(t, want.Logical.FontRuns, got.Logical.FontRuns)
	assert.Equal(t, len(want.Logical.BidirectionalParagraphInfo), len(got.Logical.BidirectionalParagraphInfo))
	assert.Equal(t, len(want.Logical.CharacterDirections), len(got.Logical.CharacterDirections))
	assert.Equal(t, len(want.Logical.BidirectionalLineInfo), len(got.Logical.BidirectionalLineInfo))
	assert.Equal(t, want.Visual.Glyphs, got.Visual.Glyphs)
	assert.Equal(t, want.Visual.GlyphsToCharacters, got.Visual.GlyphsToCharacters)
	assert.Equal(t, want.Visual.CharactersToGlyph, got.Visual.CharactersToGlyph)
	assert.Equal(t, want.Visual.CharactersPerGlyph, got.Visual.CharactersPerGlyph)
	assert.Equal(t, want.Visual.GlyphsPerCharacter, got.Visual.GlyphsPerCharacter)
	assert.Equal(t, want.Visual.GlyphPositions, got.Visual.GlyphPositions)
	assert.Equal(t, want.Visual.Lines, got.Visual.Lines)
	assert.Equal(t, want.Visual.LayoutSize, got.Visual.LayoutSize)
}

func TestUpdateTextModel(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		index   text.CharacterIndex
		remove  text.Length
		insert  string
		want    string
	}{
		{"replace second paragraph", "Hello\nWorld", 6, 5, "There", "Hello\nThere"},
		{"append", "Hello", 5, 0, " World", "Hello World"},
		{"insert paragraph", "ab", 1, 0, "\n", "a\nb"},
		{"remove separator", "ab\ncd", 2, 1, "", "abcd"},
		{"remove last paragraph", "ab\ncd", 3, 2, "", "ab\n"},
		{"script run split mid range", "abc ЖЖЖ def\nxyz", 4, 3, "QQQ", "abc QQQ def\nxyz"},
		{"introduce script run", "one\ntwo three", 8, 0, "Мир ", "one\ntwo Мир three"},
		{"introduce right to left", "one\ntwo", 4, 3, "שלום", "one\nשלום"},
		{"remove right to left", "abc\nשלום (x)", 4, 8, "plain", "abc\nplain"},
		{"delete everything", "Hello", 0, 5, "", ""},
	}
	for _, mode := range []text.LayoutMode{text.SingleLineBox, text.MultiLineBox} {
		p := newTestPipeline(t, WithLayout(mode))
		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				state := createModel(t, p, tt.initial, wideArea)
				err := p.UpdateTextModel(state, tt.index, tt.remove, tt.insert, wideArea, nil, DefaultLayoutOptions())
				require.NoError(t, err)
				require.NoError(t, state.Validate())

				want := createModel(t, p, tt.want, wideArea)
				modelsEqual(t, want, state)
			})
		}
	}
}

func TestUpdateTextModelNewArea(t *testing.T) {
	p := newTestPipeline(t, WithLayout(text.MultiLineBox))
	state := createModel(t, p, "Hello World\nagain", wideArea)
	narrow := text.Size{Width: state.Visual.Lines[0].Width * 0.75, Height: 100}

	require.NoError(t, p.UpdateTextModel(state, 12, 5, "later", narrow, nil, DefaultLayoutOptions()))
	want := createModel(t, p, "Hello World\nlater", narrow)
	modelsEqual(t, want, state)
	assert.Equal(t, narrow, state.Area)
}

func TestUpdateTextModelErrors(t *testing.T) {
	p := newTestPipeline(t)
	state := createModel(t, p, "Hello", wideArea)

	err := p.UpdateTextModel(state, 3, 5, "", wideArea, nil, DefaultLayoutOptions())
	require.ErrorIs(t, err, ErrInvalidRange)

	err = p.UpdateTextModel(state, 6, 0, "x", wideArea, nil, DefaultLayoutOptions())
	require.ErrorIs(t, err, ErrInvalidRange)

	err = p.UpdateTextModel(nil, 0, 0, "x", wideArea, nil, DefaultLayoutOptions())
	require.ErrorIs(t, err, ErrNilState)

	assert.Equal(t, "Hello", string(state.Logical.Text))
}

func TestRelayout(t *testing.T) {
	p := newTestPipeline(t, WithLayout(text.MultiLineBox))
	state := createModel(t, p, "Hello World", wideArea)
	require.Len(t, state.Visual.Lines, 1)

	narrow := text.Size{Width: state.Visual.LayoutSize.Width * 0.75, Height: 100}
	require.NoError(t, p.Relayout(state, narrow, DefaultLayoutOptions()))
	modelsEqual(t, createModel(t, p, "Hello World", narrow), state)

	require.ErrorIs(t, p.Relayout(nil, narrow, DefaultLayoutOptions()), ErrNilState)
}

func TestDefaultPipeline(t *testing.T) {
	p1, err := DefaultPipeline()
	require.NoError(t, err)
	p2, err := DefaultPipeline()
	require.NoError(t, err)
	assert.Same(t, p1, p2)
	assert.Equal(t, text.SingleLineBox, p1.LayoutEngine().Layout())
}
