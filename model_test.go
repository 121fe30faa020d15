package textmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/textmodel/text"
)

// ligatureState builds a state by hand: "ffi" shaped as one ligature glyph
// followed by "x" shaped as a base glyph and a mark.
func ligatureState() *TextLayoutState {
	s := &TextLayoutState{}
	s.Logical.Text = []rune("ffix")
	s.Visual.Glyphs = make([]text.GlyphInfo, 3)
	s.Visual.GlyphsToCharacters = []text.CharacterIndex{0, 3, 3}
	s.Visual.CharactersPerGlyph = []text.Length{3, 1, 0}
	return s
}

func TestCreateTables(t *testing.T) {
	s := ligatureState()
	s.CreateCharacterToGlyphTable(0, 0, 4)
	s.CreateGlyphsPerCharacterTable(0, 0, 4)

	assert.Equal(t, []text.GlyphIndex{0, 0, 0, 1}, s.Visual.CharactersToGlyph)
	assert.Equal(t, []text.Length{1, 0, 0, 2}, s.Visual.GlyphsPerCharacter)
}

func TestCreateTablesTail(t *testing.T) {
	s := ligatureState()
	s.CreateCharacterToGlyphTable(0, 0, 4)
	s.CreateGlyphsPerCharacterTable(0, 0, 4)

	// Rebuilding only the tail leaves the head untouched.
	s.Visual.CharactersToGlyph[0] = 7
	s.CreateCharacterToGlyphTable(3, 1, 1)
	s.CreateGlyphsPerCharacterTable(3, 1, 1)
	assert.Equal(t, []text.GlyphIndex{7, 0, 0, 1}, s.Visual.CharactersToGlyph)
	assert.Equal(t, []text.Length{1, 0, 0, 2}, s.Visual.GlyphsPerCharacter)
}

func TestValidate(t *testing.T) {
	valid := func() *TextLayoutState {
		s := ligatureState()
		s.CreateCharacterToGlyphTable(0, 0, 4)
		s.CreateGlyphsPerCharacterTable(0, 0, 4)
		whole := text.CharacterRun{NumberOfCharacters: 4}
		s.Logical.ScriptRuns = []text.ScriptRun{{CharacterRun: whole, Script: text.ScriptLatin}}
		s.Logical.FontRuns = []text.FontRun{{CharacterRun: whole, FontID: 1}}
		s.Visual.Lines = []text.LineRun{{GlyphRun: text.GlyphRun{NumberOfGlyphs: 3}, CharacterRun: whole}}
		return s
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(s *TextLayoutState)
	}{
		{"script gap", func(s *TextLayoutState) {
			s.Logical.ScriptRuns[0].NumberOfCharacters = 3
		}},
		{"font overlap", func(s *TextLayoutState) {
			s.Logical.FontRuns = append(s.Logical.FontRuns, text.FontRun{
				CharacterRun: text.CharacterRun{CharacterIndex: 2, NumberOfCharacters: 2},
				FontID:       1,
			})
		}},
		{"missing font", func(s *TextLayoutState) {
			s.Logical.FontRuns[0].FontID = 0
		}},
		{"undefined script", func(s *TextLayoutState) {
			s.Logical.ScriptRuns[0].Script = text.ScriptCommon
		}},
		{"character count", func(s *TextLayoutState) {
			s.Visual.CharactersPerGlyph[2] = 1
		}},
		{"bad character map", func(s *TextLayoutState) {
			s.Visual.CharactersToGlyph[3] = 0
		}},
		{"line gap", func(s *TextLayoutState) {
			s.Visual.Lines[0].GlyphIndex = 1
		}},
		{"lines short", func(s *TextLayoutState) {
			s.Visual.Lines[0].NumberOfGlyphs = 2
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidModel)
		})
	}
}

func TestClearModelData(t *testing.T) {
	p := newTestPipeline(t, WithLayout(text.MultiLineBox))
	state := createModel(t, p, "Hello\nWorld\nagain", wideArea)
	require.Len(t, state.Visual.Lines, 3)

	state.ClearModelData(6)

	assert.Len(t, state.Logical.Text, 17, "text is kept")
	assert.Len(t, state.Logical.LineBreakInfo, 6)
	assert.Len(t, state.Logical.WordBreakInfo, 6)
	assert.Len(t, state.Visual.CharactersToGlyph, 6)
	assert.Len(t, state.Visual.GlyphsPerCharacter, 6)
	assert.Len(t, state.Visual.Glyphs, 6)
	assert.Len(t, state.Visual.GlyphPositions, 6)
	require.Len(t, state.Visual.Lines, 1)
	assert.Equal(t, "Hello\n", state.LineText(0))

	for _, run := range state.Logical.ScriptRuns {
		assert.LessOrEqual(t, run.End(), text.CharacterIndex(6))
	}
	for _, run := range state.Logical.FontRuns {
		assert.LessOrEqual(t, run.End(), text.CharacterIndex(6))
	}
}

func TestClearModelDataCutsRuns(t *testing.T) {
	p := newTestPipeline(t)
	state := createModel(t, p, "Hello World", wideArea)
	require.Len(t, state.Logical.ScriptRuns, 1)

	state.ClearModelData(3)
	require.Len(t, state.Logical.ScriptRuns, 1)
	assert.Equal(t, text.Length(3), state.Logical.ScriptRuns[0].NumberOfCharacters)
	require.Len(t, state.Logical.FontRuns, 1)
	assert.Equal(t, text.Length(3), state.Logical.FontRuns[0].NumberOfCharacters)
	assert.Empty(t, state.Visual.Lines, "the single line reaches the cut")
}

func TestClearModelDataDropsBidiParagraphs(t *testing.T) {
	p := newTestPipeline(t, WithLayout(text.MultiLineBox))
	state := createModel(t, p, "abc\nשלום", wideArea)
	require.Len(t, state.Logical.BidirectionalParagraphInfo, 1)
	require.NotEmpty(t, state.Logical.CharacterDirections)

	state.ClearModelData(4)
	assert.Empty(t, state.Logical.BidirectionalParagraphInfo)
	assert.Empty(t, state.Logical.CharacterDirections)
	assert.Empty(t, state.Logical.BidirectionalLineInfo)
}

func TestAlignedGlyphPositions(t *testing.T) {
	s := &TextLayoutState{}
	s.Visual.GlyphPositions = []text.Vector2{{X: 1, Y: 2}, {X: 3, Y: 2}, {X: 1, Y: 5}}
	s.Visual.Lines = []text.LineRun{
		{GlyphRun: text.GlyphRun{GlyphIndex: 0, NumberOfGlyphs: 2}, AlignmentOffset: 10},
		{GlyphRun: text.GlyphRun{GlyphIndex: 2, NumberOfGlyphs: 1}, AlignmentOffset: 4},
	}
	assert.Equal(t, []text.Vector2{{X: 11, Y: 2}, {X: 13, Y: 2}, {X: 5, Y: 5}}, s.AlignedGlyphPositions())
	assert.Equal(t, float32(1), s.Visual.GlyphPositions[0].X, "positions are not modified")
}

func TestLineTextOutOfRange(t *testing.T) {
	s := &TextLayoutState{}
	assert.Empty(t, s.LineText(0))
	assert.Empty(t, s.LineText(-1))
}
