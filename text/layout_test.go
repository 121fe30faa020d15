package text

import (
	"reflect"
	"testing"
)

const (
	testAdvance = 10
	testWidth   = 8
)

// layoutParams builds a one glyph per character model of s where every
// glyph advances testAdvance and is testWidth wide. Paragraph separators
// get no advance.
func layoutParams(t *testing.T, client *FontClient, s string, box Size) *Parameters {
	t.Helper()
	text := []rune(s)
	n := Length(len(text))
	id := client.GetFontID(FontDescription{}, 12)

	p := &Parameters{
		BoundingBox:         box,
		Text:                text,
		LineBreakInfo:       make([]LineBreakInfo, n),
		WordBreakInfo:       make([]WordBreakInfo, n),
		Glyphs:              make([]GlyphInfo, n),
		GlyphsToCharacters:  make([]CharacterIndex, n),
		CharactersPerGlyph:  make([]Length, n),
		CharactersToGlyph:   make([]GlyphIndex, n),
		GlyphsPerCharacter:  make([]Length, n),
		NumberOfGlyphs:      n,
		TotalNumberOfGlyphs: n,
	}
	SetLineBreakInfo(text, 0, n, p.LineBreakInfo)
	SetWordBreakInfo(text, 0, n, p.WordBreakInfo)
	for i := range text {
		g := GlyphInfo{FontID: id, Advance: testAdvance, Width: testWidth}
		if IsNewParagraph(text[i]) {
			g.Advance, g.Width = 0, 0
		}
		p.Glyphs[i] = g
		p.GlyphsToCharacters[i] = CharacterIndex(i)
		p.CharactersPerGlyph[i] = 1
		p.CharactersToGlyph[i] = GlyphIndex(i)
		p.GlyphsPerCharacter[i] = 1
	}
	p.IsLastNewParagraph = n > 0 && IsNewParagraph(text[n-1])
	return p
}

func lineTexts(text []rune, lines []LineRun) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(text[l.CharacterIndex:l.End()])
	}
	return out
}

func TestLayoutTextSingleLine(t *testing.T) {
	client := newTestClient(t)
	e := NewLayoutEngine(client)
	params := layoutParams(t, client, "ab cd", Size{Width: 20, Height: 100})

	var positions []Vector2
	var lines []LineRun
	var size Size
	if !e.LayoutText(params, &positions, &lines, &size) {
		t.Fatal("LayoutText() = false")
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 regardless of the width", len(lines))
	}
	line := lines[0]
	if line.NumberOfGlyphs != 5 || line.NumberOfCharacters != 5 {
		t.Errorf("line = %+v", line)
	}
	if line.Width != 4*testAdvance+testWidth {
		t.Errorf("Width = %v, want %v", line.Width, 4*testAdvance+testWidth)
	}
	m := client.GetFontMetrics(params.Glyphs[0].FontID)
	if line.Ascender != m.Ascender || line.Descender != m.Descender {
		t.Errorf("line metrics = %v, %v, want %v, %v", line.Ascender, line.Descender, m.Ascender, m.Descender)
	}
	for i, pos := range positions {
		if pos.X != float32(i*testAdvance) || pos.Y != m.Ascender {
			t.Errorf("position %d = %+v", i, pos)
		}
	}
	if size.Width != line.Width || size.Height != line.Height() {
		t.Errorf("layout size = %+v", size)
	}
}

func TestLayoutTextMultiLine(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float32
		wrap  WrapMode
		lines []string
	}{
		{"fits", "ab cd", 100, WrapWord, []string{"ab cd"}},
		{"wraps at space", "ab cd", 30, WrapWord, []string{"ab ", "cd"}},
		{"white space never overflows", "ab   cd", 20, WrapWord, []string{"ab   ", "cd"}},
		{"no break opportunity", "abcd", 25, WrapWord, []string{"ab", "cd"}},
		{"wrap character", "abc de", 25, WrapCharacter, []string{"ab", "c ", "de"}},
		{"mandatory break", "ab\ncd", 100, WrapWord, []string{"ab\n", "cd"}},
		{"one glyph per line minimum", "abc", 1, WrapWord, []string{"a", "b", "c"}},
		{"trailing separator adds a line", "ab\n", 100, WrapWord, []string{"ab\n", ""}},
	}
	client := newTestClient(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewLayoutEngine(client)
			e.SetLayout(MultiLineBox)
			e.SetWrapMode(tt.wrap)
			params := layoutParams(t, client, tt.text, Size{Width: tt.width, Height: 100})

			var positions []Vector2
			var lines []LineRun
			var size Size
			e.LayoutText(params, &positions, &lines, &size)
			if got := lineTexts(params.Text, lines); !reflect.DeepEqual(got, tt.lines) {
				t.Errorf("lines = %q, want %q", got, tt.lines)
			}
		})
	}
}

func TestLayoutTextLineGeometry(t *testing.T) {
	client := newTestClient(t)
	e := NewLayoutEngine(client)
	e.SetLayout(MultiLineBox)
	params := layoutParams(t, client, "ab cd", Size{Width: 30, Height: 100})
	params.LineSpacing = 4

	var positions []Vector2
	var lines []LineRun
	var size Size
	e.LayoutText(params, &positions, &lines, &size)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	first, second := lines[0], lines[1]
	if first.Width != 30 || first.ExtraLength != testAdvance {
		t.Errorf("first line width %v extra %v, want 30 and %v", first.Width, first.ExtraLength, testAdvance)
	}
	if first.LineSpacing != 4 {
		t.Errorf("LineSpacing = %v, want 4", first.LineSpacing)
	}
	if positions[3].X != 0 || positions[3].Y != first.Height()+second.Ascender {
		t.Errorf("first glyph of second line at %+v", positions[3])
	}
	if want := (Size{Width: 20, Height: first.Height() + second.Height()}); size != want {
		t.Errorf("layout size = %+v, want %+v", size, want)
	}
	if second.GlyphIndex != 3 || second.CharacterIndex != 3 {
		t.Errorf("second line = %+v", second)
	}
}

func TestLayoutTextFromLine(t *testing.T) {
	client := newTestClient(t)
	e := NewLayoutEngine(client)
	e.SetLayout(MultiLineBox)
	params := layoutParams(t, client, "ab\ncd\nef", Size{Width: 100, Height: 100})

	var positions []Vector2
	var lines []LineRun
	var size Size
	e.LayoutText(params, &positions, &lines, &size)
	wantLines := append([]LineRun(nil), lines...)
	wantPositions := append([]Vector2(nil), positions...)

	// Lay the last two lines out again.
	params.StartGlyphIndex = 3
	params.NumberOfGlyphs = 5
	params.StartLineIndex = 1
	for i := 3; i < len(positions); i++ {
		positions[i] = Vector2{}
	}
	e.LayoutText(params, &positions, &lines, &size)
	if !reflect.DeepEqual(lines, wantLines) {
		t.Errorf("lines = %+v, want %+v", lines, wantLines)
	}
	if !reflect.DeepEqual(positions, wantPositions) {
		t.Errorf("positions = %+v, want %+v", positions, wantPositions)
	}
}

func TestLayoutTextEmpty(t *testing.T) {
	e := NewLayoutEngine(newTestClient(t))
	lines := []LineRun{{Width: 3}}
	size := Size{Width: 3, Height: 3}
	var positions []Vector2
	if e.LayoutText(&Parameters{}, &positions, &lines, &size) {
		t.Error("LayoutText(no glyphs) = true")
	}
	if len(lines) != 0 || size != (Size{}) {
		t.Errorf("lines = %v, size = %v, want both empty", lines, size)
	}
}

func TestLayoutEngineSettings(t *testing.T) {
	e := NewLayoutEngine(nil)
	if e.Layout() != SingleLineBox || e.WrapMode() != WrapWord {
		t.Errorf("defaults = %v, %v", e.Layout(), e.WrapMode())
	}
	e.SetLayout(MultiLineBox)
	e.SetWrapMode(WrapCharacter)
	if e.Layout() != MultiLineBox || e.WrapMode() != WrapCharacter {
		t.Errorf("settings = %v, %v", e.Layout(), e.WrapMode())
	}
}

func TestParseModes(t *testing.T) {
	layouts := []struct {
		in   string
		want LayoutMode
		ok   bool
	}{
		{"single", SingleLineBox, true},
		{"Multi", MultiLineBox, true},
		{"MultiLineBox", MultiLineBox, true},
		{"grid", SingleLineBox, false},
	}
	for _, tt := range layouts {
		if got, ok := ParseLayoutMode(tt.in); got != tt.want || ok != tt.ok {
			t.Errorf("ParseLayoutMode(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	wraps := []struct {
		in   string
		want WrapMode
		ok   bool
	}{
		{"word", WrapWord, true},
		{"CHARACTER", WrapCharacter, true},
		{"hyphen", WrapWord, false},
	}
	for _, tt := range wraps {
		if got, ok := ParseWrapMode(tt.in); got != tt.want || ok != tt.ok {
			t.Errorf("ParseWrapMode(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
