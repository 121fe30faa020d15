package markup

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/textmodel/text"
)

func charRun(index, length uint32) text.CharacterRun {
	return text.CharacterRun{CharacterIndex: index, NumberOfCharacters: length}
}

func TestProcessMarkupPlain(t *testing.T) {
	res, err := ProcessMarkup("Hello World")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", res.Text)
	assert.Nil(t, res.FontRuns)
	assert.Nil(t, res.ColorRuns)
}

func TestProcessMarkupStyles(t *testing.T) {
	res, err := ProcessMarkup("a<b>bold</b> <i>it</i> <font family='Go Mono' size='18' weight='light' width='condensed' slant='oblique'>m</font>")
	require.NoError(t, err)
	assert.Equal(t, "abold it m", res.Text)
	require.Len(t, res.FontRuns, 3)

	bold := res.FontRuns[0]
	assert.Equal(t, charRun(1, 4), bold.CharacterRun)
	assert.True(t, bold.WeightDefined)
	assert.Equal(t, text.WeightBold, bold.Description.Weight)
	assert.False(t, bold.SlantDefined)

	italic := res.FontRuns[1]
	assert.Equal(t, charRun(6, 2), italic.CharacterRun)
	assert.True(t, italic.SlantDefined)
	assert.Equal(t, text.SlantItalic, italic.Description.Slant)

	font := res.FontRuns[2]
	assert.Equal(t, charRun(9, 1), font.CharacterRun)
	assert.Equal(t, text.FontDescription{
		Family: "Go Mono",
		Weight: text.WeightLight,
		Width:  text.WidthCondensed,
		Slant:  text.SlantOblique,
	}, font.Description)
	assert.InDelta(t, 18, font.PointSize, 1e-6)
	assert.True(t, font.FamilyDefined && font.SizeDefined && font.WeightDefined && font.WidthDefined && font.SlantDefined)
}

func TestProcessMarkupNesting(t *testing.T) {
	res, err := ProcessMarkup("<B>x<I>y</I>z</B>")
	require.NoError(t, err)
	assert.Equal(t, "xyz", res.Text)
	require.Len(t, res.FontRuns, 2)
	assert.Equal(t, charRun(0, 3), res.FontRuns[0].CharacterRun, "outer run")
	assert.Equal(t, charRun(1, 1), res.FontRuns[1].CharacterRun, "inner run")
}

func TestProcessMarkupColor(t *testing.T) {
	res, err := ProcessMarkup("<color value='#00ff00'>green</color> <color value=red>red</color>")
	require.NoError(t, err)
	assert.Equal(t, "green red", res.Text)
	assert.Equal(t, []ColorRun{
		{CharacterRun: charRun(0, 5), Color: color.RGBA{G: 0xff, A: 0xff}},
		{CharacterRun: charRun(6, 3), Color: color.RGBA{R: 0xff, A: 0xff}},
	}, res.ColorRuns)
}

func TestProcessMarkupEntities(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a &lt;b&gt; &amp; c", "a <b> & c"},
		{"&quot;q&quot; &apos;s&apos;", "\"q\" 's'"},
		{"x&nbsp;y", "x\u00a0y"},
		{"&#65;&#x42;", "AB"},
		{`\<b\>`, "<b>"},
		{`a\b`, `a\b`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := ProcessMarkup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestProcessMarkupCountsCharacters(t *testing.T) {
	res, err := ProcessMarkup("שלום &amp; <b>мир</b>")
	require.NoError(t, err)
	assert.Equal(t, "שלום & мир", res.Text)
	require.Len(t, res.FontRuns, 1)
	assert.Equal(t, charRun(7, 3), res.FontRuns[0].CharacterRun)
}

func TestProcessMarkupLenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
		runs  []text.CharacterRun
	}{
		{"unknown tags skipped", "<u>a</u><shadow>b</shadow>", "ab", nil},
		{"unbalanced close ignored", "a</b><b>c</b></i>", "ac", []text.CharacterRun{charRun(1, 1)}},
		{"unclosed tag runs to the end", "a<b>bc", "abc", []text.CharacterRun{charRun(1, 2)}},
		{"empty run dropped", "a<b></b>c", "ac", nil},
		{"self closing", "a<b/>c", "ac", nil},
		{"crossed tags", "<b>a<i>b</b>c</i>", "abc", []text.CharacterRun{charRun(0, 2), charRun(1, 2)}},
		{"unterminated tag is text", "1 <b", "1 <b", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ProcessMarkup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.text, res.Text)
			var runs []text.CharacterRun
			for _, r := range res.FontRuns {
				runs = append(runs, r.CharacterRun)
			}
			assert.Equal(t, tt.runs, runs)
		})
	}
}

func TestProcessMarkupErrors(t *testing.T) {
	tests := []struct {
		input string
		attr  string
	}{
		{"<font size='big'>x</font>", "size"},
		{"<font size='-3'>x</font>", "size"},
		{"<font weight='heavy'>x</font>", "weight"},
		{"<font width='wide'>x</font>", "width"},
		{"<font slant='sideways'>x</font>", "slant"},
		{"<color value='#12'>x</color>", "value"},
		{"<color>x</color>", "value"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ProcessMarkup(tt.input)
			require.ErrorIs(t, err, ErrInvalidValue)
			var attrErr *AttributeError
			require.ErrorAs(t, err, &attrErr)
			assert.Equal(t, tt.attr, attrErr.Name)
		})
	}
}
