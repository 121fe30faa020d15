// Package text implements the stages of the text layout pipeline.
//
// The stages work on plain slices indexed by character or glyph and can be
// run on a sub range, so an edit only redoes the paragraphs it touches:
//
//   - Decode converts UTF-8 to characters.
//   - SetLineBreakInfo and SetWordBreakInfo find break opportunities.
//   - MultilanguageSupport splits the text into script runs (SetScripts)
//     and font runs (ValidateFonts).
//   - SetBidirectionalInfo runs the Unicode Bidirectional Algorithm per
//     paragraph; GetCharactersDirection and GetMirroredText read its result.
//   - Shaper turns script and font runs into glyphs with one
//     ShapingEngine per script.
//   - MetricsResolver completes glyph metrics.
//   - LayoutEngine places glyphs on lines, ReorderLines computes the
//     visual order of right to left lines and Align offsets each line.
//
// # Fonts
//
// A FontClient owns the FontSources and maps a FontDescription and a point
// size to a FontID. The Go fonts are embedded and serve as the default.
//
//	client, err := text.NewFontClient(text.WithFontDirectory("/usr/share/fonts"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	id := client.GetFontID(text.FontDescription{Weight: text.WeightBold}, 14)
//
// # Pluggable Parser Backend
//
// Font files are parsed through the FontParser interface. Two parsers are
// registered: "ximage" (golang.org/x/image/font/sfnt), the default, and
// "gotext" (github.com/go-text/typesetting). Custom parsers can be
// added with RegisterParser and chosen with WithParser.
//
// # Shaping
//
// HarfbuzzEngine shapes with the go-text HarfBuzz port. SimpleEngine maps
// one character to one glyph and is enough for scripts without
// contextual forms.
//
// # Logging
//
// The package logs through log/slog and is silent until SetLogger is
// called.
package text
