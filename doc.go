// Package textmodel turns UTF-8 text into positioned glyphs.
//
// # Overview
//
// textmodel is a Pure Go text layout pipeline for bidirectional,
// multi-script text. It decodes the input, finds line and word breaks,
// splits the text into script runs, picks a font able to render every
// character, resolves the Unicode Bidirectional Algorithm per paragraph,
// shapes the runs with HarfBuzz, lays the glyphs out on lines, reorders
// right to left lines and aligns them. Rendering the glyphs is left to the
// caller.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/textmodel"
//		"github.com/gogpu/textmodel/text"
//	)
//
//	p, err := textmodel.NewPipeline(textmodel.WithLayout(text.MultiLineBox))
//	if err != nil {
//		return err
//	}
//	state, err := p.CreateTextModel("Hello World", text.Size{Width: 100, Height: 100},
//		nil, textmodel.DefaultLayoutOptions())
//	if err != nil {
//		return err
//	}
//	for i, pos := range state.AlignedGlyphPositions() {
//		glyph := state.Visual.Glyphs[i]
//		// draw glyph.Index of glyph.FontID at pos
//	}
//
// # Model
//
// A TextLayoutState holds the logical model (characters, breaks, runs,
// bidirectional info) and the visual model (glyphs, the maps between glyphs
// and characters, positions and lines). UpdateTextModel edits the text and
// rebuilds the model from the start of the edited paragraph.
//
// # Architecture
//
// The stages live in package text:
//   - Decode, SetLineBreakInfo, SetWordBreakInfo
//   - MultilanguageSupport: SetScripts, ValidateFonts
//   - SetBidirectionalInfo, GetCharactersDirection, GetMirroredText
//   - Shaper with one ShapingEngine per script
//   - MetricsResolver
//   - LayoutEngine: LayoutText, ReLayoutRightToLeftLines, Align
//   - ReorderLines
//
// Package markup converts tagged text into plain text and font
// description runs.
//
// # Logging
//
// The pipeline logs through log/slog. Logging is silent until SetLogger is
// called.
package textmodel
