// Package emoji classifies emoji characters and finds emoji sequences.
//
// A sequence is what a color font renders as one picture:
//
//   - a single pictograph, optionally followed by U+FE0F
//   - a pictograph with a skin tone modifier (U+1F3FB - U+1F3FF)
//   - keycaps (digit + U+FE0F + U+20E3)
//   - flags made of two regional indicators
//   - subdivision flags made of tag characters
//   - any of the above joined by U+200D (ZWJ)
//
// At returns the sequence at the start of a rune slice. The text package
// uses it to keep whole sequences in one emoji script run.
package emoji
