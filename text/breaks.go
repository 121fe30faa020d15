package text

import (
	"unicode/utf8"

	"github.com/go-text/typesetting/segmenter"
	"github.com/rivo/uniseg"
)

// SetLineBreakInfo classifies the line break opportunity after every
// character of text[start:start+length] following UAX #14.
//
// The range is analyzed on its own, so it can be re-analyzed after an edit
// without looking at the rest of the text. info must have len(text) entries;
// only the range is written.
func SetLineBreakInfo(text []rune, start CharacterIndex, length Length, info []LineBreakInfo) {
	if length == 0 {
		return
	}
	end := start + length
	for i := start; i < end; i++ {
		info[i] = LineNoBreak
	}

	var seg segmenter.Segmenter
	seg.Init(text[start:end])
	iter := seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		if len(line.Text) == 0 {
			continue
		}
		last := start + CharacterIndex(line.Offset+len(line.Text)-1)
		if line.IsMandatoryBreak {
			info[last] = LineMustBreak
		} else {
			info[last] = LineAllowBreak
		}
	}

	// The end of the analyzed range always terminates a line.
	info[end-1] = LineMustBreak
}

// SetWordBreakInfo marks the characters after which a UAX #29 word boundary
// occurs. info must have len(text) entries; only the range is written.
func SetWordBreakInfo(text []rune, start CharacterIndex, length Length, info []WordBreakInfo) {
	if length == 0 {
		return
	}
	end := start + length
	for i := start; i < end; i++ {
		info[i] = WordNoBreak
	}

	buf := Encode(text[start:end])
	index := start
	state := -1
	for len(buf) > 0 {
		var cluster []byte
		var boundaries int
		cluster, buf, boundaries, state = uniseg.Step(buf, state)
		index += CharacterIndex(utf8.RuneCount(cluster))
		if boundaries&uniseg.MaskWord != 0 && index > start {
			info[index-1] = WordBreak
		}
	}
	info[end-1] = WordBreak
}
