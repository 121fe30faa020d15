package text

import (
	"reflect"
	"testing"
)

// Shorthand for break tables.
const (
	mb = LineMustBreak
	ab = LineAllowBreak
	nb = LineNoBreak
	wb = WordBreak
	wn = WordNoBreak
)

func TestSetLineBreakInfo(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []LineBreakInfo
	}{
		{"single character", "a", []LineBreakInfo{mb}},
		{"word", "abc", []LineBreakInfo{nb, nb, mb}},
		{"space", "ab cd", []LineBreakInfo{nb, nb, ab, nb, mb}},
		{"newline", "a\nb", []LineBreakInfo{nb, mb, mb}},
		{"paragraph separator", "a\u2029b", []LineBreakInfo{nb, mb, mb}},
		{"trailing newline", "a\n", []LineBreakInfo{nb, mb}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := []rune(tt.text)
			info := make([]LineBreakInfo, len(text))
			SetLineBreakInfo(text, 0, Length(len(text)), info)
			if !reflect.DeepEqual(info, tt.want) {
				t.Errorf("SetLineBreakInfo(%q) = %v, want %v", tt.text, info, tt.want)
			}
		})
	}
}

func TestSetLineBreakInfoRange(t *testing.T) {
	text := []rune("Hello World")
	info := make([]LineBreakInfo, len(text))
	for i := range info {
		info[i] = ab
	}
	SetLineBreakInfo(text, 6, 5, info)

	for i := range 6 {
		if info[i] != ab {
			t.Errorf("info[%d] = %v, want untouched", i, info[i])
		}
	}
	want := []LineBreakInfo{nb, nb, nb, nb, mb}
	if !reflect.DeepEqual(info[6:], want) {
		t.Errorf("info[6:] = %v, want %v", info[6:], want)
	}

	// An empty range writes nothing.
	SetLineBreakInfo(text, 3, 0, info)
	if info[3] != ab {
		t.Errorf("empty range wrote info[3] = %v", info[3])
	}
}

func TestSetWordBreakInfo(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []WordBreakInfo
	}{
		{"single character", "a", []WordBreakInfo{wb}},
		{"word", "abc", []WordBreakInfo{wn, wn, wb}},
		{"two words", "ab cd", []WordBreakInfo{wn, wb, wb, wn, wb}},
		{"punctuation", "hi!", []WordBreakInfo{wn, wb, wb}},
		{"cyrillic", "да нет", []WordBreakInfo{wn, wb, wb, wn, wn, wb}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := []rune(tt.text)
			info := make([]WordBreakInfo, len(text))
			SetWordBreakInfo(text, 0, Length(len(text)), info)
			if !reflect.DeepEqual(info, tt.want) {
				t.Errorf("SetWordBreakInfo(%q) = %v, want %v", tt.text, info, tt.want)
			}
		})
	}
}

func TestSetWordBreakInfoRange(t *testing.T) {
	text := []rune("ab cd")
	info := []WordBreakInfo{wb, wb, wb, wn, wn}
	SetWordBreakInfo(text, 3, 2, info)
	want := []WordBreakInfo{wb, wb, wb, wn, wb}
	if !reflect.DeepEqual(info, want) {
		t.Errorf("SetWordBreakInfo(range) = %v, want %v", info, want)
	}
}
