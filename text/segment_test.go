package text

import (
	"reflect"
	"testing"
)

func scriptRun(start, length uint32, s Script) ScriptRun {
	return ScriptRun{CharacterRun: CharacterRun{CharacterIndex: start, NumberOfCharacters: length}, Script: s}
}

func TestSetScripts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []ScriptRun
	}{
		{"single script", "Hello", []ScriptRun{scriptRun(0, 5, ScriptLatin)}},
		{"space joins previous run", "Hello Мир", []ScriptRun{
			scriptRun(0, 6, ScriptLatin),
			scriptRun(6, 3, ScriptCyrillic),
		}},
		{"leading common joins first strong", "123 Мир", []ScriptRun{
			scriptRun(0, 7, ScriptCyrillic),
		}},
		{"no strong script", "123 !", []ScriptRun{scriptRun(0, 5, ScriptLatin)}},
		{"unknown script", "ᚠᚡ", []ScriptRun{scriptRun(0, 2, ScriptLatin)}},
		{"paragraph ends run", "abc\nМир", []ScriptRun{
			scriptRun(0, 4, ScriptLatin),
			scriptRun(4, 3, ScriptCyrillic),
		}},
		{"same script across paragraphs", "abc\ndef", []ScriptRun{
			scriptRun(0, 4, ScriptLatin),
			scriptRun(4, 3, ScriptLatin),
		}},
		{"emoji", "\U0001F600a", []ScriptRun{
			scriptRun(0, 1, ScriptEmoji),
			scriptRun(1, 1, ScriptLatin),
		}},
		{"keycap", "a 1\ufe0f\u20e3 b", []ScriptRun{
			scriptRun(0, 2, ScriptLatin),
			scriptRun(2, 4, ScriptEmoji),
			scriptRun(6, 1, ScriptLatin),
		}},
		{"joined emoji", "\U0001F468\u200D\U0001F469\u200D\U0001F467x", []ScriptRun{
			scriptRun(0, 5, ScriptEmoji),
			scriptRun(5, 1, ScriptLatin),
		}},
		{"flag", "\U0001F1EF\U0001F1F5\U0001F600", []ScriptRun{
			scriptRun(0, 3, ScriptEmoji),
		}},
		{"right to left", "abc שלום (x)", []ScriptRun{
			scriptRun(0, 4, ScriptLatin),
			scriptRun(4, 6, ScriptHebrew),
			scriptRun(10, 2, ScriptLatin),
		}},
	}
	m := NewMultilanguageSupport(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := []rune(tt.text)
			var runs []ScriptRun
			m.SetScripts(text, 0, Length(len(text)), &runs)
			if !reflect.DeepEqual(runs, tt.want) {
				t.Errorf("SetScripts(%q) = %v, want %v", tt.text, runs, tt.want)
			}
		})
	}
}

func TestSetScriptsRange(t *testing.T) {
	m := NewMultilanguageSupport(nil)
	text := []rune("abc Мир\nxyz")
	var full []ScriptRun
	m.SetScripts(text, 0, Length(len(text)), &full)

	tests := []struct {
		name          string
		start, length uint32
	}{
		{"head", 0, 4},
		{"middle", 4, 3},
		{"paragraph", 0, 8},
		{"tail", 8, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := append([]ScriptRun(nil), full...)
			m.SetScripts(text, tt.start, tt.length, &runs)
			if !reflect.DeepEqual(runs, full) {
				t.Errorf("SetScripts(%d, %d) = %v, want %v", tt.start, tt.length, runs, full)
			}
		})
	}
}

func TestSetScriptsEmptyRange(t *testing.T) {
	m := NewMultilanguageSupport(nil)
	runs := []ScriptRun{scriptRun(0, 3, ScriptLatin)}
	m.SetScripts([]rune("abc"), 1, 0, &runs)
	if len(runs) != 1 || runs[0].NumberOfCharacters != 3 {
		t.Errorf("SetScripts(empty range) changed runs: %v", runs)
	}
}
