package text

import (
	"errors"
	"testing"
)

func fontRun(start, length uint32, id FontID) FontRun {
	return FontRun{CharacterRun: CharacterRun{CharacterIndex: start, NumberOfCharacters: length}, FontID: id}
}

func validate(t *testing.T, m *MultilanguageSupport, s string, descriptions []FontDescriptionRun) []FontRun {
	t.Helper()
	text := []rune(s)
	var scripts []ScriptRun
	m.SetScripts(text, 0, Length(len(text)), &scripts)
	var fonts []FontRun
	err := m.ValidateFonts(text, scripts, descriptions, m.FontClient().DefaultDescription(),
		m.FontClient().DefaultPointSize(), 0, Length(len(text)), &fonts)
	if err != nil {
		t.Fatalf("ValidateFonts(%q) error = %v", s, err)
	}
	return fonts
}

func TestValidateFonts(t *testing.T) {
	m := NewMultilanguageSupport(newTestClient(t))
	client := m.FontClient()
	regular := client.GetFontID(FontDescription{}, client.DefaultPointSize())
	bold := client.GetFontID(FontDescription{Weight: WeightBold}, client.DefaultPointSize())

	tests := []struct {
		name         string
		text         string
		descriptions []FontDescriptionRun
		want         []FontRun
	}{
		{"latin", "Hello", nil, []FontRun{fontRun(0, 5, regular)}},
		{"mixed scripts", "Hi Мир Γειά", nil, []FontRun{fontRun(0, 11, regular)}},
		{"unsupported falls back to default", "abc שלום", nil, []FontRun{fontRun(0, 8, regular)}},
		{"paragraphs split runs", "ab\ncd", nil, []FontRun{fontRun(0, 3, regular), fontRun(3, 2, regular)}},
		{"description run", "Hello World", []FontDescriptionRun{{
			CharacterRun:  CharacterRun{CharacterIndex: 6, NumberOfCharacters: 5},
			Description:   FontDescription{Weight: WeightBold},
			WeightDefined: true,
		}}, []FontRun{fontRun(0, 6, regular), fontRun(6, 5, bold)}},
		{"undefined fields are ignored", "Hello", []FontDescriptionRun{{
			CharacterRun: CharacterRun{CharacterIndex: 0, NumberOfCharacters: 5},
			Description:  FontDescription{Weight: WeightBold},
		}}, []FontRun{fontRun(0, 5, regular)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validate(t, m, tt.text, tt.descriptions)
			if len(got) != len(tt.want) {
				t.Fatalf("ValidateFonts(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("run %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateFontsSize(t *testing.T) {
	m := NewMultilanguageSupport(newTestClient(t))
	fonts := validate(t, m, "ab", []FontDescriptionRun{{
		CharacterRun: CharacterRun{CharacterIndex: 1, NumberOfCharacters: 1},
		PointSize:    30,
		SizeDefined:  true,
	}})
	if len(fonts) != 2 {
		t.Fatalf("got %d runs, want 2", len(fonts))
	}
	if got := m.FontClient().PointSize(fonts[1].FontID); got != 30 {
		t.Errorf("PointSize() = %v, want 30", got)
	}
}

func TestValidateFontsRange(t *testing.T) {
	m := NewMultilanguageSupport(newTestClient(t))
	text := []rune("ab\ncd")
	full := validate(t, m, string(text), nil)

	var scripts []ScriptRun
	m.SetScripts(text, 0, Length(len(text)), &scripts)
	fonts := append([]FontRun(nil), full...)
	client := m.FontClient()
	if err := m.ValidateFonts(text, scripts, nil, client.DefaultDescription(), client.DefaultPointSize(), 3, 2, &fonts); err != nil {
		t.Fatalf("ValidateFonts() error = %v", err)
	}
	if len(fonts) != len(full) || fonts[0] != full[0] || fonts[1] != full[1] {
		t.Errorf("range update = %v, want %v", fonts, full)
	}
}

func TestValidateFontsErrors(t *testing.T) {
	empty, err := NewFontClient(WithEmbeddedFonts(false))
	if err != nil {
		t.Fatal(err)
	}
	m := NewMultilanguageSupport(empty)
	text := []rune("abc")
	var fonts []FontRun
	err = m.ValidateFonts(text, nil, nil, FontDescription{}, 12, 0, 3, &fonts)
	if !errors.Is(err, ErrNoDefaultFont) {
		t.Errorf("ValidateFonts(no fonts) error = %v, want ErrNoDefaultFont", err)
	}

	m = NewMultilanguageSupport(newTestClient(t))
	err = m.ValidateFonts(text, nil, nil, FontDescription{}, 12, 2, 5, &fonts)
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("ValidateFonts(out of range) error = %v, want *RangeError", err)
	}
}
