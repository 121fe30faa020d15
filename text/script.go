package text

import (
	"github.com/go-text/typesetting/language"

	"github.com/gogpu/textmodel/text/emoji"
)

// Script represents a Unicode script for text segmentation.
// Scripts are used to identify runs of text that should be shaped together.
type Script uint32

// Script constants for the scripts the pipeline distinguishes.
const (
	// ScriptCommon is used for punctuation, numbers, and symbols shared across scripts.
	ScriptCommon Script = iota
	// ScriptInherited is used for combining marks that inherit the script of the base character.
	ScriptInherited
	// ScriptLatin is used for Latin-based scripts (English, French, German, etc.)
	ScriptLatin
	// ScriptCyrillic is used for Cyrillic script (Russian, Ukrainian, Bulgarian, etc.)
	ScriptCyrillic
	// ScriptGreek is used for Greek script.
	ScriptGreek
	// ScriptArabic is used for Arabic script (Arabic, Persian, Urdu, etc.)
	ScriptArabic
	// ScriptHebrew is used for Hebrew script.
	ScriptHebrew
	ScriptSyriac
	ScriptThaana
	// ScriptHan is used for Chinese/Japanese Kanji characters.
	ScriptHan
	ScriptHiragana
	ScriptKatakana
	ScriptHangul
	ScriptDevanagari
	ScriptThai
	ScriptGeorgian
	ScriptArmenian
	ScriptBengali
	ScriptTamil
	ScriptTelugu
	ScriptKannada
	ScriptMalayalam
	ScriptGujarati
	ScriptOriya
	ScriptGurmukhi
	ScriptSinhala
	ScriptKhmer
	ScriptLao
	ScriptMyanmar
	ScriptTibetan
	ScriptEthiopic
	// ScriptEmoji is used for pictographs that need a color font.
	ScriptEmoji
	// ScriptUnknown is used for unrecognized scripts.
	ScriptUnknown

	scriptCount
)

type scriptEntry struct {
	name string
	lang language.Script
}

var scriptTable = [...]scriptEntry{
	ScriptCommon:     {"Common", language.Common},
	ScriptInherited:  {"Inherited", language.Inherited},
	ScriptLatin:      {"Latin", language.Latin},
	ScriptCyrillic:   {"Cyrillic", language.Cyrillic},
	ScriptGreek:      {"Greek", language.Greek},
	ScriptArabic:     {"Arabic", language.Arabic},
	ScriptHebrew:     {"Hebrew", language.Hebrew},
	ScriptSyriac:     {"Syriac", language.Syriac},
	ScriptThaana:     {"Thaana", language.Thaana},
	ScriptHan:        {"Han", language.Han},
	ScriptHiragana:   {"Hiragana", language.Hiragana},
	ScriptKatakana:   {"Katakana", language.Katakana},
	ScriptHangul:     {"Hangul", language.Hangul},
	ScriptDevanagari: {"Devanagari", language.Devanagari},
	ScriptThai:       {"Thai", language.Thai},
	ScriptGeorgian:   {"Georgian", language.Georgian},
	ScriptArmenian:   {"Armenian", language.Armenian},
	ScriptBengali:    {"Bengali", language.Bengali},
	ScriptTamil:      {"Tamil", language.Tamil},
	ScriptTelugu:     {"Telugu", language.Telugu},
	ScriptKannada:    {"Kannada", language.Kannada},
	ScriptMalayalam:  {"Malayalam", language.Malayalam},
	ScriptGujarati:   {"Gujarati", language.Gujarati},
	ScriptOriya:      {"Oriya", language.Oriya},
	ScriptGurmukhi:   {"Gurmukhi", language.Gurmukhi},
	ScriptSinhala:    {"Sinhala", language.Sinhala},
	ScriptKhmer:      {"Khmer", language.Khmer},
	ScriptLao:        {"Lao", language.Lao},
	ScriptMyanmar:    {"Myanmar", language.Myanmar},
	ScriptTibetan:    {"Tibetan", language.Tibetan},
	ScriptEthiopic:   {"Ethiopic", language.Ethiopic},
	ScriptEmoji:      {"Emoji", language.Common},
	ScriptUnknown:    {"Unknown", language.Unknown},
}

// fromLanguage maps go-text scripts back to Script values.
var fromLanguage = func() map[language.Script]Script {
	m := make(map[language.Script]Script, len(scriptTable))
	for s, e := range scriptTable {
		if Script(s) == ScriptEmoji {
			continue
		}
		m[e.lang] = Script(s)
	}
	return m
}()

// String returns the name of the script.
func (s Script) String() string {
	if int(s) < len(scriptTable) {
		return scriptTable[s].name
	}
	return unknownStr
}

// LanguageScript returns the go-text script used when shaping s.
func (s Script) LanguageScript() language.Script {
	if int(s) < len(scriptTable) {
		return scriptTable[s].lang
	}
	return language.Unknown
}

// IsRTL returns true if the script is written right-to-left.
func (s Script) IsRTL() bool {
	switch s {
	case ScriptArabic, ScriptHebrew, ScriptSyriac, ScriptThaana:
		return true
	default:
		return false
	}
}

// IsCommon reports whether characters of s take the script of their
// neighbours.
func (s Script) IsCommon() bool {
	return s == ScriptCommon || s == ScriptInherited
}

// RequiresComplexShaping returns true if the script typically needs
// advanced shaping features (ligatures, contextual forms, etc.)
// that SimpleEngine does not provide.
func (s Script) RequiresComplexShaping() bool {
	switch s {
	case ScriptArabic, ScriptHebrew, ScriptSyriac, ScriptThaana,
		ScriptDevanagari, ScriptBengali, ScriptTamil, ScriptTelugu,
		ScriptKannada, ScriptMalayalam, ScriptGujarati, ScriptOriya,
		ScriptGurmukhi, ScriptSinhala, ScriptKhmer, ScriptLao,
		ScriptMyanmar, ScriptTibetan, ScriptThai, ScriptEmoji:
		return true
	default:
		return false
	}
}

// DetectScript returns the script of r.
//
// Pictographs map to ScriptEmoji; scripts the pipeline does not
// distinguish map to ScriptUnknown.
func DetectScript(r rune) Script {
	if r < 0x80 {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return ScriptLatin
		}
		return ScriptCommon
	}
	if IsEmoji(r) {
		return ScriptEmoji
	}
	if r == 0x200D || (r >= 0xFE00 && r <= 0xFE0F) {
		// Joiners and variation selectors glue emoji sequences.
		return ScriptInherited
	}
	if s, ok := fromLanguage[language.LookupScript(r)]; ok {
		return s
	}
	return ScriptUnknown
}

// IsEmoji reports whether r is a pictograph usually rendered in color:
// an emoji presentation character or an emoji of the Miscellaneous
// Symbols and Dingbats blocks.
func IsEmoji(r rune) bool {
	if emoji.IsEmojiPresentation(r) {
		return true
	}
	return r >= 0x2600 && r <= 0x27BF && emoji.IsEmoji(r)
}
