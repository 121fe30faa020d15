package text

import (
	"math"
	"sync"
)

// MultilanguageSupport segments text into scripts and validates that every
// character gets a font able to render it. It caches, per script, the font
// chosen for each requested description.
//
// MultilanguageSupport is safe for concurrent use.
type MultilanguageSupport struct {
	client *FontClient

	mu           sync.Mutex
	defaultFonts map[Script]map[descriptionKey]FontID
	validFonts   map[Script][]FontID
}

type descriptionKey struct {
	desc FontDescription
	size uint32
}

// NewMultilanguageSupport creates a MultilanguageSupport resolving fonts
// through client.
func NewMultilanguageSupport(client *FontClient) *MultilanguageSupport {
	return &MultilanguageSupport{
		client:       client,
		defaultFonts: make(map[Script]map[descriptionKey]FontID),
		validFonts:   make(map[Script][]FontID),
	}
}

// FontClient returns the client fonts are resolved through.
func (m *MultilanguageSupport) FontClient() *FontClient {
	return m.client
}

// ValidateFonts assigns a font to every character of
// text[start:start+length] and stores the result as runs in fonts.
//
// The font requested for a character is defaultDescription at
// defaultPointSize, overridden by the fontDescriptions runs covering it.
// If the requested font cannot render the character a cached per-script
// font, a fallback font, the Latin default and finally the default font
// are tried in turn. Emoji prefer color fonts. Runs split where the font
// changes and after paragraph separators.
//
// Runs of *fonts outside the range are kept; runs overlapping it are cut.
func (m *MultilanguageSupport) ValidateFonts(
	text []rune,
	scripts []ScriptRun,
	fontDescriptions []FontDescriptionRun,
	defaultDescription FontDescription,
	defaultPointSize float32,
	start CharacterIndex,
	length Length,
	fonts *[]FontRun,
) error {
	if length == 0 {
		return nil
	}
	if err := checkRange("validate fonts", start, length, len(text)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	end := start + length
	head, tail := splitFontRuns(*fonts, start, end)

	runs := make([]FontRun, 0, 4)
	emit := func(from, to CharacterIndex, id FontID) {
		if to > from {
			runs = append(runs, FontRun{
				CharacterRun: CharacterRun{CharacterIndex: from, NumberOfCharacters: to - from},
				FontID:       id,
			})
		}
	}

	scriptIndex := 0
	runStart := start
	var current FontID
	for i := start; i < end; i++ {
		r := text[i]
		for scriptIndex < len(scripts)-1 && scripts[scriptIndex].End() <= i {
			scriptIndex++
		}
		runScript := ScriptLatin
		if scriptIndex < len(scripts) {
			runScript = scripts[scriptIndex].Script
		}

		desc, size := defaultDescription, defaultPointSize
		for j := range fontDescriptions {
			if fontDescriptions[j].Contains(i) {
				fontDescriptions[j].apply(&desc, &size)
			}
		}

		id := m.resolveFont(r, runScript, desc, size, current)
		if id == 0 {
			return ErrNoDefaultFont
		}
		if id != current && i > runStart {
			emit(runStart, i, current)
			runStart = i
		}
		current = id

		if IsNewParagraph(r) {
			emit(runStart, i+1, current)
			runStart = i + 1
			current = 0
		}
	}
	emit(runStart, end, current)

	result := make([]FontRun, 0, len(head)+len(runs)+len(tail))
	result = append(result, head...)
	for _, run := range runs {
		result = appendFontRun(result, run, text)
	}
	for _, run := range tail {
		result = appendFontRun(result, run, text)
	}
	*fonts = result

	logger().Debug("text: fonts validated",
		"start", start, "length", length, "runs", len(result))
	return nil
}

// resolveFont picks the font for r. current is the font of the previous
// character of the same paragraph, or zero.
func (m *MultilanguageSupport) resolveFont(r rune, runScript Script, desc FontDescription, size float32, current FontID) FontID {
	client := m.client
	charScript := DetectScript(r)
	isEmoji := charScript == ScriptEmoji

	// Neutral characters stay in the font of the text around them.
	if charScript.IsCommon() && current != 0 && client.IsCharacterSupported(current, r) {
		return current
	}

	requested := client.GetFontID(desc, size)
	if requested != 0 && client.IsCharacterSupported(requested, r) &&
		(!isEmoji || client.HasColorGlyphs(requested)) {
		return requested
	}

	script := runScript
	if !charScript.IsCommon() && charScript != ScriptUnknown {
		script = charScript
	}
	key := descriptionKey{desc: desc, size: math.Float32bits(size)}
	perScript := m.defaultFonts[script]
	if perScript == nil {
		perScript = make(map[descriptionKey]FontID)
		m.defaultFonts[script] = perScript
	}
	if cached, ok := perScript[key]; ok && client.IsCharacterSupported(cached, r) {
		return cached
	}
	for _, valid := range m.validFonts[script] {
		if client.PointSize(valid) == size && client.IsCharacterSupported(valid, r) &&
			(!isEmoji || client.HasColorGlyphs(valid)) {
			perScript[key] = valid
			return valid
		}
	}

	id := client.FindFallbackFont(requested, r, size, isEmoji)
	if id == 0 && isEmoji {
		// No color font; a monochrome glyph is better than none.
		id = client.FindFallbackFont(requested, r, size, false)
	}
	if id == 0 {
		if latin, ok := m.defaultFonts[ScriptLatin][key]; ok && client.IsCharacterSupported(latin, r) {
			id = latin
		}
	}
	if id == 0 {
		id = client.FindDefaultFont(r, size)
		logger().Warn("text: no font supports character, using default",
			"rune", r, "script", script.String(), "font", id)
	}
	if id == 0 {
		return requested
	}

	perScript[key] = id
	m.validFonts[script] = appendUniqueFont(m.validFonts[script], id)
	return id
}

func appendUniqueFont(ids []FontID, id FontID) []FontID {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

// splitFontRuns returns the parts of runs that lie before start and at or
// after end.
func splitFontRuns(runs []FontRun, start, end CharacterIndex) (head, tail []FontRun) {
	for _, run := range runs {
		if run.CharacterIndex < start {
			r := run
			if r.End() > start {
				r.NumberOfCharacters = start - r.CharacterIndex
			}
			head = append(head, r)
		}
		if run.End() > end {
			r := run
			if r.CharacterIndex < end {
				r.NumberOfCharacters = r.End() - end
				r.CharacterIndex = end
			}
			tail = append(tail, r)
		}
	}
	return head, tail
}

func appendFontRun(runs []FontRun, run FontRun, text []rune) []FontRun {
	if n := len(runs); n > 0 {
		last := &runs[n-1]
		if last.FontID == run.FontID && last.End() == run.CharacterIndex &&
			!IsNewParagraph(text[run.CharacterIndex-1]) {
			last.NumberOfCharacters += run.NumberOfCharacters
			return runs
		}
	}
	return append(runs, run)
}
