package text

import "github.com/gogpu/textmodel/text/emoji"

// SetScripts splits text[start:start+length] into runs of a single script
// and stores them in scripts.
//
// Runs of *scripts that end before start or begin at or after
// start+length are kept; runs overlapping the range are cut at its
// boundaries. Characters of the Common and Inherited scripts join the run
// they are in; at the start of a paragraph they join the first strong
// script that follows. A paragraph separator ends the run that contains it.
// Runs that never see a strong script are Latin. An emoji sequence is
// one Emoji character, so keycaps and joined emoji stay in one run.
func (m *MultilanguageSupport) SetScripts(text []rune, start CharacterIndex, length Length, scripts *[]ScriptRun) {
	if length == 0 {
		return
	}
	end := start + length
	head, tail := splitScriptRuns(*scripts, start, end)

	current := ScriptCommon
	if n := len(head); n > 0 && head[n-1].End() == start && !IsNewParagraph(text[start-1]) {
		current = head[n-1].Script
	}

	runs := make([]ScriptRun, 0, 4)
	emit := func(from, to CharacterIndex, s Script) {
		if to <= from {
			return
		}
		if s.IsCommon() || s == ScriptUnknown {
			s = ScriptLatin
		}
		runs = append(runs, ScriptRun{
			CharacterRun: CharacterRun{CharacterIndex: from, NumberOfCharacters: to - from},
			Script:       s,
		})
	}

	runStart := start
	for i := start; i < end; {
		r := text[i]
		s := DetectScript(r)
		step := CharacterIndex(1)
		if seq := emoji.At(text[i:end]); seq.Length > 0 {
			s = ScriptEmoji
			step = CharacterIndex(seq.Length)
		}
		switch {
		case s.IsCommon():
		case current.IsCommon():
			current = s
		case s != current:
			emit(runStart, i, current)
			runStart = i
			current = s
		}
		if IsNewParagraph(r) {
			emit(runStart, i+1, current)
			runStart = i + 1
			current = ScriptCommon
		}
		i += step
	}
	emit(runStart, end, current)

	result := make([]ScriptRun, 0, len(head)+len(runs)+len(tail))
	result = append(result, head...)
	for _, run := range runs {
		result = appendScriptRun(result, run, text)
	}
	for _, run := range tail {
		result = appendScriptRun(result, run, text)
	}
	*scripts = result

	logger().Debug("text: scripts set",
		"start", start, "length", length, "runs", len(result))
}

// splitScriptRuns returns the parts of runs that lie before start and at
// or after end.
func splitScriptRuns(runs []ScriptRun, start, end CharacterIndex) (head, tail []ScriptRun) {
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

// appendScriptRun appends run to runs, merging it into the last run when
// both share a script and no paragraph separator lies between them.
func appendScriptRun(runs []ScriptRun, run ScriptRun, text []rune) []ScriptRun {
	if n := len(runs); n > 0 {
		last := &runs[n-1]
		if last.Script == run.Script && last.End() == run.CharacterIndex &&
			!IsNewParagraph(text[run.CharacterIndex-1]) {
			last.NumberOfCharacters += run.NumberOfCharacters
			return runs
		}
	}
	return append(runs, run)
}
