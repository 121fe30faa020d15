package text

import (
	"slices"

	"golang.org/x/text/unicode/bidi"
)

// maxDepth is the deepest explicit embedding level (UAX #9 BD2).
const maxDepth = 125

// bidiClass returns the bidirectional class of r.
func bidiClass(r rune) bidi.Class {
	props, _ := bidi.LookupRune(r)
	return props.Class()
}

// paragraphLevel applies rules P2 and P3: the level of the first strong
// character, or 0.
func paragraphLevel(text []rune) uint8 {
	for _, r := range text {
		switch bidiClass(r) {
		case bidi.L:
			return 0
		case bidi.R, bidi.AL:
			return 1
		}
	}
	return 0
}

// paragraphResolver resolves the embedding levels of one paragraph.
type paragraphResolver struct {
	text    []rune
	base    uint8
	classes []bidi.Class
	orig    []bidi.Class
	levels  []uint8
	removed []bool // X9
}

// resolveLevels runs the paragraph part of UAX #9 (X1 to I2) over text and
// returns one level per character plus, for rule L1, which characters are
// white space that resets to the paragraph level at the end of a line.
//
// Isolate initiators and PDI are treated as other neutrals.
func resolveLevels(text []rune, base uint8) (levels []uint8, whitespace []bool) {
	p := &paragraphResolver{
		text:    text,
		base:    base,
		classes: make([]bidi.Class, len(text)),
		orig:    make([]bidi.Class, len(text)),
		levels:  make([]uint8, len(text)),
		removed: make([]bool, len(text)),
	}
	whitespace = make([]bool, len(text))
	for i, r := range text {
		c := bidiClass(r)
		switch c {
		case bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI:
			// Isolates are not supported: every level run is its own
			// isolating run sequence, so the isolate controls are ON.
			c = bidi.ON
		case bidi.Control:
			c = bidi.BN
		}
		p.classes[i] = c
		p.orig[i] = c
		whitespace[i] = c == bidi.WS || c == bidi.BN ||
			c == bidi.LRE || c == bidi.RLE || c == bidi.LRO || c == bidi.RLO || c == bidi.PDF
	}

	p.explicitLevels()
	for _, run := range p.levelRuns() {
		p.resolveWeak(run)
		p.resolveBrackets(run)
		p.resolveNeutral(run)
		p.resolveImplicit(run)
	}
	p.finish(whitespace)
	return p.levels, whitespace
}

type levelRun struct {
	indices  []int
	sor, eor bidi.Class
}

type embedding struct {
	level    uint8
	override bidi.Class // bidi.ON when there is none
}

// explicitLevels applies X1 to X9.
func (p *paragraphResolver) explicitLevels() {
	stack := []embedding{{level: p.base, override: bidi.ON}}
	overflow := 0
	for i, c := range p.classes {
		top := stack[len(stack)-1]
		switch c {
		case bidi.RLE, bidi.LRE, bidi.RLO, bidi.LRO:
			next := top.level + 1 // least greater odd
			if top.level%2 == 1 {
				next++
			}
			if c == bidi.LRE || c == bidi.LRO {
				next = top.level + 2 - top.level%2 // least greater even
			}
			override := bidi.ON
			switch c {
			case bidi.RLO:
				override = bidi.R
			case bidi.LRO:
				override = bidi.L
			}
			if next <= maxDepth && overflow == 0 {
				stack = append(stack, embedding{level: next, override: override})
			} else {
				overflow++
			}
			p.levels[i] = top.level
			p.removed[i] = true
		case bidi.PDF:
			if overflow > 0 {
				overflow--
			} else if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			p.levels[i] = top.level
			p.removed[i] = true
		case bidi.B:
			p.levels[i] = p.base
		case bidi.BN:
			p.levels[i] = top.level
			p.removed[i] = true
		default:
			p.levels[i] = top.level
			if top.override != bidi.ON {
				p.classes[i] = top.override
			}
		}
	}
}

func directionOf(level uint8) bidi.Class {
	if level%2 == 1 {
		return bidi.R
	}
	return bidi.L
}

// levelRuns applies X10, skipping removed characters.
func (p *paragraphResolver) levelRuns() []levelRun {
	var runs []levelRun
	var current []int
	prevLevel := p.base
	for i := range p.classes {
		if p.removed[i] {
			continue
		}
		if len(current) > 0 && p.levels[i] != p.levels[current[0]] {
			runs = append(runs, levelRun{indices: current})
			current = nil
		}
		current = append(current, i)
	}
	if len(current) > 0 {
		runs = append(runs, levelRun{indices: current})
	}
	for k := range runs {
		level := p.levels[runs[k].indices[0]]
		next := p.base
		if k+1 < len(runs) {
			next = p.levels[runs[k+1].indices[0]]
		}
		runs[k].sor = directionOf(max(prevLevel, level))
		runs[k].eor = directionOf(max(level, next))
		prevLevel = level
	}
	return runs
}

// resolveWeak applies W1 to W7.
func (p *paragraphResolver) resolveWeak(run levelRun) {
	cls := p.classes
	idx := run.indices

	// W1, W2, W3
	prevType := run.sor
	lastStrong := run.sor
	for _, i := range idx {
		c := cls[i]
		if c == bidi.NSM {
			c = prevType
			cls[i] = c
		}
		switch c {
		case bidi.EN:
			if lastStrong == bidi.AL {
				cls[i] = bidi.AN
			}
		case bidi.L, bidi.R, bidi.AL:
			lastStrong = c
		}
		prevType = cls[i]
	}
	for _, i := range idx {
		if cls[i] == bidi.AL {
			cls[i] = bidi.R
		}
	}

	// W4
	for k := 1; k+1 < len(idx); k++ {
		prev, c, next := cls[idx[k-1]], cls[idx[k]], cls[idx[k+1]]
		switch {
		case c == bidi.ES && prev == bidi.EN && next == bidi.EN:
			cls[idx[k]] = bidi.EN
		case c == bidi.CS && prev == next && (prev == bidi.EN || prev == bidi.AN):
			cls[idx[k]] = prev
		}
	}

	// W5
	for k := 0; k < len(idx); k++ {
		if cls[idx[k]] != bidi.ET {
			continue
		}
		end := k
		for end < len(idx) && cls[idx[end]] == bidi.ET {
			end++
		}
		adjacent := (k > 0 && cls[idx[k-1]] == bidi.EN) || (end < len(idx) && cls[idx[end]] == bidi.EN)
		if adjacent {
			for j := k; j < end; j++ {
				cls[idx[j]] = bidi.EN
			}
		}
		k = end - 1
	}

	// W6
	for _, i := range idx {
		switch cls[i] {
		case bidi.ES, bidi.ET, bidi.CS:
			cls[i] = bidi.ON
		}
	}

	// W7
	lastStrong = run.sor
	for _, i := range idx {
		switch cls[i] {
		case bidi.EN:
			if lastStrong == bidi.L {
				cls[i] = bidi.L
			}
		case bidi.L, bidi.R:
			lastStrong = cls[i]
		}
	}
}

func isNeutral(c bidi.Class) bool {
	return c == bidi.B || c == bidi.S || c == bidi.WS || c == bidi.ON
}

// strongDirection maps numbers to R for the purpose of N1.
func strongDirection(c bidi.Class) bidi.Class {
	if c == bidi.EN || c == bidi.AN {
		return bidi.R
	}
	return c
}

// maxBracketDepth is the size of the BD16 opening bracket stack.
const maxBracketDepth = 63

// bracketPair holds the positions, within a level run, of the two
// brackets of a pair.
type bracketPair struct {
	open, close int
}

// bracketID identifies the pair a bracket belongs to: the canonical
// opening bracket.
func bracketID(r rune, opening bool) rune {
	if !opening {
		r, _ = mirror(r)
	}
	switch r {
	case '\u2329':
		return '\u3008'
	case '\u232A':
		return '\u3009'
	}
	return r
}

// pairBrackets applies BD16 to run and returns the pairs ordered by the
// position of their opening bracket. Only brackets whose class is still
// ON take part.
func (p *paragraphResolver) pairBrackets(run levelRun) []bracketPair {
	type opener struct {
		pos int
		id  rune
	}
	var stack []opener
	var pairs []bracketPair
	for k, i := range run.indices {
		if p.classes[i] != bidi.ON {
			continue
		}
		props, _ := bidi.LookupRune(p.text[i])
		if !props.IsBracket() {
			continue
		}
		if props.IsOpeningBracket() {
			if len(stack) == maxBracketDepth {
				break
			}
			stack = append(stack, opener{pos: k, id: bracketID(p.text[i], true)})
			continue
		}
		id := bracketID(p.text[i], false)
		for s := len(stack) - 1; s >= 0; s-- {
			if stack[s].id == id {
				pairs = append(pairs, bracketPair{open: stack[s].pos, close: k})
				stack = stack[:s]
				break
			}
		}
	}
	slices.SortFunc(pairs, func(a, b bracketPair) int { return a.open - b.open })
	return pairs
}

// strongN0 maps a class to the strong direction rule N0 sees: numbers
// count as R, and everything else that is not strong is ON.
func strongN0(c bidi.Class) bidi.Class {
	switch c {
	case bidi.L:
		return bidi.L
	case bidi.R, bidi.AL, bidi.EN, bidi.AN:
		return bidi.R
	}
	return bidi.ON
}

// resolveBrackets applies N0 to the bracket pairs of run.
func (p *paragraphResolver) resolveBrackets(run levelRun) {
	cls := p.classes
	idx := run.indices
	if len(idx) == 0 {
		return
	}
	embedding := directionOf(p.levels[idx[0]])
	for _, pair := range p.pairBrackets(run) {
		inside := bidi.ON
		for k := pair.open + 1; k < pair.close; k++ {
			d := strongN0(cls[idx[k]])
			if d == bidi.ON {
				continue
			}
			inside = d
			if d == embedding {
				break
			}
		}
		if inside == bidi.ON {
			continue // N0 d
		}
		dir := inside
		if inside != embedding {
			// N0 c: keep the opposite direction only when the context
			// before the pair has it too.
			before := run.sor
			for k := pair.open - 1; k >= 0; k-- {
				if d := strongN0(cls[idx[k]]); d != bidi.ON {
					before = d
					break
				}
			}
			if before != inside {
				dir = embedding
			}
		}
		for _, k := range []int{pair.open, pair.close} {
			cls[idx[k]] = dir
			for j := k + 1; j < len(idx) && p.orig[idx[j]] == bidi.NSM; j++ {
				cls[idx[j]] = dir
			}
		}
	}
}

// resolveNeutral applies N1 and N2.
func (p *paragraphResolver) resolveNeutral(run levelRun) {
	cls := p.classes
	idx := run.indices
	for k := 0; k < len(idx); k++ {
		if !isNeutral(cls[idx[k]]) {
			continue
		}
		end := k
		for end < len(idx) && isNeutral(cls[idx[end]]) {
			end++
		}
		before := run.sor
		if k > 0 {
			before = strongDirection(cls[idx[k-1]])
		}
		after := run.eor
		if end < len(idx) {
			after = strongDirection(cls[idx[end]])
		}
		resolved := directionOf(p.levels[idx[k]])
		if before == after {
			resolved = before
		}
		for j := k; j < end; j++ {
			cls[idx[j]] = resolved
		}
		k = end - 1
	}
}

// resolveImplicit applies I1 and I2.
func (p *paragraphResolver) resolveImplicit(run levelRun) {
	for _, i := range run.indices {
		c := p.classes[i]
		if p.levels[i]%2 == 0 {
			switch c {
			case bidi.R:
				p.levels[i]++
			case bidi.AN, bidi.EN:
				p.levels[i] += 2
			}
		} else if c == bidi.L || c == bidi.EN || c == bidi.AN {
			p.levels[i]++
		}
	}
}

// finish gives removed characters the level of the preceding character
// and applies the position independent part of L1: separators, and the
// white space before them, reset to the paragraph level.
func (p *paragraphResolver) finish(whitespace []bool) {
	prev := p.base
	for i := range p.levels {
		if p.removed[i] {
			p.levels[i] = prev
		}
		prev = p.levels[i]
	}
	reset := true
	for i := len(p.levels) - 1; i >= 0; i-- {
		orig := p.orig[i]
		switch {
		case orig == bidi.B || orig == bidi.S:
			p.levels[i] = p.base
			reset = true
		case reset && whitespace[i]:
			p.levels[i] = p.base
		default:
			reset = false
		}
	}
}

// reverseLevels applies rule L2 to levels and returns the visual to logical
// map of the sequence, and whether any reversal happened.
func reverseLevels(levels []uint8) ([]CharacterIndex, bool) {
	order := make([]CharacterIndex, len(levels))
	for i := range order {
		order[i] = CharacterIndex(i)
	}
	var highest uint8
	lowestOdd := uint8(maxDepth + 2)
	for _, l := range levels {
		highest = max(highest, l)
		if l%2 == 1 {
			lowestOdd = min(lowestOdd, l)
		}
	}
	if lowestOdd > highest {
		return order, false
	}
	for level := highest; level >= lowestOdd; level-- {
		for i := 0; i < len(levels); {
			if levels[order[i]] < level {
				i++
				continue
			}
			j := i
			for j < len(levels) && levels[order[j]] >= level {
				j++
			}
			reverseIndices(order[i:j])
			i = j
		}
	}
	return order, true
}

func reverseIndices(s []CharacterIndex) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
