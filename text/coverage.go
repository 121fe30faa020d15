package text

// coverage memoizes which runes a font has a glyph for.
// Two bits per rune, (checked, supported), in blocks of 256 runes
// allocated on first use. It is not safe for concurrent use; FontClient
// serializes access.
type coverage struct {
	blocks map[uint32]*coverageBlock
}

type coverageBlock struct {
	checked   [4]uint64
	supported [4]uint64
}

func newCoverage() *coverage {
	return &coverage{blocks: make(map[uint32]*coverageBlock)}
}

func coverageSlot(r rune) (block uint32, word int, bit uint64) {
	u := uint32(r)
	off := u & 0xFF
	return u >> 8, int(off >> 6), 1 << (off & 63)
}

// lookup returns (supported, checked).
func (c *coverage) lookup(r rune) (supported, checked bool) {
	blk, word, bit := coverageSlot(r)
	b, ok := c.blocks[blk]
	if !ok {
		return false, false
	}
	return b.supported[word]&bit != 0, b.checked[word]&bit != 0
}

func (c *coverage) store(r rune, supported bool) {
	blk, word, bit := coverageSlot(r)
	b, ok := c.blocks[blk]
	if !ok {
		b = &coverageBlock{}
		c.blocks[blk] = b
	}
	b.checked[word] |= bit
	if supported {
		b.supported[word] |= bit
	} else {
		b.supported[word] &^= bit
	}
}
