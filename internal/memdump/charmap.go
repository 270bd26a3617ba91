package memdump

// CharMap records which character a dump uses to render each byte value.
// Once a byte value is seen its character is fixed for the rest of the run.
type CharMap struct {
	chars map[byte]rune
}

// NewCharMap returns an empty map.
func NewCharMap() *CharMap {
	return &CharMap{chars: make(map[byte]rune)}
}

// Lookup returns the character recorded for b.
func (c *CharMap) Lookup(b byte) (rune, bool) {
	r, ok := c.chars[b]
	return r, ok
}

// Len returns the number of byte values seen so far.
func (c *CharMap) Len() int {
	return len(c.chars)
}

// InsertOrVerify records r for b, or checks it against the character already
// recorded. It returns the previously recorded character and false on
// divergence.
func (c *CharMap) InsertOrVerify(b byte, r rune) (rune, bool) {
	if prev, ok := c.chars[b]; ok {
		return prev, prev == r
	}
	c.chars[b] = r
	return r, true
}

// apply verifies every (data[i], ascii[i]) pair of one line and commits the
// new mappings only if all of them agree. Pairs beyond the shorter of the two
// slices are not compared.
func (c *CharMap) apply(data []byte, ascii []rune) (byte, rune, rune, bool) {
	staged := make(map[byte]rune)
	for i, b := range data {
		if i >= len(ascii) {
			break
		}
		r := ascii[i]
		if prev, ok := c.chars[b]; ok {
			if prev != r {
				return b, r, prev, false
			}
			continue
		}
		if prev, ok := staged[b]; ok {
			if prev != r {
				return b, r, prev, false
			}
			continue
		}
		staged[b] = r
	}
	for b, r := range staged {
		c.chars[b] = r
	}
	return 0, 0, 0, true
}
