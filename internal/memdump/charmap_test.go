package memdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharMap_InsertOrVerify(t *testing.T) {
	m := NewCharMap()

	r, ok := m.InsertOrVerify(0x41, 'A')
	assert.True(t, ok)
	assert.Equal(t, 'A', r)

	r, ok = m.InsertOrVerify(0x41, 'A')
	assert.True(t, ok)
	assert.Equal(t, 'A', r)

	r, ok = m.InsertOrVerify(0x41, 'B')
	assert.False(t, ok)
	assert.Equal(t, 'A', r, "previous mapping must be reported")

	got, found := m.Lookup(0x41)
	require.True(t, found)
	assert.Equal(t, 'A', got, "a rejected insert must not overwrite")
	assert.Equal(t, 1, m.Len())
}

func TestCharMap_ManyBytesOneChar(t *testing.T) {
	m := NewCharMap()
	_, ok := m.InsertOrVerify(0x00, '.')
	require.True(t, ok)
	_, ok = m.InsertOrVerify(0xff, '.')
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())
}

func TestCharMap_ApplyIsAllOrNothing(t *testing.T) {
	m := NewCharMap()
	_, _, _, ok := m.apply([]byte{0x41}, []rune("A"))
	require.True(t, ok)

	b, got, prev, ok := m.apply([]byte{0x42, 0x41}, []rune("BX"))
	assert.False(t, ok)
	assert.Equal(t, byte(0x41), b)
	assert.Equal(t, 'X', got)
	assert.Equal(t, 'A', prev)

	_, found := m.Lookup(0x42)
	assert.False(t, found, "mappings from a rejected line must not be committed")
}

func TestCharMap_ApplyWithinLineConflict(t *testing.T) {
	m := NewCharMap()
	_, _, _, ok := m.apply([]byte{0x41, 0x41}, []rune("AB"))
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestCharMap_ApplyShortASCII(t *testing.T) {
	m := NewCharMap()
	_, _, _, ok := m.apply([]byte{0x41, 0x42, 0x43}, []rune("A"))
	require.True(t, ok)
	assert.Equal(t, 1, m.Len())
}
