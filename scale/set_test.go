package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPitchClassSetBasics(t *testing.T) {
	s := NewPitchClassSet(7, 0, 4, 4, 12, -3)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{0, 4, 7}, s.Slice())
	assert.True(t, s.Has(4))
	assert.False(t, s.Has(5))
	assert.False(t, s.Has(16))

	assert.Equal(t, []int{0, 7}, s.Remove(4).Slice())
	assert.Equal(t, []int{0, 4, 7, 11}, s.Add(11).Slice())
	assert.Equal(t, []int{0, 7}, s.Toggle(4).Slice())
	assert.Equal(t, []int{0, 4, 7, 9}, s.Toggle(9).Slice())
	assert.Equal(t, s, s.Toggle(40))
}

func TestPitchClassSetEmptySliceIsNotNil(t *testing.T) {
	var s PitchClassSet
	assert.True(t, s.Empty())
	assert.NotNil(t, s.Slice())
	assert.Len(t, s.Slice(), 0)
}

func TestPitchClassSetTranspose(t *testing.T) {
	major := NewPitchClassSet(0, 2, 4, 5, 7, 9, 11)
	assert.Equal(t, []int{0, 2, 4, 6, 7, 9, 11}, major.Transpose(7).Slice())
	assert.Equal(t, major, major.Transpose(12))
	assert.Equal(t, major.Transpose(11), major.Transpose(-1))
	assert.Equal(t, []int{0, 1}, NewPitchClassSet(11, 0).Transpose(1).Slice())
}

func TestPitchClassSetAlgebra(t *testing.T) {
	a := NewPitchClassSet(0, 1, 2)
	b := NewPitchClassSet(2, 3)
	assert.Equal(t, []int{2}, a.Intersect(b).Slice())
	assert.Equal(t, []int{0, 1}, a.Minus(b).Slice())
}

func TestSelectionIsImmutable(t *testing.T) {
	base := NewSelection(0, 4)
	next := base.ToggleNote(7).SetRoot(2)

	assert.Equal(t, []int{0, 4}, base.Notes())
	_, ok := base.Root()
	assert.False(t, ok)

	assert.Equal(t, []int{0, 4, 7}, next.Notes())
	root, ok := next.Root()
	assert.True(t, ok)
	assert.Equal(t, 2, root)

	_, ok = next.SetRoot(99).Root()
	assert.False(t, ok)
}
