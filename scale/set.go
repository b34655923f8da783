package scale

import (
	"math/bits"
)

// PitchClassSet is a set of pitch classes, bit i standing for pitch class i.
type PitchClassSet uint16

const allPitchClasses PitchClassSet = 1<<12 - 1

// NewPitchClassSet builds a set, dropping duplicates and values outside 0..11.
func NewPitchClassSet(notes ...int) PitchClassSet {
	var s PitchClassSet
	for _, n := range notes {
		s = s.Add(n)
	}
	return s
}

func valid(pc int) bool {
	return pc >= 0 && pc <= 11
}

func (s PitchClassSet) Has(pc int) bool {
	return valid(pc) && s&(1<<pc) != 0
}

func (s PitchClassSet) Add(pc int) PitchClassSet {
	if !valid(pc) {
		return s
	}
	return s | 1<<pc
}

func (s PitchClassSet) Remove(pc int) PitchClassSet {
	if !valid(pc) {
		return s
	}
	return s &^ (1 << pc)
}

func (s PitchClassSet) Toggle(pc int) PitchClassSet {
	if !valid(pc) {
		return s
	}
	return s ^ 1<<pc
}

func (s PitchClassSet) Len() int {
	return bits.OnesCount16(uint16(s & allPitchClasses))
}

func (s PitchClassSet) Empty() bool {
	return s&allPitchClasses == 0
}

func (s PitchClassSet) Intersect(o PitchClassSet) PitchClassSet {
	return s & o
}

// Minus returns the members of s that are not in o.
func (s PitchClassSet) Minus(o PitchClassSet) PitchClassSet {
	return s &^ o
}

// Transpose shifts every member up by n semitones, wrapping at the octave.
func (s PitchClassSet) Transpose(n int) PitchClassSet {
	n = ((n % 12) + 12) % 12
	s &= allPitchClasses
	return (s<<n | s>>(12-n)) & allPitchClasses
}

// Slice lists the members in ascending order. It never returns nil.
func (s PitchClassSet) Slice() []int {
	res := make([]int, 0, s.Len())
	for pc := 0; pc < 12; pc++ {
		if s.Has(pc) {
			res = append(res, pc)
		}
	}
	return res
}
