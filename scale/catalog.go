package scale

import (
	"strconv"
	"strings"

	"github.com/jsphweid/musixbooth/model"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// catalog order is part of the ranking tie-break, do not reorder
var templates = []model.ScaleTemplate{
	{Name: "Major", Intervals: []int{0, 2, 4, 5, 7, 9, 11}},
	{Name: "Natural Minor", Intervals: []int{0, 2, 3, 5, 7, 8, 10}},
	{Name: "Harmonic Minor", Intervals: []int{0, 2, 3, 5, 7, 8, 11}},
	{Name: "Melodic Minor", Intervals: []int{0, 2, 3, 5, 7, 9, 11}},
	{Name: "Major Pentatonic", Intervals: []int{0, 2, 4, 7, 9}},
	{Name: "Minor Pentatonic", Intervals: []int{0, 3, 5, 7, 10}},
	{Name: "Blues", Intervals: []int{0, 3, 5, 6, 7, 10}},
	{Name: "Dorian", Intervals: []int{0, 2, 3, 5, 7, 9, 10}},
	{Name: "Phrygian", Intervals: []int{0, 1, 3, 5, 7, 8, 10}},
	{Name: "Lydian", Intervals: []int{0, 2, 4, 6, 7, 9, 11}},
	{Name: "Mixolydian", Intervals: []int{0, 2, 4, 5, 7, 9, 10}},
	{Name: "Locrian", Intervals: []int{0, 1, 3, 5, 6, 8, 10}},
	{Name: "Whole Tone", Intervals: []int{0, 2, 4, 6, 8, 10}},
	{Name: "Diminished", Intervals: []int{0, 1, 3, 4, 6, 7, 9, 10}},
	{Name: "Phrygian Dominant", Intervals: []int{0, 1, 4, 5, 7, 8, 10}},
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flats = map[string]int{"Db": 1, "Eb": 3, "Gb": 6, "Ab": 8, "Bb": 10, "Cb": 11, "Fb": 4, "E#": 5, "B#": 0}

var ErrUnknownNote = errors.New("unknown note")

// Catalog returns a copy of the built-in templates in their fixed order.
func Catalog() []model.ScaleTemplate {
	return copyTemplates(templates)
}

func copyTemplates(ts []model.ScaleTemplate) []model.ScaleTemplate {
	res := make([]model.ScaleTemplate, len(ts))
	for i, t := range ts {
		intervals := make([]int, len(t.Intervals))
		copy(intervals, t.Intervals)
		res[i] = model.ScaleTemplate{Name: t.Name, Intervals: intervals}
	}
	return res
}

func NoteNames() []string {
	res := make([]string, len(noteNames))
	copy(res, noteNames[:])
	return res
}

// NoteName panics for values outside 0..11.
func NoteName(pc int) string {
	return noteNames[pc]
}

// ParseNote accepts a pitch class number ("0".."11") or a note name in any
// case, sharps or flats ("c", "F#", "bb").
func ParseNote(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 11 {
			return 0, errors.Wrapf(ErrUnknownNote, "pitch class %d out of range", n)
		}
		return n, nil
	}

	name := cases.Title(language.English).String(s)
	for i, n := range noteNames {
		if n == name {
			return i, nil
		}
	}
	if pc, ok := flats[name]; ok {
		return pc, nil
	}
	return 0, errors.Wrapf(ErrUnknownNote, "%q", s)
}

func ParseNotes(args []string) ([]int, error) {
	res := make([]int, 0, len(args))
	for _, a := range args {
		pc, err := ParseNote(a)
		if err != nil {
			return nil, err
		}
		res = append(res, pc)
	}
	return res, nil
}

// LookupTemplate finds a catalog entry by name, ignoring case and
// surrounding space.
func LookupTemplate(name string) (model.ScaleTemplate, bool) {
	want := cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
	for _, t := range Catalog() {
		if t.Name == want {
			return t, true
		}
	}
	return model.ScaleTemplate{}, false
}
