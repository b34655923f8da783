package midi

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Errorf("parsing midi file panicked: %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	return Parse(dat)
}

func Parse(dat []byte) (*smf.SMF, error) {
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

// PitchClasses collects the pitch class of every sounding note-on across
// all tracks, ascending. Note-ons with velocity 0 are note-offs and skipped.
func PitchClasses(s *smf.SMF) []int {
	var seen [12]bool
	for _, track := range s.Tracks {
		for _, event := range track {
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
				seen[key%12] = true
			}
		}
	}

	res := make([]int, 0, 12)
	for pc, ok := range seen {
		if ok {
			res = append(res, pc)
		}
	}
	return res
}

func PitchClassesFromFile(path string) ([]int, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	res := PitchClasses(s)
	if len(res) == 0 {
		return nil, errors.Errorf("%s has no notes", path)
	}
	return res, nil
}
