package delay

import (
	"math"

	"github.com/jsphweid/musixbooth/model"
	"github.com/pkg/errors"
)

const (
	DefaultBPM = 120
	MaxBPM     = 999
)

var ErrInvalidTempo = errors.New("tempo must be above 0 and at most 999 bpm")

type noteValue struct {
	name string
	// fraction of a whole note
	fraction float64
}

var noteValues = []noteValue{
	{"1/1", 1},
	{"1/2", 1.0 / 2},
	{"1/4", 1.0 / 4},
	{"1/8", 1.0 / 8},
	{"1/16", 1.0 / 16},
	{"1/32", 1.0 / 32},
	{"1/64", 1.0 / 64},
}

type reverbPreset struct {
	name     string
	preDelay float64
	total    float64
}

var reverbPresets = []reverbPreset{
	{"Hall", 1.0 / 64, 1},
	{"Large Room", 1.0 / 128, 1.0 / 2},
	{"Small Room", 1.0 / 256, 1.0 / 4},
	{"Tight Ambience", 1.0 / 512, 1.0 / 8},
}

type Calculator struct {
	bpm float64
}

func NewCalculator(bpm float64) (*Calculator, error) {
	if math.IsNaN(bpm) || bpm <= 0 || bpm > MaxBPM {
		return nil, errors.Wrapf(ErrInvalidTempo, "got %v", bpm)
	}
	return &Calculator{bpm: bpm}, nil
}

func (c *Calculator) BPM() float64 {
	return c.bpm
}

func (c *Calculator) QuarterMs() float64 {
	return 60000 / c.bpm
}

// NoteMs is the length in milliseconds of the given fraction of a whole note.
func (c *Calculator) NoteMs(fraction float64) float64 {
	return 4 * c.QuarterMs() * fraction
}

func (c *Calculator) Delays() []model.DelayRow {
	res := make([]model.DelayRow, 0, len(noteValues))
	for _, nv := range noteValues {
		straight := c.NoteMs(nv.fraction)
		res = append(res, model.DelayRow{
			Note:       nv.name,
			StraightMs: round2(straight),
			DottedMs:   round2(straight * 1.5),
			TripletMs:  round2(straight * 2 / 3),
			Hz:         round2(1000 / straight),
		})
	}
	return res
}

func (c *Calculator) Reverbs() []model.ReverbPreset {
	res := make([]model.ReverbPreset, 0, len(reverbPresets))
	for _, p := range reverbPresets {
		pre := c.NoteMs(p.preDelay)
		total := c.NoteMs(p.total)
		res = append(res, model.ReverbPreset{
			Name:       p.name,
			PreDelayMs: round2(pre),
			DecayMs:    round2(total - pre),
			TotalMs:    round2(total),
		})
	}
	return res
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
