package model

type PitchClasses = []int

type ScaleTemplate struct {
	Name      string       `json:"name"`
	Intervals PitchClasses `json:"intervals"`
}

type Match struct {
	Name       string       `json:"name"`
	Root       int          `json:"root"`
	Scale      string       `json:"scale"`
	Percentage int          `json:"percentage"`
	Missing    PitchClasses `json:"missing"`
	Extra      PitchClasses `json:"extra"`
}
