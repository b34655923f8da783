package model

type TempoState struct {
	// BPM is meaningful only when Defined is true
	BPM     int  `json:"bpm"`
	Defined bool `json:"defined"`
	Taps    int  `json:"taps"`
}

type DelayRow struct {
	Note       string  `json:"note"`
	StraightMs float64 `json:"straight_ms"`
	DottedMs   float64 `json:"dotted_ms"`
	TripletMs  float64 `json:"triplet_ms"`
	Hz         float64 `json:"hz"`
}

type ReverbPreset struct {
	Name       string  `json:"name"`
	PreDelayMs float64 `json:"pre_delay_ms"`
	DecayMs    float64 `json:"decay_ms"`
	TotalMs    float64 `json:"total_ms"`
}
