package model

type MatchRequestBody struct {
	Notes PitchClasses `json:"notes" validate:"required,min=1,max=12,dive,min=0,max=11"`
	Root  *int         `json:"root,omitempty" validate:"omitempty,min=0,max=11"`
}

type MatchResponse struct {
	Notes   PitchClasses `json:"notes"`
	Matches []Match      `json:"matches"`
}

type TempoRequestBody struct {
	Taps []int64 `json:"taps" validate:"required,max=1024"`
}

type LastTempoBody struct {
	BPM int `json:"bpm" validate:"min=20,max=999"`
}

type DelayResponse struct {
	BPM     float64        `json:"bpm"`
	Delays  []DelayRow     `json:"delays"`
	Reverbs []ReverbPreset `json:"reverbs"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
