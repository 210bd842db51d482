// Package models contains the data structures shared by the PsyKi tools
package models

// Color codes understood by the experiment runner
const (
	ColorBreak  = 0  // Neutral/break trial
	ColorOrange = 48 // Orange stimulus
	ColorBlue   = 52 // Blue stimulus
)

// StimulusColors are the codes a non-break trial can take
var StimulusColors = []int{ColorOrange, ColorBlue}

// Trial is a single main phase trial configuration
type Trial struct {
	Index      int      `json:"index"`
	Color      int      `json:"color"`
	AIAccuracy float64  `json:"aiAccuracy"`
	Divergence *float64 `json:"divergence,omitempty"`
}

// IsBreak reports whether the trial is a neutral break trial
func (t Trial) IsBreak() bool {
	return t.Color == ColorBreak
}

// TestTrial is a calibration (test phase) trial configuration
type TestTrial struct {
	Index int `json:"index"`
	Color int `json:"color"`
}
