package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RunKind identifies which tool produced a run
type RunKind string

const (
	RunKindGenerate RunKind = "generate"
	RunKindExtract  RunKind = "extract"
)

// Run is a single recorded invocation of one of the tools
type Run struct {
	ID               string  `json:"id" db:"id"`
	Kind             RunKind `json:"kind" db:"kind"`
	CreatedTimestamp float64 `json:"created_timestamp" db:"created_timestamp"`
	ParamsJSON       string  `json:"-" db:"params"`
	SummaryJSON      string  `json:"-" db:"summary"`

	Params  map[string]any `json:"params" db:"-"`
	Summary map[string]any `json:"summary" db:"-"`
}

// NewRun creates a new run record
func NewRun(kind RunKind, params, summary map[string]any) *Run {
	if params == nil {
		params = make(map[string]any)
	}
	if summary == nil {
		summary = make(map[string]any)
	}
	return &Run{
		ID:               uuid.New().String(),
		Kind:             kind,
		CreatedTimestamp: float64(time.Now().UnixMilli()) / 1000.0,
		Params:           params,
		Summary:          summary,
	}
}

// Encode serializes Params and Summary into their DB columns
func (r *Run) Encode() error {
	params, err := json.Marshal(r.Params)
	if err != nil {
		return err
	}
	summary, err := json.Marshal(r.Summary)
	if err != nil {
		return err
	}
	r.ParamsJSON = string(params)
	r.SummaryJSON = string(summary)
	return nil
}

// Decode restores Params and Summary from their DB columns
func (r *Run) Decode() error {
	if r.ParamsJSON != "" {
		if err := json.Unmarshal([]byte(r.ParamsJSON), &r.Params); err != nil {
			return err
		}
	}
	if r.SummaryJSON != "" {
		if err := json.Unmarshal([]byte(r.SummaryJSON), &r.Summary); err != nil {
			return err
		}
	}
	return nil
}

// CreatedAt returns the creation time
func (r *Run) CreatedAt() time.Time {
	return time.UnixMilli(int64(r.CreatedTimestamp * 1000))
}
