// Package stats provides the descriptive statistics reported by the extractor
package stats

import (
	"errors"
	"slices"
)

// ErrEmptyInput is returned when a statistic is requested for no values
var ErrEmptyInput = errors.New("empty input")

// Median returns the median of values without modifying them
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Summary describes a sample set
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Summarize computes a Summary of values
func Summarize(values []float64) (Summary, error) {
	median, err := Median(values)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Count:  len(values),
		Min:    slices.Min(values),
		Max:    slices.Max(values),
		Median: median,
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	s.Mean = sum / float64(len(values))
	return s, nil
}
