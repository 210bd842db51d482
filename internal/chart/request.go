// Package chart builds the median-vs-reference comparison and renders it
package chart

import (
	"fmt"
	"io"
	"strconv"
)

// Bar is one labeled value of a bar chart
type Bar struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
	Annotation string  `json:"annotation"`
}

// Request is everything a renderer needs to draw a bar chart
type Request struct {
	Title  string  `json:"title"`
	YLabel string  `json:"y_label"`
	YMax   float64 `json:"y_max"`
	Bars   []Bar   `json:"bars"`
}

// Renderer draws a chart request
type Renderer interface {
	Render(w io.Writer, req Request) error
}

// Subject names the extracted statistic in chart labels
type Subject struct {
	Field string
	Index int
}

// DefaultSubject is the team sensitivity at the last trial
var DefaultSubject = Subject{Field: "dPrimeTeam", Index: 199}

// Bar colors
const (
	ColorMedian    = "cornflowerblue"
	ColorReference = "lightcoral"
)

// CompareToReference builds the default dPrimeTeam comparison chart
func CompareToReference(computed, reference float64) Request {
	return Compare(DefaultSubject, computed, reference)
}

// Compare builds a chart comparing the computed median of subject to a
// reference value
func Compare(subject Subject, computed, reference float64) Request {
	ref := strconv.FormatFloat(reference, 'f', -1, 64)
	return Request{
		Title:  fmt.Sprintf("Median %s vs Reference Value (%s)", subject.Field, ref),
		YLabel: fmt.Sprintf("%s Value", subject.Field),
		YMax:   max(computed, reference) + 1,
		Bars: []Bar{
			{
				Label:      fmt.Sprintf("Median (index %d)", subject.Index),
				Value:      computed,
				Color:      ColorMedian,
				Annotation: fmt.Sprintf("%.2f", computed),
			},
			{
				Label:      fmt.Sprintf("Reference (%s)", ref),
				Value:      reference,
				Color:      ColorReference,
				Annotation: fmt.Sprintf("%.2f", reference),
			},
		},
	}
}
