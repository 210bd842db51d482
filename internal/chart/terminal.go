package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// namedColors maps the chart's CSS color names to terminal hex colors
var namedColors = map[string]string{
	ColorMedian:    "#6495ED",
	ColorReference: "#F08080",
}

// TerminalRenderer draws horizontal bars with lipgloss
type TerminalRenderer struct {
	Width int // cells for a bar reaching YMax
}

// NewTerminalRenderer creates a renderer with the default bar width
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Width: 40}
}

// Render writes req to w
func (t *TerminalRenderer) Render(w io.Writer, req Request) error {
	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true).MarginBottom(1)
	axisStyle := r.NewStyle().Faint(true)

	labelWidth := 0
	for _, b := range req.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}
	labelStyle := r.NewStyle().Width(labelWidth).Align(lipgloss.Right)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(req.Title))
	sb.WriteString("\n")

	for _, b := range req.Bars {
		color := b.Color
		if hex, ok := namedColors[color]; ok {
			color = hex
		}
		barStyle := r.NewStyle().Foreground(lipgloss.Color(color))

		bar := strings.Repeat("█", t.cells(b.Value, req.YMax))
		fmt.Fprintf(&sb, "%s │ %s %s\n", labelStyle.Render(b.Label), barStyle.Render(bar), b.Annotation)
	}

	fmt.Fprintf(&sb, "%s └%s\n", strings.Repeat(" ", labelWidth), strings.Repeat("─", t.width()+1))
	sb.WriteString(axisStyle.Render(fmt.Sprintf("%s (0 to %.2f)", req.YLabel, req.YMax)))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *TerminalRenderer) width() int {
	if t.Width <= 0 {
		return 40
	}
	return t.Width
}

func (t *TerminalRenderer) cells(value, yMax float64) int {
	if yMax <= 0 || value <= 0 {
		return 0
	}
	n := int(math.Round(value / yMax * float64(t.width())))
	return min(n, t.width())
}
