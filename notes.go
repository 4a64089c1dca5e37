package fitsummary

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasjlepore/fit-summary/summary"
	"github.com/lucasjlepore/fit-summary/workout"
)

// BuildNotes renders a report as plain text: a short header followed by one
// line per summary entry in emission order.
func BuildNotes(r *Report) string {
	if r == nil || r.Activity == nil {
		return ""
	}
	a := r.Activity

	var b strings.Builder

	name := a.Name
	if name == "" {
		name = a.Kind.String()
	}
	fmt.Fprintf(&b, "Workout: %s (%s)\n", name, a.Kind)
	if !a.StartTime.IsZero() {
		fmt.Fprintf(&b, "Start: %s\n", a.StartTime.Format("2006-01-02 15:04:05"))
	}
	if a.EndTime != nil {
		fmt.Fprintf(&b, "Elapsed: %s\n", formatDuration(a.EndTime.Sub(a.StartTime).Seconds()))
	}
	if r.FileID != nil {
		fmt.Fprintf(&b, "Device: %s %s\n", r.FileID.Manufacturer, r.FileID.Product)
	}
	fmt.Fprintf(&b, "Records: %d (%d unhandled)\n", r.RecordCount, r.Unhandled)

	b.WriteString("\nSummary\n")
	for _, e := range a.Summary.Entries() {
		if e.Key == workout.KeyInternalHasGPS {
			continue
		}
		row, isRow := e.Value.(summary.TableRow)
		switch {
		case isRow && row.Header:
			fmt.Fprintf(&b, "- %s\n", strings.Join(cellTexts(row), " | "))
		case isRow:
			fmt.Fprintf(&b, "  %s\n", strings.Join(cellTexts(row), " | "))
		default:
			fmt.Fprintf(&b, "- %s: %s\n", e.Key, valueWithUnit(e))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return strings.TrimSpace(b.String())
}

func valueWithUnit(e summary.Entry) string {
	text := summary.FormatValue(e.Value)
	if e.Unit == "" {
		return text
	}
	if e.Unit == summary.UnitSeconds {
		if n, ok := e.Value.(summary.Number); ok && n >= 60 {
			return formatDuration(float64(n))
		}
	}
	return text + " " + e.Unit
}

func cellTexts(row summary.TableRow) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = fmt.Sprint(c.Value)
		if c.Unit != "" {
			out[i] += " " + c.Unit
		}
	}
	return out
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	s := int(math.Round(seconds))
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
