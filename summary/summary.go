// Package summary is the ordered key/value document produced by the workout
// synthesizer. Order is part of the contract: renderers walk entries in the
// order they were first added.
package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Units attached to entries.
const (
	UnitNone             = ""
	UnitSeconds          = "seconds"
	UnitMilliseconds     = "milliseconds"
	UnitMeters           = "meters"
	UnitMillimeters      = "mm"
	UnitKcal             = "kcal"
	UnitMilliliters      = "ml"
	UnitBPM              = "bpm"
	UnitPercentage       = "%"
	UnitBreathsPerMinute = "breaths_per_min"
	UnitKmh              = "km_h"
	UnitWatt             = "watt"
	UnitRPM              = "rpm"
	UnitSPM              = "spm"
	UnitStrokesPerMinute = "strokes_per_min"
	UnitStrokesPerLength = "strokes_per_length"
	UnitJumpsPerMinute   = "jumps_per_min"
	UnitCyclesPerMinute  = "cycles_per_min"
	UnitSteps            = "steps"
	UnitStrokes          = "strokes"
	UnitRevolutions      = "revolutions"
	UnitJumps            = "jumps"
	UnitReps             = "reps"
	UnitCycles           = "cycles"
	UnitMlKgMin          = "ml_kg_min"
	UnitKg               = "kg"
	UnitLb               = "lb"
)

// Value is one of Number, Text, Bool, Progress or TableRow.
type Value interface {
	kind() string
}

// Number is a plain numeric value.
type Number float64

// Text is a preformatted string value.
type Text string

// Bool is a flag value.
type Bool bool

// Progress is a value shown as a share of a whole, e.g. time in a heart
// rate zone.
type Progress struct {
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Percentage int     `json:"percentage"`
	Color      string  `json:"color,omitempty"`
}

// Cell is one column of a TableRow.
type Cell struct {
	Value any    `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// TableRow is one row of a grouped table. Header rows carry column labels.
type TableRow struct {
	Group   string `json:"group"`
	Cells   []Cell `json:"cells"`
	Header  bool   `json:"header"`
	Visible bool   `json:"visible"`
}

func (Number) kind() string { return "number" }
func (Text) kind() string { return "text" }
func (Bool) kind() string { return "bool" }
func (Progress) kind() string { return "progress" }
func (TableRow) kind() string { return "table_row" }

// KindOf names the concrete kind of v ("number", "text", ...).
func KindOf(v Value) string {
	if v == nil {
		return ""
	}
	return v.kind()
}

// Entry is one keyed value of a Summary.
type Entry struct {
	Key            string
	Value          Value
	Unit           string
	HigherIsBetter bool
}

// Summary is an insertion-ordered map of entries. The zero value is ready
// to use.
type Summary struct {
	keys  []string
	index map[string]int
	items []Entry
}

// New returns an empty summary.
func New() *Summary {
	return &Summary{}
}

// Put stores e under e.Key. Re-adding a key replaces the value in place and
// keeps the key's original position.
func (s *Summary) Put(e Entry) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[e.Key]; ok {
		s.items[i] = e
		return
	}
	s.index[e.Key] = len(s.items)
	s.keys = append(s.keys, e.Key)
	s.items = append(s.items, e)
}

// Add stores a value with a unit.
func (s *Summary) Add(key string, v Value, unit string) {
	s.Put(Entry{Key: key, Value: v, Unit: unit})
}

// Get returns the entry stored under key.
func (s *Summary) Get(key string) (Entry, bool) {
	if s == nil || s.index == nil {
		return Entry{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return Entry{}, false
	}
	return s.items[i], true
}

// Has reports whether key is present.
func (s *Summary) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of entries.
func (s *Summary) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Keys returns keys in insertion order.
func (s *Summary) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Entries returns a copy of the entries in insertion order.
func (s *Summary) Entries() []Entry {
	if s == nil {
		return nil
	}
	return append([]Entry(nil), s.items...)
}

type jsonEntry struct {
	Kind           string `json:"kind"`
	Value          any    `json:"value"`
	Unit           string `json:"unit,omitempty"`
	HigherIsBetter bool   `json:"higher_is_better,omitempty"`
}

// MarshalJSON renders the summary as a JSON object whose members keep
// insertion order.
func (s *Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(jsonEntry{
			Kind:           KindOf(e.Value),
			Value:          e.Value,
			Unit:           e.Unit,
			HigherIsBetter: e.HigherIsBetter,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal entry %q: %w", e.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormatValue renders v as display text. Composite values use a compact
// form suitable for CSV cells and plain-text reports.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case Number:
		return formatNumber(float64(x))
	case Text:
		return string(x)
	case Bool:
		if x {
			return "true"
		}
		return "false"
	case Progress:
		return fmt.Sprintf("%s (%d%%)", formatNumber(x.Value), x.Percentage)
	case TableRow:
		var b bytes.Buffer
		for i, c := range x.Cells {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(fmt.Sprint(c.Value))
			if c.Unit != "" {
				b.WriteByte(' ')
				b.WriteString(c.Unit)
			}
		}
		return b.String()
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
