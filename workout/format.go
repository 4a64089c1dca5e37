package workout

import "fmt"

// Formatter renders the display strings embedded in a summary. Swap it to
// localize output.
type Formatter interface {
	RangeDegrees(start, end int64) string
	RangePercentage(left, right int64) string
	Placeholder() string
	SetHeader() []string
}

// DefaultFormatter renders English strings.
type DefaultFormatter struct{}

func (DefaultFormatter) RangeDegrees(start, end int64) string {
	return fmt.Sprintf("%d°–%d°", start, end)
}

func (DefaultFormatter) RangePercentage(left, right int64) string {
	return fmt.Sprintf("%d%%–%d%%", left, right)
}

func (DefaultFormatter) Placeholder() string { return "-" }

func (DefaultFormatter) SetHeader() []string {
	return []string{"set", "reps", "weight", "duration"}
}
