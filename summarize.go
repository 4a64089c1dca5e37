package fitsummary

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/lucasjlepore/fit-summary/decoder"
	"github.com/lucasjlepore/fit-summary/workout"
)

// Config controls how a file is summarized.
type Config struct {
	// UniformSingletons keeps the first physiological metrics record
	// instead of the last.
	UniformSingletons bool
	// Formatter overrides the display strings of the summary.
	Formatter workout.Formatter
	Logger    *zap.Logger
}

// Report is the outcome of summarizing one FIT file.
type Report struct {
	SourceFile  string            `json:"source_file,omitempty"`
	Activity    *workout.Activity `json:"activity"`
	FileID      *decoder.FileID   `json:"file_id,omitempty"`
	RecordCount int               `json:"record_count"`
	Unhandled   int               `json:"unhandled"`
	Warnings    []string          `json:"warnings,omitempty"`
	Took        time.Duration     `json:"took_ns"`

	// Decoded is the raw decode result the summary was built from.
	Decoded *decoder.Result `json:"-"`
}

// SummarizeFile reads and summarizes the FIT file at path.
func SummarizeFile(path string, cfg Config) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fit file: %w", err)
	}
	r, err := SummarizeBytes(data, cfg)
	if err != nil {
		return nil, err
	}
	r.SourceFile = path
	return r, nil
}

// SummarizeBytes decodes data and synthesizes its workout summary. A decode
// failure or a file without a session yields an error and no report.
func SummarizeBytes(data []byte, cfg Config) (*Report, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	decoded, err := decoder.Decode(data, decoder.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	p := workout.NewParser(
		workout.WithLogger(logger),
		workout.WithFormatter(cfg.Formatter),
		workout.WithUniformSingletons(cfg.UniformSingletons),
	)

	act := &workout.Activity{}
	stats, err := p.Parse(decoded.Records, act)
	if err != nil {
		return nil, fmt.Errorf("summarize workout: %w", err)
	}

	return &Report{
		Activity:    act,
		FileID:      decoded.FileID,
		RecordCount: stats.Records,
		Unhandled:   stats.Unhandled,
		Warnings:    decoded.Warnings(),
		Took:        stats.Took,
		Decoded:     decoded,
	}, nil
}
