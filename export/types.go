package export

import (
	"time"

	"go.uber.org/zap"

	"github.com/lucasjlepore/fit-summary/decoder"
)

const (
	// FormatVersion identifies the on-disk schema of a bundle.
	FormatVersion = "fitsummary_bundle_v1"

	ManifestFile = "manifest.json"
	SummaryFile  = "summary.json"
	RecordsFile  = "records.jsonl"
	SourceFile   = "source.fit"

	// Summary and track tables are written as summary.<format> and
	// track_points.<format> for the csv and parquet formats.
	summaryTable = "summary"
	trackTable   = "track_points"
)

// Options controls bundle output.
type Options struct {
	// Format is json, csv or parquet. json writes no table files.
	Format string

	// Overwrite allows writing into a non-empty output directory.
	Overwrite bool

	// Source, when set, is written byte-for-byte as source.fit.
	Source []byte

	Logger *zap.Logger
}

// Result describes a written bundle.
type Result struct {
	OutputDir string   `json:"output_dir"`
	Files     []string `json:"files"`
	Manifest  Manifest `json:"manifest"`
}

// Bundle is a rendered bundle held in memory, keyed by file name.
type Bundle struct {
	Manifest Manifest
	Files    map[string][]byte
}

// Manifest captures export metadata and the bundle's file list.
type Manifest struct {
	FormatVersion    string            `json:"format_version"`
	ExportID         string            `json:"export_id"`
	GeneratedAt      time.Time         `json:"generated_at"`
	SourceFile       string            `json:"source_file,omitempty"`
	SourceSHA256     string            `json:"source_sha256"`
	SourceSizeBytes  int               `json:"source_size_bytes"`
	Header           decoder.Header    `json:"header"`
	HeaderCRC        decoder.CRCStatus `json:"header_crc"`
	FileCRC          decoder.CRCStatus `json:"file_crc"`
	FileID           *decoder.FileID   `json:"file_id,omitempty"`
	Activity         ActivityInfo      `json:"activity"`
	RecordCount      int               `json:"record_count"`
	Unhandled        int               `json:"unhandled"`
	DefinitionCount  int               `json:"definition_count"`
	DataMessageCount int               `json:"data_message_count"`
	TrackPointCount  int               `json:"track_point_count"`
	LeftoverBytes    int               `json:"leftover_bytes"`
	SummaryEntries   int               `json:"summary_entries"`
	Files            []string          `json:"files"`
	Warnings         []string          `json:"warnings,omitempty"`
	Schema           map[string]string `json:"schema"`
}

// ActivityInfo is the manifest's view of the summarized activity.
type ActivityInfo struct {
	Name      string     `json:"name"`
	Kind      string     `json:"kind"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}
