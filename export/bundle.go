// Package export writes a summarized FIT file as a self-describing bundle:
// a manifest, the summary as JSON and optionally as a CSV or Parquet table,
// the track points, every raw message as JSONL and optionally the source
// file itself.
package export

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"go.uber.org/zap"

	fitsummary "github.com/lucasjlepore/fit-summary"
	"github.com/lucasjlepore/fit-summary/decoder"
	"github.com/lucasjlepore/fit-summary/internal/config"
)

// artifact is one bundle file. Exactly one of text or table is set.
type artifact struct {
	name  string
	text  func(io.Writer) error
	table func(source.ParquetFile) error
}

// WriteBundle writes the bundle for r into outDir.
func WriteBundle(r *fitsummary.Report, decoded *decoder.Result, outDir string, opts Options) (*Result, error) {
	if strings.TrimSpace(outDir) == "" {
		return nil, errors.New("output directory is required")
	}
	arts, manifest, err := plan(r, decoded, opts)
	if err != nil {
		return nil, err
	}
	if err := ensureOutputDir(outDir, opts.Overwrite); err != nil {
		return nil, err
	}

	logger := loggerOf(opts)
	res := &Result{OutputDir: outDir, Manifest: manifest}
	for _, a := range arts {
		path := filepath.Join(outDir, a.name)
		if a.table != nil {
			err = writeTableFile(path, a.table)
		} else {
			err = writeTextFile(path, a.text)
		}
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", a.name, err)
		}
		logger.Debug("wrote bundle file", zap.String("path", path))
		res.Files = append(res.Files, path)
	}
	return res, nil
}

// Build renders the bundle for r in memory.
func Build(r *fitsummary.Report, decoded *decoder.Result, opts Options) (*Bundle, error) {
	arts, manifest, err := plan(r, decoded, opts)
	if err != nil {
		return nil, err
	}
	b := &Bundle{Manifest: manifest, Files: make(map[string][]byte, len(arts))}
	for _, a := range arts {
		var data []byte
		if a.table != nil {
			data, err = renderTable(a.table)
		} else {
			data, err = renderText(a.text)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", a.name, err)
		}
		b.Files[a.name] = data
	}
	return b, nil
}

func plan(r *fitsummary.Report, decoded *decoder.Result, opts Options) ([]artifact, Manifest, error) {
	if r == nil || r.Activity == nil {
		return nil, Manifest{}, errors.New("report has no activity")
	}
	if decoded == nil {
		return nil, Manifest{}, errors.New("decode result is required")
	}
	format, err := normalizeFormat(opts.Format)
	if err != nil {
		return nil, Manifest{}, err
	}

	rows := SummaryRows(r.Activity.Summary)
	points := TrackRows(decoded.Records)

	arts := []artifact{
		{name: SummaryFile, text: func(w io.Writer) error { return encodeJSON(w, r) }},
		{name: RecordsFile, text: func(w io.Writer) error { return encodeJSONL(w, decoded.Messages) }},
	}
	switch format {
	case config.FormatCSV:
		arts = append(arts, artifact{
			name: summaryTable + ".csv",
			text: func(w io.Writer) error { return encodeSummaryCSV(w, rows) },
		})
		if len(points) > 0 {
			arts = append(arts, artifact{
				name: trackTable + ".csv",
				text: func(w io.Writer) error { return encodeTrackCSV(w, points) },
			})
		}
	case config.FormatParquet:
		arts = append(arts, artifact{
			name:  summaryTable + ".parquet",
			table: func(pf source.ParquetFile) error { return writeParquet(pf, rows) },
		})
		if len(points) > 0 {
			arts = append(arts, artifact{
				name:  trackTable + ".parquet",
				table: func(pf source.ParquetFile) error { return writeParquet(pf, points) },
			})
		}
	}
	if opts.Source != nil {
		src := opts.Source
		arts = append(arts, artifact{
			name: SourceFile,
			text: func(w io.Writer) error {
				_, err := w.Write(src)
				return err
			},
		})
	}

	names := make([]string, 0, len(arts)+1)
	for _, a := range arts {
		names = append(names, a.name)
	}
	names = append(names, ManifestFile)
	sort.Strings(names)

	m := newManifest(r, decoded, len(points), names)
	arts = append(arts, artifact{name: ManifestFile, text: func(w io.Writer) error { return encodeJSON(w, m) }})
	return arts, m, nil
}

func newManifest(r *fitsummary.Report, decoded *decoder.Result, trackPoints int, files []string) Manifest {
	a := r.Activity
	return Manifest{
		FormatVersion:    FormatVersion,
		ExportID:         uuid.NewString(),
		GeneratedAt:      time.Now().UTC(),
		SourceFile:       r.SourceFile,
		SourceSHA256:     decoded.SHA256,
		SourceSizeBytes:  decoded.SizeBytes,
		Header:           decoded.Header,
		HeaderCRC:        decoded.HeaderCRC,
		FileCRC:          decoded.FileCRC,
		FileID:           decoded.FileID,
		Activity:         ActivityInfo{Name: a.Name, Kind: a.Kind.String(), StartTime: a.StartTime, EndTime: a.EndTime},
		RecordCount:      r.RecordCount,
		Unhandled:        r.Unhandled,
		DefinitionCount:  decoded.DefinitionCount,
		DataMessageCount: decoded.DataCount,
		TrackPointCount:  trackPoints,
		LeftoverBytes:    decoded.LeftoverBytes,
		SummaryEntries:   a.Summary.Len(),
		Files:            files,
		Warnings:         r.Warnings,
		Schema: map[string]string{
			SummaryFile:  "report with the ordered summary; object members keep emission order",
			RecordsFile:  "one line per raw FIT message in file order, definitions included",
			summaryTable: "one row per summary entry: position, key, kind, number, text, unit, higher_is_better",
			trackTable:   "one row per track point; NaN marks a missing sample",
		},
	}
}

func normalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "":
		return config.FormatJSON, nil
	case config.FormatJSON, config.FormatCSV, config.FormatParquet:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected json|csv|parquet)", format)
}

func loggerOf(opts Options) *zap.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return zap.NewNop()
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}

func writeTextFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriterSize(f, 1<<20)
	if err := encode(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

func writeTableFile(path string, write func(source.ParquetFile) error) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	return write(fw)
}

func renderText(encode func(io.Writer) error) ([]byte, error) {
	var b bytes.Buffer
	if err := encode(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func renderTable(write func(source.ParquetFile) error) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	if err := write(fw); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
