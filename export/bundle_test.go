package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"

	fitsummary "github.com/lucasjlepore/fit-summary"
	"github.com/lucasjlepore/fit-summary/internal/fittest"
	"github.com/lucasjlepore/fit-summary/summary"
)

func summarize(t *testing.T) (*fitsummary.Report, []byte) {
	t.Helper()
	data := fittest.Activity()
	r, err := fitsummary.SummarizeBytes(data, fitsummary.Config{})
	require.NoError(t, err)
	return r, data
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func readParquet[T any](t *testing.T, pf source.ParquetFile) []T {
	t.Helper()
	pr, err := reader.NewParquetReader(pf, new(T), 1)
	require.NoError(t, err)
	defer pf.Close()
	defer pr.ReadStop()

	rows := make([]T, int(pr.GetNumRows()))
	require.NoError(t, pr.Read(&rows))
	return rows
}

func TestWriteBundleCSV(t *testing.T) {
	r, data := summarize(t)
	outDir := filepath.Join(t.TempDir(), "bundle")

	res, err := WriteBundle(r, r.Decoded, outDir, Options{Format: "CSV", Source: data})
	require.NoError(t, err)
	assert.Len(t, res.Files, 6)

	wantFiles := []string{"manifest.json", "records.jsonl", "source.fit", "summary.csv", "summary.json", "track_points.csv"}
	if diff := cmp.Diff(wantFiles, res.Manifest.Files); diff != "" {
		t.Fatalf("manifest files mismatch (-want +got):\n%s", diff)
	}
	for _, name := range wantFiles {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
	}

	raw, err := os.ReadFile(filepath.Join(outDir, ManifestFile))
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, FormatVersion, m.FormatVersion)
	_, err = uuid.Parse(m.ExportID)
	assert.NoError(t, err)
	assert.Equal(t, r.Decoded.SHA256, m.SourceSHA256)
	assert.Equal(t, len(data), m.SourceSizeBytes)
	assert.Equal(t, "trail_running", m.Activity.Kind)
	assert.Equal(t, "Trail Run", m.Activity.Name)
	assert.Equal(t, 9, m.RecordCount)
	assert.Equal(t, 2, m.Unhandled)
	assert.Equal(t, 2, m.TrackPointCount)
	assert.Equal(t, r.Activity.Summary.Len(), m.SummaryEntries)

	lines, err := os.ReadFile(filepath.Join(outDir, RecordsFile))
	require.NoError(t, err)
	jsonl := strings.Split(strings.TrimSpace(string(lines)), "\n")
	assert.Len(t, jsonl, len(r.Decoded.Messages))
	assert.Contains(t, jsonl[0], `"name":"file_id"`)

	src, err := os.ReadFile(filepath.Join(outDir, SourceFile))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, src))

	table := readCSV(t, filepath.Join(outDir, "summary.csv"))
	require.Len(t, table, r.Activity.Summary.Len()+1)
	assert.Equal(t, summaryColumns, table[0])
	assert.Equal(t, []string{"0", "active_seconds", "number", "1750", "1750", "seconds", "false"}, table[1])

	track := readCSV(t, filepath.Join(outDir, "track_points.csv"))
	require.Len(t, track, 3)
	assert.Equal(t, trackColumns, track[0])
	assert.Equal(t, "3", track[1][0])
	assert.Equal(t, "true", track[1][8])
	assert.Equal(t, "", track[2][2])
	assert.Equal(t, "125", track[2][4])
	assert.Equal(t, "false", track[2][8])
}

func TestWriteBundleParquet(t *testing.T) {
	r, _ := summarize(t)
	outDir := t.TempDir()

	res, err := WriteBundle(r, r.Decoded, outDir, Options{Format: "parquet"})
	require.NoError(t, err)
	assert.NotContains(t, res.Manifest.Files, SourceFile)

	pf, err := local.NewLocalFileReader(filepath.Join(outDir, "summary.parquet"))
	require.NoError(t, err)
	rows := readParquet[SummaryRow](t, pf)
	require.Len(t, rows, r.Activity.Summary.Len())
	assert.Equal(t, "active_seconds", rows[0].Key)
	assert.Equal(t, 1750.0, rows[0].Number)
	assert.Equal(t, r.Activity.Summary.Keys()[len(rows)-1], rows[len(rows)-1].Key)

	pf, err = local.NewLocalFileReader(filepath.Join(outDir, "track_points.parquet"))
	require.NoError(t, err)
	points := readParquet[TrackRow](t, pf)
	require.Len(t, points, 2)
	assert.InDelta(t, 45.5, points[0].LatDeg, 1e-6)
	assert.True(t, points[0].ValidPosition)
	assert.False(t, points[1].ValidPosition)
}

func TestWriteBundleOutputDirRules(t *testing.T) {
	r, _ := summarize(t)
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "keep.txt"), []byte("x"), 0o644))

	_, err := WriteBundle(r, r.Decoded, outDir, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")

	_, err = WriteBundle(r, r.Decoded, outDir, Options{Overwrite: true})
	require.NoError(t, err)

	_, err = WriteBundle(r, r.Decoded, " ", Options{})
	assert.Error(t, err)
}

func TestBuildInMemory(t *testing.T) {
	r, _ := summarize(t)

	b, err := Build(r, r.Decoded, Options{})
	require.NoError(t, err)

	var names []string
	for name := range b.Files {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{ManifestFile, SummaryFile, RecordsFile}, names)

	doc := string(b.Files[SummaryFile])
	assert.Contains(t, doc, `"kind": "trail_running"`)
	first := strings.Index(doc, `"active_seconds"`)
	second := strings.Index(doc, `"distance_meters"`)
	require.True(t, first >= 0 && second >= 0)
	assert.Less(t, first, second)
}

func TestBuildErrors(t *testing.T) {
	r, _ := summarize(t)

	_, err := Build(r, r.Decoded, Options{Format: "xml"})
	assert.ErrorContains(t, err, "unsupported format")

	_, err = Build(r, nil, Options{})
	assert.Error(t, err)

	_, err = Build(&fitsummary.Report{}, r.Decoded, Options{})
	assert.Error(t, err)
}

func TestMarshalSummaryParquet(t *testing.T) {
	s := summary.New()
	s.Add("distance_meters", summary.Number(5000), summary.UnitMeters)
	s.Add("avg_pedal_smoothness", summary.Text("20%–25%"), summary.UnitNone)
	s.Put(summary.Entry{Key: "training_effect_aerobic", Value: summary.Number(3.2), HigherIsBetter: true})

	data, err := MarshalSummaryParquet(s)
	require.NoError(t, err)

	rows := readParquet[SummaryRow](t, parquetbuffer.NewBufferFileFromBytes(data))
	require.Len(t, rows, 3)
	assert.Equal(t, "distance_meters", rows[0].Key)
	assert.Equal(t, "meters", rows[0].Unit)
	assert.Equal(t, "text", rows[1].Kind)
	assert.Equal(t, "20%–25%", rows[1].Text)
	assert.True(t, math.IsNaN(rows[1].Number))
	assert.True(t, rows[2].HigherIsBetter)
	assert.Equal(t, int64(2), rows[2].Position)
}

func TestSummaryRows(t *testing.T) {
	s := summary.New()
	s.Add("hr_zone_easy", summary.Progress{Value: 200, Unit: summary.UnitSeconds, Percentage: 66}, summary.UnitNone)
	s.Add("internal_has_gps", summary.Bool(true), summary.UnitNone)

	rows := SummaryRows(s)
	require.Len(t, rows, 2)
	assert.Equal(t, 200.0, rows[0].Number)
	assert.Equal(t, "progress", rows[0].Kind)
	assert.Equal(t, "200 (66%)", rows[0].Text)
	assert.True(t, math.IsNaN(rows[1].Number))
	assert.Equal(t, "true", rows[1].Text)

	assert.Empty(t, SummaryRows(nil))
}
