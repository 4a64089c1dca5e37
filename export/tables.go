package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"time"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lucasjlepore/fit-summary/mesg"
	"github.com/lucasjlepore/fit-summary/summary"
)

// SummaryRow is one summary entry flattened for tabular output.
type SummaryRow struct {
	Position       int64   `parquet:"name=position, type=INT64"`
	Key            string  `parquet:"name=key, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Kind           string  `parquet:"name=kind, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Number         float64 `parquet:"name=number, type=DOUBLE"`
	Text           string  `parquet:"name=text, type=BYTE_ARRAY, convertedtype=UTF8"`
	Unit           string  `parquet:"name=unit, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	HigherIsBetter bool    `parquet:"name=higher_is_better, type=BOOLEAN"`
}

var summaryColumns = []string{"position", "key", "kind", "number", "text", "unit", "higher_is_better"}

// TrackRow is one track point flattened for tabular output. Missing
// samples are NaN.
type TrackRow struct {
	RecordIndex   int64   `parquet:"name=record_index, type=INT64"`
	TSUTCISO      string  `parquet:"name=ts_utc_iso, type=BYTE_ARRAY, convertedtype=UTF8"`
	LatDeg        float64 `parquet:"name=lat_deg, type=DOUBLE"`
	LonDeg        float64 `parquet:"name=lon_deg, type=DOUBLE"`
	HRBPM         float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	DistanceM     float64 `parquet:"name=distance_m, type=DOUBLE"`
	SpeedMPS      float64 `parquet:"name=speed_mps, type=DOUBLE"`
	PowerW        float64 `parquet:"name=power_w, type=DOUBLE"`
	ValidPosition bool    `parquet:"name=valid_position, type=BOOLEAN"`
}

var trackColumns = []string{"record_index", "ts_utc_iso", "lat_deg", "lon_deg", "hr_bpm", "distance_m", "speed_mps", "power_w", "valid_position"}

// SummaryRows flattens s in emission order. Number carries the numeric part
// of Number and Progress values and is NaN otherwise; Text is the display
// form of every value.
func SummaryRows(s *summary.Summary) []SummaryRow {
	entries := s.Entries()
	rows := make([]SummaryRow, len(entries))
	for i, e := range entries {
		num := math.NaN()
		switch v := e.Value.(type) {
		case summary.Number:
			num = float64(v)
		case summary.Progress:
			num = v.Value
		}
		rows[i] = SummaryRow{
			Position:       int64(i),
			Key:            e.Key,
			Kind:           summary.KindOf(e.Value),
			Number:         num,
			Text:           summary.FormatValue(e.Value),
			Unit:           e.Unit,
			HigherIsBetter: e.HigherIsBetter,
		}
	}
	return rows
}

// TrackRows collects the track points among records. RecordIndex is the
// record's position in records.
func TrackRows(records []mesg.Record) []TrackRow {
	var rows []TrackRow
	for i, rec := range records {
		tp, ok := rec.(*mesg.TrackPoint)
		if !ok {
			continue
		}
		row := TrackRow{
			RecordIndex: int64(i),
			LatDeg:      math.NaN(),
			LonDeg:      math.NaN(),
			HRBPM:       valueOrNaN(tp.HeartRate),
			DistanceM:   valueOrNaN(tp.Distance),
			SpeedMPS:    valueOrNaN(tp.Speed),
			PowerW:      valueOrNaN(tp.Power),
		}
		if tp.Timestamp != nil {
			row.TSUTCISO = tp.Timestamp.UTC().Format(time.RFC3339)
		}
		if tp.Position != nil {
			row.LatDeg, row.LonDeg = tp.Position.Lat, tp.Position.Lon
			row.ValidPosition = true
		}
		rows = append(rows, row)
	}
	return rows
}

func valueOrNaN[T ~uint8 | ~uint16 | ~float64](v *T) float64 {
	if v == nil {
		return math.NaN()
	}
	return float64(*v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeJSONL[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

func encodeSummaryCSV(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.FormatInt(r.Position, 10),
			r.Key,
			r.Kind,
			formatFloat(r.Number),
			r.Text,
			r.Unit,
			strconv.FormatBool(r.HigherIsBetter),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeTrackCSV(w io.Writer, rows []TrackRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trackColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.FormatInt(r.RecordIndex, 10),
			r.TSUTCISO,
			formatFloat(r.LatDeg),
			formatFloat(r.LonDeg),
			formatFloat(r.HRBPM),
			formatFloat(r.DistanceM),
			formatFloat(r.SpeedMPS),
			formatFloat(r.PowerW),
			strconv.FormatBool(r.ValidPosition),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatFloat leaves NaN cells empty.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeParquet writes rows to pf with snappy compression and closes pf.
func writeParquet[T any](pf source.ParquetFile, rows []T) error {
	pw, err := writer.NewParquetWriter(pf, new(T), 4)
	if err != nil {
		_ = pf.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = pf.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = pf.Close()
		return err
	}
	return pf.Close()
}

// MarshalSummaryParquet renders s as a Parquet file of SummaryRow.
func MarshalSummaryParquet(s *summary.Summary) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	if err := writeParquet(fw, SummaryRows(s)); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

// TypedRecord is a decoded record tagged with its kind and position.
type TypedRecord struct {
	Index  int         `json:"index"`
	Kind   string      `json:"kind"`
	Record mesg.Record `json:"record"`
}

// WriteRecordsJSONL writes one TypedRecord line per record.
func WriteRecordsJSONL(w io.Writer, records []mesg.Record) error {
	typed := make([]TypedRecord, len(records))
	for i, rec := range records {
		typed[i] = TypedRecord{Index: i, Kind: rec.Kind().String(), Record: rec}
	}
	return encodeJSONL(w, typed)
}
