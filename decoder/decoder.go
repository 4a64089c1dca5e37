// Package decoder turns FIT bytes into raw messages and typed records.
//
// The container is parsed in full before any record is produced; a
// malformed or truncated file fails outright and yields nothing. Checksums
// are computed and reported but never cause a failure.
package decoder

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/tormoder/fit"
	"go.uber.org/zap"

	"github.com/lucasjlepore/fit-summary/mesg"
)

// Result is everything decoded from one FIT file.
type Result struct {
	Header    Header
	HeaderCRC CRCStatus
	FileCRC   CRCStatus
	FileID    *FileID

	// Messages holds every definition and data message in file order.
	Messages []Message
	// Records holds one typed record per data message, in file order.
	Records []mesg.Record

	DefinitionCount int
	DataCount       int
	LeftoverBytes   int
	SHA256          string
	SizeBytes       int
}

// Option configures Decode.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for decode diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Decode parses data as a FIT file.
func Decode(data []byte, opts ...Option) (*Result, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	c, err := parseContainer(data)
	if err != nil {
		return nil, fmt.Errorf("decode fit: %w", err)
	}

	sum := sha256.Sum256(data)
	res := &Result{
		Header:        c.header,
		HeaderCRC:     c.headerCRC,
		FileCRC:       c.fileCRC,
		FileID:        fileID(data),
		Messages:      c.messages,
		LeftoverBytes: c.leftover,
		SHA256:        hex.EncodeToString(sum[:]),
		SizeBytes:     len(data),
	}
	for i := range c.messages {
		m := &c.messages[i]
		if m.Definition {
			res.DefinitionCount++
			continue
		}
		res.DataCount++
		res.Records = append(res.Records, toRecord(m))
	}

	if !res.FileCRC.Valid {
		o.logger.Warn("file crc mismatch",
			zap.String("stored", res.FileCRC.Stored),
			zap.String("computed", res.FileCRC.Computed))
	}
	o.logger.Debug("decoded fit",
		zap.Int("definitions", res.DefinitionCount),
		zap.Int("data", res.DataCount),
		zap.Int("leftover_bytes", res.LeftoverBytes))
	return res, nil
}

// Warnings lists non-fatal anomalies found while decoding.
func (r *Result) Warnings() []string {
	var out []string
	if r.HeaderCRC.Present && !r.HeaderCRC.Valid {
		out = append(out, fmt.Sprintf("header crc mismatch: stored %s computed %s", r.HeaderCRC.Stored, r.HeaderCRC.Computed))
	}
	if !r.FileCRC.Valid {
		out = append(out, fmt.Sprintf("file crc mismatch: stored %s computed %s", r.FileCRC.Stored, r.FileCRC.Computed))
	}
	if r.LeftoverBytes > 0 {
		out = append(out, fmt.Sprintf("%d bytes follow the first fit file (chained files are ignored)", r.LeftoverBytes))
	}
	if r.FileID == nil {
		out = append(out, "file_id message missing or unreadable")
	}
	for i := range r.Messages {
		for _, f := range r.Messages[i].Fields {
			if f.Error != "" {
				out = append(out, fmt.Sprintf("message %d field %d: %s", r.Messages[i].Index, f.Num, f.Error))
			}
		}
	}
	return out
}

func fileID(data []byte) *FileID {
	_, id, err := fit.DecodeHeaderAndFileID(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	out := &FileID{
		Type:         fmt.Sprint(id.Type),
		Manufacturer: fmt.Sprint(id.Manufacturer),
		Product:      fmt.Sprint(id.GetProduct()),
		SerialNumber: id.SerialNumber,
	}
	if !id.TimeCreated.IsZero() {
		t := id.TimeCreated.UTC()
		out.TimeCreated = &t
	}
	return out
}
