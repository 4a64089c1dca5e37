// Package fittest assembles raw FIT files for tests. It writes messages
// that general-purpose encoders do not model, such as Garmin's
// physiological metrics.
package fittest

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/tormoder/fit/dyncrc16"
)

// FIT base type bytes.
const (
	Enum    uint8 = 0x00
	Sint8   uint8 = 0x01
	Uint8   uint8 = 0x02
	String  uint8 = 0x07
	Sint16  uint8 = 0x83
	Uint16  uint8 = 0x84
	Sint32  uint8 = 0x85
	Uint32  uint8 = 0x86
	Uint32z uint8 = 0x8C
)

// Field declares one field of a definition message.
type Field struct {
	Num  uint8
	Size uint8
	Base uint8
}

// Builder accumulates little-endian FIT messages.
type Builder struct {
	body bytes.Buffer
}

// Define writes a definition message for local type local.
func (b *Builder) Define(local uint8, global uint16, fields ...Field) *Builder {
	b.body.WriteByte(0x40 | local&0x0F)
	b.body.Write([]byte{0, 0})
	_ = binary.Write(&b.body, binary.LittleEndian, global)
	b.body.WriteByte(uint8(len(fields)))
	for _, f := range fields {
		b.body.Write([]byte{f.Num, f.Size, f.Base})
	}
	return b
}

// Data writes a data message; values are concatenated in field order.
func (b *Builder) Data(local uint8, values ...[]byte) *Builder {
	b.body.WriteByte(local & 0x0F)
	for _, v := range values {
		b.body.Write(v)
	}
	return b
}

// Compressed writes a compressed-timestamp data message.
func (b *Builder) Compressed(local, offset uint8, values ...[]byte) *Builder {
	b.body.WriteByte(0x80 | (local&0x03)<<5 | offset&0x1F)
	for _, v := range values {
		b.body.Write(v)
	}
	return b
}

// Raw appends bytes verbatim.
func (b *Builder) Raw(p []byte) *Builder {
	b.body.Write(p)
	return b
}

// Bytes returns a complete file: 14-byte header with CRC, the messages and
// the trailing file CRC.
func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	out.WriteByte(14)
	out.WriteByte(0x20)
	_ = binary.Write(&out, binary.LittleEndian, uint16(2132))
	_ = binary.Write(&out, binary.LittleEndian, uint32(b.body.Len()))
	out.WriteString(".FIT")
	_ = binary.Write(&out, binary.LittleEndian, dyncrc16.Checksum(out.Bytes()))
	out.Write(b.body.Bytes())
	_ = binary.Write(&out, binary.LittleEndian, dyncrc16.Checksum(out.Bytes()))
	return out.Bytes()
}

// U8 encodes v.
func U8(v uint8) []byte { return []byte{v} }

// I8 encodes v.
func I8(v int8) []byte { return []byte{byte(v)} }

// U16 encodes v.
func U16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }

// U32 encodes v.
func U32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

// I32 encodes v.
func I32(v int32) []byte { return U32(uint32(v)) }

// Str encodes s as a zero-padded string field of n bytes.
func Str(s string, n int) []byte {
	out := make([]byte, n)
	copy(out, s)
	return out
}

// Concat joins encoded array elements.
func Concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// Time encodes t as seconds since the FIT epoch.
func Time(t time.Time) []byte {
	epoch := time.Date(1989, 12, 31, 0, 0, 0, 0, time.UTC)
	return U32(uint32(t.Sub(epoch) / time.Second))
}

// Semicircles converts degrees to FIT semicircles.
func Semicircles(deg float64) int32 {
	return int32(deg * (1 << 31) / 180)
}
