package decoder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tormoder/fit/dyncrc16"
)

const (
	compressedHeaderMask = 0x80
	compressedLocalMask  = 0x60
	compressedTimeMask   = 0x1F
	definitionMask       = 0x40
	devDataMask          = 0x20
	localMask            = 0x0F

	headerSizeNoCRC = 12
	headerSizeCRC   = 14

	timestampFieldNum = 253
)

// ErrTruncated is returned when the container ends before the header's
// declared data size or in the middle of a message.
var ErrTruncated = errors.New("fit: truncated")

var fitEpoch = time.Date(1989, 12, 31, 0, 0, 0, 0, time.UTC)

type baseType uint8

const (
	baseEnum    baseType = 0x00
	baseSint8   baseType = 0x01
	baseUint8   baseType = 0x02
	baseSint16  baseType = 0x83
	baseUint16  baseType = 0x84
	baseSint32  baseType = 0x85
	baseUint32  baseType = 0x86
	baseString  baseType = 0x07
	baseFloat32 baseType = 0x88
	baseFloat64 baseType = 0x89
	baseUint8z  baseType = 0x0A
	baseUint16z baseType = 0x8B
	baseUint32z baseType = 0x8C
	baseByte    baseType = 0x0D
	baseSint64  baseType = 0x8E
	baseUint64  baseType = 0x8F
	baseUint64z baseType = 0x90
)

type baseInfo struct {
	name string
	size int
}

var baseInfos = map[baseType]baseInfo{
	baseEnum:    {"enum", 1},
	baseSint8:   {"sint8", 1},
	baseUint8:   {"uint8", 1},
	baseSint16:  {"sint16", 2},
	baseUint16:  {"uint16", 2},
	baseSint32:  {"sint32", 4},
	baseUint32:  {"uint32", 4},
	baseString:  {"string", 1},
	baseFloat32: {"float32", 4},
	baseFloat64: {"float64", 8},
	baseUint8z:  {"uint8z", 1},
	baseUint16z: {"uint16z", 2},
	baseUint32z: {"uint32z", 4},
	baseByte:    {"byte", 1},
	baseSint64:  {"sint64", 8},
	baseUint64:  {"uint64", 8},
	baseUint64z: {"uint64z", 8},
}

type fieldLayout struct {
	num  uint8
	size uint8
	base baseType
}

type devLayout struct {
	num      uint8
	size     uint8
	devIndex uint8
}

type localDef struct {
	global uint16
	order  binary.ByteOrder
	fields []fieldLayout
	devs   []devLayout
}

type container struct {
	header    Header
	headerCRC CRCStatus
	fileCRC   CRCStatus
	messages  []Message
	leftover  int
}

// reader walks the data section of one FIT file.
type reader struct {
	data     []byte
	base     int
	pos      int
	defs     map[uint8]localDef
	lastTime uint32
	lastOff  uint8
	index    int
}

func parseContainer(data []byte) (*container, error) {
	if len(data) < headerSizeNoCRC+2 {
		return nil, fmt.Errorf("%w: file is %d bytes", ErrTruncated, len(data))
	}
	h, headerCRC, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	start := int(h.Size)
	end := start + int(h.DataSize)
	if len(data) < end+2 {
		return nil, fmt.Errorf("%w: have %d bytes, header declares %d", ErrTruncated, len(data), end+2)
	}

	stored := binary.LittleEndian.Uint16(data[end : end+2])
	computed := dyncrc16.Checksum(data[:end])
	fileCRC := CRCStatus{
		Present:  true,
		Stored:   fmt.Sprintf("0x%04X", stored),
		Computed: fmt.Sprintf("0x%04X", computed),
		Valid:    stored == computed,
	}

	r := &reader{
		data: data[start:end],
		base: start,
		defs: make(map[uint8]localDef),
	}
	msgs, err := r.readAll()
	if err != nil {
		return nil, err
	}
	return &container{
		header:    h,
		headerCRC: headerCRC,
		fileCRC:   fileCRC,
		messages:  msgs,
		leftover:  len(data) - end - 2,
	}, nil
}

func parseHeader(data []byte) (Header, CRCStatus, error) {
	size := data[0]
	if size != headerSizeNoCRC && size != headerSizeCRC {
		return Header{}, CRCStatus{}, fmt.Errorf("fit: invalid header size %d", size)
	}
	if len(data) < int(size) {
		return Header{}, CRCStatus{}, fmt.Errorf("%w: header needs %d bytes", ErrTruncated, size)
	}
	h := Header{
		Size:            size,
		ProtocolVersion: data[1],
		ProfileVersion:  binary.LittleEndian.Uint16(data[2:4]),
		DataSize:        binary.LittleEndian.Uint32(data[4:8]),
		DataType:        string(data[8:12]),
	}
	if h.DataType != ".FIT" {
		return Header{}, CRCStatus{}, fmt.Errorf("fit: invalid data type %q", h.DataType)
	}

	crc := CRCStatus{Present: size == headerSizeCRC, Valid: true}
	if crc.Present {
		stored := binary.LittleEndian.Uint16(data[12:14])
		crc.Stored = fmt.Sprintf("0x%04X", stored)
		// A zero header CRC means the writer did not compute one.
		if stored != 0 {
			computed := dyncrc16.Checksum(data[:12])
			crc.Computed = fmt.Sprintf("0x%04X", computed)
			crc.Valid = stored == computed
		}
	}
	return h, crc, nil
}

func (r *reader) readAll() ([]Message, error) {
	var out []Message
	for r.pos < len(r.data) {
		r.index++
		start := r.pos
		hdr := r.data[r.pos]
		r.pos++

		var (
			msg Message
			err error
		)
		switch {
		case hdr&compressedHeaderMask != 0:
			local := (hdr & compressedLocalMask) >> 5
			msg, err = r.readData(start, hdr, local, true)
		case hdr&definitionMask != 0:
			msg, err = r.readDefinition(start, hdr)
		default:
			msg, err = r.readData(start, hdr, hdr&localMask, false)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}

func (r *reader) take(n int, start int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: message %d at offset %d", ErrTruncated, r.index, r.base+start)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readDefinition(start int, hdr uint8) (Message, error) {
	fixed, err := r.take(5, start)
	if err != nil {
		return Message{}, err
	}
	var order binary.ByteOrder
	switch fixed[1] {
	case 0:
		order = binary.LittleEndian
	case 1:
		order = binary.BigEndian
	default:
		return Message{}, fmt.Errorf("fit: message %d: invalid architecture %d", r.index, fixed[1])
	}

	def := localDef{
		global: order.Uint16(fixed[2:4]),
		order:  order,
	}
	numFields := int(fixed[4])
	msg := Message{
		Index:      r.index,
		Offset:     int64(r.base + start),
		Definition: true,
		Local:      hdr & localMask,
		Global:     def.global,
		Name:       MessageName(def.global),
		BigEndian:  fixed[1] == 1,
		Fields:     make([]Field, 0, numFields),
	}
	for i := 0; i < numFields; i++ {
		raw, err := r.take(3, start)
		if err != nil {
			return Message{}, err
		}
		bt := normalizeBase(raw[2])
		def.fields = append(def.fields, fieldLayout{num: raw[0], size: raw[1], base: bt})
		msg.Fields = append(msg.Fields, Field{
			Num:  raw[0],
			Name: FieldName(def.global, raw[0]),
			Size: raw[1],
			Base: baseName(bt),
		})
	}

	if hdr&devDataMask != 0 {
		n, err := r.take(1, start)
		if err != nil {
			return Message{}, err
		}
		for i := 0; i < int(n[0]); i++ {
			raw, err := r.take(3, start)
			if err != nil {
				return Message{}, err
			}
			def.devs = append(def.devs, devLayout{num: raw[0], size: raw[1], devIndex: raw[2]})
			msg.DevFields = append(msg.DevFields, DevField{Num: raw[0], Size: raw[1], DevDataIndex: raw[2]})
		}
	}

	r.defs[msg.Local] = def
	return msg, nil
}

func (r *reader) readData(start int, hdr, local uint8, compressed bool) (Message, error) {
	def, ok := r.defs[local]
	if !ok {
		return Message{}, fmt.Errorf("fit: message %d: no definition for local type %d", r.index, local)
	}
	msg := Message{
		Index:      r.index,
		Offset:     int64(r.base + start),
		Local:      local,
		Global:     def.global,
		Name:       MessageName(def.global),
		Compressed: compressed,
		Fields:     make([]Field, 0, len(def.fields)),
	}

	if compressed && r.lastTime != 0 {
		off := hdr & compressedTimeMask
		r.lastTime += uint32((off - r.lastOff) & compressedTimeMask)
		r.lastOff = off
		ts := toTime(r.lastTime)
		msg.Timestamp = &ts
	}

	for _, fl := range def.fields {
		raw, err := r.take(int(fl.size), start)
		if err != nil {
			return Message{}, err
		}
		f := decodeField(raw, fl, def.order)
		f.Name = FieldName(def.global, fl.num)
		if fl.num == timestampFieldNum {
			if v, ok := f.asUint(0); ok {
				r.lastTime = uint32(v)
				r.lastOff = uint8(v) & compressedTimeMask
				ts := toTime(r.lastTime)
				msg.Timestamp = &ts
			}
		}
		msg.Fields = append(msg.Fields, f)
	}

	for _, dl := range def.devs {
		raw, err := r.take(int(dl.size), start)
		if err != nil {
			return Message{}, err
		}
		msg.DevFields = append(msg.DevFields, DevField{
			Num:          dl.num,
			Size:         dl.size,
			DevDataIndex: dl.devIndex,
			Raw:          append([]byte(nil), raw...),
		})
	}
	return msg, nil
}

func decodeField(raw []byte, fl fieldLayout, order binary.ByteOrder) Field {
	f := Field{Num: fl.num, Size: fl.size, Base: baseName(fl.base)}
	info, known := baseInfos[fl.base]

	switch {
	case !known:
		f.Values = bytesToValues(raw)
		f.Error = "unknown base type"
		return f
	case fl.base == baseString:
		f.Text = cString(raw)
		return f
	case len(raw)%info.size != 0:
		f.Values = bytesToValues(raw)
		f.Error = fmt.Sprintf("size %d is not a multiple of %d", len(raw), info.size)
		return f
	}

	n := len(raw) / info.size
	f.Values = make([]any, n)
	f.Invalid = make([]bool, n)
	for i := 0; i < n; i++ {
		f.Values[i], f.Invalid[i] = decodeValue(raw[i*info.size:(i+1)*info.size], fl.base, order)
	}
	return f
}

func decodeValue(raw []byte, bt baseType, order binary.ByteOrder) (any, bool) {
	switch bt {
	case baseEnum, baseUint8, baseByte:
		return raw[0], raw[0] == 0xFF
	case baseUint8z:
		return raw[0], raw[0] == 0
	case baseSint8:
		v := int8(raw[0])
		return v, v == math.MaxInt8
	case baseSint16:
		v := int16(order.Uint16(raw))
		return v, v == math.MaxInt16
	case baseUint16:
		v := order.Uint16(raw)
		return v, v == math.MaxUint16
	case baseUint16z:
		v := order.Uint16(raw)
		return v, v == 0
	case baseSint32:
		v := int32(order.Uint32(raw))
		return v, v == math.MaxInt32
	case baseUint32:
		v := order.Uint32(raw)
		return v, v == math.MaxUint32
	case baseUint32z:
		v := order.Uint32(raw)
		return v, v == 0
	case baseFloat32:
		return finite(float64(math.Float32frombits(order.Uint32(raw))))
	case baseFloat64:
		return finite(math.Float64frombits(order.Uint64(raw)))
	case baseSint64:
		v := int64(order.Uint64(raw))
		return v, v == math.MaxInt64
	case baseUint64:
		v := order.Uint64(raw)
		return v, v == math.MaxUint64
	case baseUint64z:
		v := order.Uint64(raw)
		return v, v == 0
	}
	return nil, true
}

// finite reports NaN and infinities, the float invalid sentinel included,
// as a nil invalid element so envelopes stay JSON-encodable.
func finite(v float64) (any, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, true
	}
	return v, false
}

// normalizeBase maps a definition's base type byte to its canonical form.
// Some writers omit the endian-ability bit on multi-byte types.
func normalizeBase(b byte) baseType {
	switch b & 0x1F {
	case 0x03:
		return baseSint16
	case 0x04:
		return baseUint16
	case 0x05:
		return baseSint32
	case 0x06:
		return baseUint32
	case 0x08:
		return baseFloat32
	case 0x09:
		return baseFloat64
	case 0x0B:
		return baseUint16z
	case 0x0C:
		return baseUint32z
	case 0x0E:
		return baseSint64
	case 0x0F:
		return baseUint64
	case 0x10:
		return baseUint64z
	default:
		return baseType(b & 0x1F)
	}
}

func baseName(bt baseType) string {
	if info, ok := baseInfos[bt]; ok {
		return info.name
	}
	return fmt.Sprintf("unknown_0x%02X", uint8(bt))
}

func toTime(ts uint32) time.Time {
	return fitEpoch.Add(time.Duration(ts) * time.Second)
}

func cString(raw []byte) string {
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i])
		}
	}
	return string(raw)
}

func bytesToValues(raw []byte) []any {
	out := make([]any, len(raw))
	for i, b := range raw {
		out[i] = b
	}
	return out
}

// asUint returns element i as an unsigned integer when it is valid and
// integral.
func (f *Field) asUint(i int) (uint64, bool) {
	if !f.valid(i) {
		return 0, false
	}
	switch v := f.Values[i].(type) {
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case int8:
		return uint64(v), v >= 0
	case int16:
		return uint64(v), v >= 0
	case int32:
		return uint64(v), v >= 0
	case int64:
		return uint64(v), v >= 0
	}
	return 0, false
}

// asInt returns element i as a signed integer.
func (f *Field) asInt(i int) (int64, bool) {
	if !f.valid(i) {
		return 0, false
	}
	switch v := f.Values[i].(type) {
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	}
	return 0, false
}

// asFloat returns element i as a float64, whatever its base type.
func (f *Field) asFloat(i int) (float64, bool) {
	if !f.valid(i) {
		return 0, false
	}
	if v, ok := f.Values[i].(float64); ok {
		return v, true
	}
	if v, ok := f.asInt(i); ok {
		return float64(v), true
	}
	if v, ok := f.asUint(i); ok {
		return float64(v), true
	}
	return 0, false
}

func (f *Field) valid(i int) bool {
	if f.Error != "" || i < 0 || i >= len(f.Values) {
		return false
	}
	return i >= len(f.Invalid) || !f.Invalid[i]
}
