package decoder

import "time"

// Header is the parsed FIT file header.
type Header struct {
	Size            uint8  `json:"size"`
	ProtocolVersion uint8  `json:"protocol_version"`
	ProfileVersion  uint16 `json:"profile_version"`
	DataSize        uint32 `json:"data_size"`
	DataType        string `json:"data_type"`
}

// CRCStatus reports a stored checksum next to the one computed over the
// same bytes. It is informational; a mismatch never fails decoding.
type CRCStatus struct {
	Present  bool   `json:"present"`
	Stored   string `json:"stored,omitempty"`
	Computed string `json:"computed,omitempty"`
	Valid    bool   `json:"valid"`
}

// FileID is a projection of the file_id message.
type FileID struct {
	Type         string     `json:"type"`
	Manufacturer string     `json:"manufacturer"`
	Product      string     `json:"product"`
	SerialNumber uint32     `json:"serial_number,omitempty"`
	TimeCreated  *time.Time `json:"time_created,omitempty"`
}

// Message is one raw FIT record in file order: either a definition or a
// data message. Definition messages carry field layouts without values.
type Message struct {
	Index      int        `json:"index"`
	Offset     int64      `json:"offset"`
	Definition bool       `json:"definition"`
	Local      uint8      `json:"local"`
	Global     uint16     `json:"global"`
	Name       string     `json:"name"`
	BigEndian  bool       `json:"big_endian,omitempty"`
	Compressed bool       `json:"compressed,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	Fields     []Field    `json:"fields,omitempty"`
	DevFields  []DevField `json:"developer_fields,omitempty"`
}

// Field is one standard field. Values holds one element per base-type slot
// (a scalar field has exactly one); Invalid flags elements equal to the
// base type's invalid sentinel.
type Field struct {
	Num     uint8  `json:"num"`
	Name    string `json:"name,omitempty"`
	Size    uint8  `json:"size"`
	Base    string `json:"base"`
	Values  []any  `json:"values,omitempty"`
	Text    string `json:"text,omitempty"`
	Invalid []bool `json:"invalid,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DevField is an opaque developer-data field.
type DevField struct {
	Num          uint8  `json:"num"`
	Size         uint8  `json:"size"`
	DevDataIndex uint8  `json:"developer_data_index"`
	Raw          []byte `json:"raw,omitempty"`
}
