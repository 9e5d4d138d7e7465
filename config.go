package dflog

import "sort"

// FieldType identifies the on-wire shape of a format character, independent
// of how its decoded value gets scaled or rendered.
type FieldType int

const (
	// FieldInt is a fixed-width signed or unsigned integer, emitted as-is.
	FieldInt FieldType = iota
	// FieldFloat is a fixed-width IEEE-754 float, emitted as-is.
	FieldFloat
	// FieldCenti is a fixed-width integer scaled by 1/100 into a float.
	FieldCenti
	// FieldLatLon is a 32-bit signed integer scaled by 1e-7 into a float.
	FieldLatLon
	// FieldString is a fixed-width NUL-padded byte field decoded as ASCII,
	// with trailing NULs stripped.
	FieldString
	// FieldArray is a fixed-length array of 16-bit integers.
	FieldArray
)

// String renders t using the names the Config Table loader reads and
// writes in a `[chars]` INI section ("int", "float", "centi", "latlon",
// "string", "array").
func (t FieldType) String() string {
	switch t {
	case FieldInt:
		return "int"
	case FieldFloat:
		return "float"
	case FieldCenti:
		return "centi"
	case FieldLatLon:
		return "latlon"
	case FieldString:
		return "string"
	case FieldArray:
		return "array"
	default:
		return "int"
	}
}

// ParseFieldType is the inverse of FieldType.String, used by the Config
// Table loader to parse a `[chars]` INI entry's type name.
func ParseFieldType(s string) (FieldType, bool) {
	switch s {
	case "int":
		return FieldInt, true
	case "float":
		return FieldFloat, true
	case "centi":
		return FieldCenti, true
	case "latlon":
		return FieldLatLon, true
	case "string":
		return FieldString, true
	case "array":
		return FieldArray, true
	default:
		return 0, false
	}
}

// charSpec describes the wire width and interpretation of one format
// character from the Config Table's char map.
type charSpec struct {
	typ    FieldType
	width  int  // bytes consumed on the wire
	signed bool // only meaningful for FieldInt/FieldCenti
}

// Config is the immutable Config Table every component in this package reads
// from. Nothing in the decoder hard-codes a sync pattern, a reserved FORMAT
// type id or a format character's wire shape; all of it is supplied here so
// the decoder can be adapted to dialects of the dataflash format without a
// rebuild. The one fixed character is 'Z', the only one PassthroughColumns
// applies to.
type Config struct {
	// SyncBytes introduces every frame on the wire.
	SyncBytes [2]byte
	// FormatTypeID is the reserved type id of a FORMAT frame.
	FormatTypeID byte
	// FormatRecordLength is the fixed total wire size of a FORMAT frame,
	// header included.
	FormatRecordLength int

	// Chars maps a format character to its wire shape.
	Chars map[byte]charSpec
	// PassthroughColumns names columns whose raw bytes are never decoded as
	// ASCII or NUL-trimmed when their format character is 'Z'; under any
	// other format character the column is decoded normally. Used for binary
	// blob columns embedded in an otherwise textual record.
	PassthroughColumns map[string]bool
}

// FORMAT frame layout offsets, per spec: 2B sync, 1B id, 1B msg_type,
// 1B length, 4B name, 16B format, 64B columns.
const (
	fmtOffMsgType = 3
	fmtOffLength  = 4
	fmtOffName    = 5
	fmtNameLen    = 4
	fmtOffFormat  = 9
	fmtFormatLen  = 16
	fmtOffColumns = 25
	fmtColumnsLen = 64
)

// DefaultConfig returns the conventional ArduPilot dataflash Config Table:
// sync bytes 0xA3 0x95, FORMAT type id 0x80, FORMAT record length 89, and
// the standard format-character table.
func DefaultConfig() Config {
	return Config{
		SyncBytes:          [2]byte{0xA3, 0x95},
		FormatTypeID:       0x80,
		FormatRecordLength: 89,
		Chars: map[byte]charSpec{
			'b': {FieldInt, 1, true},
			'B': {FieldInt, 1, false},
			'h': {FieldInt, 2, true},
			'H': {FieldInt, 2, false},
			'i': {FieldInt, 4, true},
			'I': {FieldInt, 4, false},
			'q': {FieldInt, 8, true},
			'Q': {FieldInt, 8, false},
			'f': {FieldFloat, 4, true},
			'd': {FieldFloat, 8, true},
			'c': {FieldCenti, 2, true},
			'C': {FieldCenti, 2, false},
			'e': {FieldCenti, 4, true},
			'E': {FieldCenti, 4, false},
			'L': {FieldLatLon, 4, true},
			'M': {FieldInt, 1, false},
			'n': {FieldString, 4, false},
			'N': {FieldString, 16, false},
			'Z': {FieldString, 64, false},
			'a': {FieldArray, 64, true}, // 32 x int16
		},
		PassthroughColumns: map[string]bool{
			"Data":    true,
			"Blob":    true,
			"Payload": true,
		},
	}
}

// CharSpec returns the wire shape installed for ch: its FieldType, width in
// bytes, and whether it is signed (meaningful only for FieldInt/FieldCenti).
// ok is false if ch is not in the Config Table's char map.
func (c Config) CharSpec(ch byte) (typ FieldType, width int, signed bool, ok bool) {
	spec, ok := c.Chars[ch]
	return spec.typ, spec.width, spec.signed, ok
}

// SetChar installs or overwrites the wire shape for ch. Used by the Config
// Table loader to apply `[chars]`, `scaled_chars` and `latlon_char`
// overrides from an INI file.
func (c Config) SetChar(ch byte, typ FieldType, width int, signed bool) {
	c.Chars[ch] = charSpec{typ: typ, width: width, signed: signed}
}

// CharCodes returns every format character currently installed in the
// Config Table's char map, in ascending byte order, for deterministic
// serialization by the Config Table loader.
func (c Config) CharCodes() []byte {
	out := make([]byte, 0, len(c.Chars))
	for ch := range c.Chars {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// scaledChar reports whether c is a centi-scaled format character, i.e. one
// of the Config Table's scaled_chars.
func (c Config) scaledChar(ch byte) bool {
	spec, ok := c.Chars[ch]
	return ok && spec.typ == FieldCenti
}

// latLonChar reports whether c is the Config Table's designated lat/lon
// format character.
func (c Config) latLonChar(ch byte) bool {
	spec, ok := c.Chars[ch]
	return ok && spec.typ == FieldLatLon
}

// passthrough reports whether column should be emitted as raw bytes instead
// of being NUL-trimmed and decoded as ASCII.
func (c Config) passthrough(ch byte, column string) bool {
	return ch == 'Z' && c.PassthroughColumns[column]
}
