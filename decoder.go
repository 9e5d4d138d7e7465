package dflog

import (
	"encoding/binary"
	"math"
	"strings"
)

// RecordDecoder walks a byte image from cursor to endLimit, maintaining and
// consuming a Format Dictionary, and yields decoded records one at a time.
// It never returns a partially-built record: on any per-frame failure it
// recovers by advancing one byte and retrying, per spec.md §7.
type RecordDecoder struct {
	image    []byte
	cursor   int
	endLimit int // exclusive upper bound; len(image) for an unbounded decode

	cfg  Config
	dict *FormatDictionary

	// typeFilter restricts data-frame decoding to one FormatDef name. Empty
	// means no filter. Normalized FORMAT records are emitted only when
	// typeFilter is empty or "FMT"; "FMT" admits no data records at all.
	typeFilter string

	stats    *Stats
	corrupt  *CorruptionMap
}

// NewRecordDecoder builds a decoder over image[cursor:endLimit] sharing dict
// (which it may grow by installing new FormatDefs as it encounters FORMAT
// frames) and cfg. stats and corrupt may be nil.
func NewRecordDecoder(image []byte, cursor, endLimit int, cfg Config, dict *FormatDictionary, stats *Stats, corrupt *CorruptionMap) *RecordDecoder {
	return &RecordDecoder{
		image:    image,
		cursor:   cursor,
		endLimit: endLimit,
		cfg:      cfg,
		dict:     dict,
		stats:    stats,
		corrupt:  corrupt,
	}
}

// SetTypeFilter restricts data-frame decoding to FormatDef name. Pass "" to
// clear the filter.
func (d *RecordDecoder) SetTypeFilter(name string) { d.typeFilter = name }

// Cursor returns the decoder's current absolute offset into the image.
func (d *RecordDecoder) Cursor() int { return d.cursor }

// Next returns the next admitted record, or (nil, false) when the stream
// inside [start, endLimit) is exhausted — either no more valid headers
// exist, or the next candidate's payload would run past endLimit (a clean
// stream termination, not an error, per spec.md §7).
func (d *RecordDecoder) Next() (*Record, bool) {
	for {
		frame := locateFrame(d.image, d.cursor, d.endLimit, d.cfg, d.dict)
		if frame.Kind != FrameNone && frame.Offset > d.cursor {
			// Bytes the locator scanned past without finding a valid frame.
			for off := d.cursor; off < frame.Offset; off++ {
				d.corrupt.MarkSkipped(off)
			}
			if d.stats != nil {
				d.stats.addBytesSkipped(frame.Offset - d.cursor)
			}
		}
		if frame.Kind != FrameNone && frame.Offset+frame.Length > d.endLimit {
			return nil, false
		}
		switch frame.Kind {
		case FrameNone:
			return nil, false

		case FrameFormat:
			if d.stats != nil {
				d.stats.incFramesSeen()
			}
			rec, installed := d.decodeFormatFrame(frame)
			if installed {
				d.cursor = frame.Offset + d.cfg.FormatRecordLength
			} else {
				d.markSkip(frame.Offset, 1)
				d.cursor = frame.Offset + 1
			}
			if rec == nil {
				continue
			}
			if d.admitsFMT() {
				if d.stats != nil {
					d.stats.incRecordsEmitted()
				}
				return rec, true
			}
			continue

		case FrameData:
			if d.stats != nil {
				d.stats.incFramesSeen()
			}
			fd := frame.Def
			if d.typeFilter != "" && fd.Name != d.typeFilter {
				d.cursor = frame.Offset + frame.Length
				continue
			}
			rec, err := d.decodeDataFrame(frame, fd)
			if err != nil {
				Log.WithError(err).Warn("skipping unreadable data frame")
				d.markSkip(frame.Offset, 1)
				d.cursor = frame.Offset + 1
				continue
			}
			d.cursor = frame.Offset + frame.Length
			if d.stats != nil {
				d.stats.incRecordsEmitted()
			}
			return rec, true

		case FrameUnknown:
			// locateFrame never returns FrameUnknown directly; it keeps
			// scanning internally. Kept here defensively.
			d.markSkip(frame.Offset, 1)
			d.cursor = frame.Offset + 1
			continue
		}
	}
}

func (d *RecordDecoder) admitsFMT() bool {
	return d.typeFilter == "" || d.typeFilter == "FMT"
}

func (d *RecordDecoder) markSkip(offset, n int) {
	d.corrupt.MarkSkipped(offset)
	if d.stats != nil {
		d.stats.addBytesSkipped(n)
	}
}

// decodeFormatFrame parses a FORMAT frame's fixed layout and, if it
// validates, installs a FormatDef and returns the normalized FORMAT record
// with installed=true. On a validation failure it returns (nil, false). The
// type filter is not consulted here; Next decides whether to emit the record.
func (d *RecordDecoder) decodeFormatFrame(frame Frame) (rec *Record, installed bool) {
	p := frame.Offset
	if p+d.cfg.FormatRecordLength > len(d.image) {
		return nil, false
	}
	body := d.image[p : p+d.cfg.FormatRecordLength]

	msgType := body[fmtOffMsgType]
	length := int(body[fmtOffLength])
	name := trimNUL(string(body[fmtOffName : fmtOffName+fmtNameLen]))
	format := trimNUL(string(body[fmtOffFormat : fmtOffFormat+fmtFormatLen]))
	columns := splitColumns(string(body[fmtOffColumns : fmtOffColumns+fmtColumnsLen]))

	fd, err := newFormatDef(d.cfg, msgType, name, length, format, columns)
	if err != nil {
		Log.WithError(err).Warn("rejecting invalid FORMAT frame")
		return nil, false
	}
	d.dict.Put(msgType, fd)
	if d.stats != nil {
		d.stats.incFormatInstalled()
	}

	rec = NewRecord()
	rec.Set(PacketTypeKey, "FMT")
	rec.Set("Type", int64(msgType))
	rec.Set("Name", name)
	rec.Set("Length", int64(length))
	rec.Set("Format", format)
	rec.Set("Columns", strings.Join(columns, ","))
	return rec, true
}

// decodeDataFrame unpacks a data frame's payload according to fd.Layout.
func (d *RecordDecoder) decodeDataFrame(frame Frame, fd *FormatDef) (*Record, error) {
	p := frame.Offset
	if p+fd.Length > len(d.image) {
		return nil, NoValidHeader{}
	}
	payload := d.image[p+3 : p+fd.Length]

	rec := NewRecord()
	for _, fl := range fd.Layout {
		if fl.offset+fl.width > len(payload) {
			return nil, NoValidHeader{}
		}
		raw := payload[fl.offset : fl.offset+fl.width]
		val, err := decodeField(d.cfg, fl.char, fl.column, raw)
		if err != nil {
			return nil, err
		}
		rec.Set(fl.column, val)
	}
	rec.Set(PacketTypeKey, fd.Name)
	return rec, nil
}

// decodeField applies the Config Table's field decoding rules (spec.md §4.2)
// to one raw field.
func decodeField(cfg Config, ch byte, column string, raw []byte) (interface{}, error) {
	spec, ok := cfg.Chars[ch]
	if !ok {
		return nil, UnknownFormatChar{Char: ch}
	}

	switch spec.typ {
	case FieldInt:
		return decodeInt(raw, spec.signed), nil

	case FieldFloat:
		switch len(raw) {
		case 4:
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(raw))), nil
		case 8:
			return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
		}
		return nil, UnknownFormatChar{Char: ch}

	case FieldCenti:
		return float64(decodeInt(raw, spec.signed)) / 100.0, nil

	case FieldLatLon:
		return float64(decodeInt(raw, true)) / 1e7, nil

	case FieldString:
		if cfg.passthrough(ch, column) {
			out := make([]byte, len(raw))
			copy(out, raw)
			return out, nil
		}
		return decodeASCII(raw), nil

	case FieldArray:
		n := len(raw) / 2
		out := make([]int64, n)
		for i := 0; i < n; i++ {
			out[i] = int64(int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2])))
		}
		return out, nil
	}
	return nil, UnknownFormatChar{Char: ch}
}

// decodeInt interprets raw (1, 2, 4 or 8 little-endian bytes) as a signed or
// unsigned integer and returns it widened to int64.
func decodeInt(raw []byte, signed bool) int64 {
	var u uint64
	switch len(raw) {
	case 1:
		u = uint64(raw[0])
	case 2:
		u = uint64(binary.LittleEndian.Uint16(raw))
	case 4:
		u = uint64(binary.LittleEndian.Uint32(raw))
	case 8:
		u = binary.LittleEndian.Uint64(raw)
	}
	if !signed {
		return int64(u)
	}
	switch len(raw) {
	case 1:
		return int64(int8(u))
	case 2:
		return int64(int16(u))
	case 4:
		return int64(int32(u))
	default:
		return int64(u)
	}
}

// decodeASCII strips trailing NULs and decodes the remainder as ASCII,
// dropping any byte that isn't valid 7-bit ASCII (best-effort, per spec.md
// §4.2).
func decodeASCII(raw []byte) string {
	trimmed := raw
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == 0 {
		trimmed = trimmed[:len(trimmed)-1]
	}
	out := make([]byte, 0, len(trimmed))
	for _, b := range trimmed {
		if b == 0 {
			continue
		}
		if b < 0x80 {
			out = append(out, b)
		}
	}
	return string(out)
}
