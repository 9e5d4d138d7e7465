package dflog

import "strings"

// fieldLayout is one precomputed field of a FormatDef's batched payload
// extractor: the byte offset and width within the payload (payload starts
// right after the 3-byte frame header) and the format character governing
// how the raw bytes are interpreted.
type fieldLayout struct {
	column string
	char   byte
	offset int
	width  int
}

// FormatDef is the in-memory layout descriptor derived from one FORMAT
// frame: name, total wire length (header included), the format-character
// string and the matching column names, plus a precomputed field-by-field
// layout so the Record Decoder can unpack a payload in one pass instead of
// re-deriving offsets from the format string on every record.
type FormatDef struct {
	TypeID  byte
	Name    string
	Length  int
	Format  string
	Columns []string
	Layout  []fieldLayout
}

// buildLayout walks format/columns against the Config Table and returns the
// precomputed field layout, or an UnknownFormatChar error if any character
// is missing from the table. Per invariant 1 (spec.md §3), the caller must
// have already checked len(format) == len(columns).
func buildLayout(cfg Config, name, format string, columns []string) ([]fieldLayout, error) {
	layout := make([]fieldLayout, len(format))
	offset := 0
	for i := 0; i < len(format); i++ {
		ch := format[i]
		spec, ok := cfg.Chars[ch]
		if !ok {
			return nil, UnknownFormatChar{Char: ch, Name: name}
		}
		layout[i] = fieldLayout{
			column: columns[i],
			char:   ch,
			offset: offset,
			width:  spec.width,
		}
		offset += spec.width
	}
	return layout, nil
}

// newFormatDef validates and constructs a FormatDef from a decoded FORMAT
// frame's fields. It returns an error (without installing anything) if the
// frame fails validation — the caller must treat that as a parse failure
// that does not halt the stream (spec.md §7).
func newFormatDef(cfg Config, typeID byte, name string, length int, format string, columns []string) (*FormatDef, error) {
	if name == "" || format == "" || len(columns) == 0 {
		return nil, UnknownFormatChar{Name: name}
	}
	if len(format) != len(columns) {
		return nil, UnknownFormatChar{Name: name}
	}
	layout, err := buildLayout(cfg, name, format, columns)
	if err != nil {
		return nil, err
	}
	return &FormatDef{
		TypeID:  typeID,
		Name:    name,
		Length:  length,
		Format:  format,
		Columns: columns,
		Layout:  layout,
	}, nil
}

// splitColumns parses the comma-separated, NUL-trimmed columns field of a
// FORMAT frame, dropping empty entries.
func splitColumns(raw string) []string {
	raw = trimNUL(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func trimNUL(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}

// FormatDictionary is a mutable mapping from record-type-id (0-255) to the
// FormatDef installed for it. Replace-on-put, no removal — a later FORMAT
// frame for an already-known type id simply overwrites the earlier
// definition, per spec.md invariant "two FORMAT records with the same type
// id: the later replaces the earlier".
type FormatDictionary struct {
	defs map[byte]*FormatDef
}

// NewFormatDictionary returns an empty dictionary.
func NewFormatDictionary() *FormatDictionary {
	return &FormatDictionary{defs: make(map[byte]*FormatDef)}
}

// Get returns the FormatDef installed for id, if any.
func (d *FormatDictionary) Get(id byte) (*FormatDef, bool) {
	fd, ok := d.defs[id]
	return fd, ok
}

// Put installs or replaces the FormatDef for id.
func (d *FormatDictionary) Put(id byte, fd *FormatDef) {
	d.defs[id] = fd
}

// Len returns the number of installed definitions.
func (d *FormatDictionary) Len() int { return len(d.defs) }

// Snapshot returns a deep, independent copy of the dictionary suitable for
// handing to a process-parallel worker: plain (name, length, format,
// columns) data only. Precomputed layouts are not copied — a process-
// parallel worker must rebuild them from the format string itself, per
// spec.md §5, since they are not meant to be treated as transferable state.
func (d *FormatDictionary) Snapshot(cfg Config) *FormatDictionary {
	out := NewFormatDictionary()
	for id, fd := range d.defs {
		layout, err := buildLayout(cfg, fd.Name, fd.Format, fd.Columns)
		if err != nil {
			// The definition was valid when installed and the Config Table
			// hasn't changed, so this cannot fail in practice; skip rather
			// than panic if it ever does.
			continue
		}
		out.defs[id] = &FormatDef{
			TypeID:  fd.TypeID,
			Name:    fd.Name,
			Length:  fd.Length,
			Format:  fd.Format,
			Columns: append([]string(nil), fd.Columns...),
			Layout:  layout,
		}
	}
	return out
}

// Clone returns a shallow, independent dictionary that shares its FormatDef
// pointers (and their precomputed layouts) with d. Used for thread-parallel
// workers: they never mutate a shared FormatDef in place, only ever replace
// their own local dictionary entry when they learn a new FORMAT frame inside
// their chunk, so sharing the pointers is safe.
func (d *FormatDictionary) Clone() *FormatDictionary {
	out := NewFormatDictionary()
	for id, fd := range d.defs {
		out.defs[id] = fd
	}
	return out
}
