package dflog

// PacketTypeKey is the reserved key holding the record's type name: "FMT"
// for a decoded FORMAT record, or FormatDef.Name for a data record.
const PacketTypeKey = "mavpackettype"

// Record is an ordered column-name-to-value mapping plus the reserved
// mavpackettype key. Field values are int64, float64, []byte (passthrough
// columns), string (decoded ASCII) or []int64 (array fields).
//
// Order is preserved because callers (CSV writers in particular) render
// records column-by-column in declaration order; a plain map loses that.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// NewRecord creates an empty record with no columns.
func NewRecord() *Record {
	return &Record{values: make(map[string]interface{})}
}

// Set appends or overwrites a column. The first Set of a given key fixes its
// position in Keys().
func (r *Record) Set(key string, value interface{}) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether it was present.
func (r *Record) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in the order they were first Set. Data records put
// mavpackettype last; decoded FORMAT records put it first.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Type returns the record's mavpackettype value, or "" if unset.
func (r *Record) Type() string {
	v, _ := r.Get(PacketTypeKey)
	s, _ := v.(string)
	return s
}
