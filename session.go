package dflog

import "github.com/pkg/errors"

// Session is the scoped acquisition of a log file as a read-only memory
// image. It uniquely owns that image and the Format Dictionary for one
// decode, and guarantees the image is released on every exit path,
// including error, via Close.
type Session struct {
	path   string
	image  mappedImage
	dict   *FormatDictionary
	cfg    Config
	cursor int

	stats   Stats
	corrupt *CorruptionMap

	closed bool
}

// Open memory-maps path read-only and returns a Session ready to decode from
// offset 0. Returns EmptyImage if the file has zero bytes, or an IoError if
// the file cannot be opened or mapped.
func Open(path string, cfg Config) (*Session, error) {
	img, err := mapFile(path)
	if err != nil {
		return nil, IoError{Path: path, Cause: err}
	}
	if len(img.bytes()) == 0 {
		img.Close()
		return nil, EmptyImage{}
	}
	return &Session{
		path:    path,
		image:   img,
		dict:    NewFormatDictionary(),
		cfg:     cfg,
		corrupt: NewCorruptionMap(len(img.bytes())),
	}, nil
}

// Bytes returns the mapped image. The returned slice must not be modified,
// and becomes invalid after Close.
func (s *Session) Bytes() []byte {
	if s.closed {
		return nil
	}
	return s.image.bytes()
}

// Len returns the image length in bytes.
func (s *Session) Len() int {
	if s.closed {
		return 0
	}
	return len(s.image.bytes())
}

// Dictionary returns the session's Format Dictionary, grown in place by
// Decoder as it walks FORMAT frames.
func (s *Session) Dictionary() *FormatDictionary { return s.dict }

// Stats returns a pointer to the session's running decode statistics.
func (s *Session) Stats() *Stats { return &s.stats }

// Corruption returns the session's corruption map.
func (s *Session) Corruption() *CorruptionMap { return s.corrupt }

// NewDecoder returns a RecordDecoder over the whole image starting at the
// session's current cursor, sharing the session's dictionary, stats and
// corruption map. The returned decoder's progress is reflected back onto the
// session only when the caller calls Session.Advance.
func (s *Session) NewDecoder() (*RecordDecoder, error) {
	if s.closed {
		return nil, NotOpened{}
	}
	return NewRecordDecoder(s.image.bytes(), s.cursor, len(s.image.bytes()), s.cfg, s.dict, &s.stats, s.corrupt), nil
}

// Advance records where a decoder obtained from NewDecoder left its cursor,
// so a later NewDecoder call resumes rather than restarts.
func (s *Session) Advance(cursor int) { s.cursor = cursor }

// Close releases the mapped image. Re-entry (Bytes, NewDecoder, ...) after
// Close returns NotOpened / a nil slice.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Wrap(s.image.Close(), "closing session")
}

// Decode runs a RecordDecoder to completion over the whole image and returns
// every admitted record in file order. typeFilter restricts data records to
// one FormatDef name ("" for no filter). FORMAT records are returned only
// when typeFilter is "" or "FMT"; "FMT" returns FORMAT records alone.
func (s *Session) Decode(typeFilter string) ([]*Record, error) {
	dec, err := s.NewDecoder()
	if err != nil {
		return nil, err
	}
	dec.SetTypeFilter(typeFilter)
	var out []*Record
	for {
		rec, ok := dec.Next()
		if !ok {
			break
		}
		out = append(out, rec)
	}
	s.Advance(dec.Cursor())
	return out, nil
}
