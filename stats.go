package dflog

import "sync/atomic"

// Stats accumulates counters for one decode session, safe for concurrent use
// so a single instance can be shared across the Parallel Driver's workers.
type Stats struct {
	FramesSeen      uint64 // every classified frame, FORMAT or data
	FormatInstalled uint64 // FORMAT frames that successfully installed a FormatDef
	RecordsEmitted  uint64 // records returned to the caller
	BytesSkipped    uint64 // bytes advanced past while recovering from bad frames
}

func (s *Stats) incFramesSeen()      { atomic.AddUint64(&s.FramesSeen, 1) }
func (s *Stats) incFormatInstalled() { atomic.AddUint64(&s.FormatInstalled, 1) }
func (s *Stats) incRecordsEmitted()  { atomic.AddUint64(&s.RecordsEmitted, 1) }
func (s *Stats) addBytesSkipped(n int) {
	if n > 0 {
		atomic.AddUint64(&s.BytesSkipped, uint64(n))
	}
}

// Merge adds another Stats' counters into s. Used by the Parallel Driver to
// fold per-worker stats into one aggregate result.
func (s *Stats) Merge(o *Stats) {
	if o == nil {
		return
	}
	atomic.AddUint64(&s.FramesSeen, atomic.LoadUint64(&o.FramesSeen))
	atomic.AddUint64(&s.FormatInstalled, atomic.LoadUint64(&o.FormatInstalled))
	atomic.AddUint64(&s.RecordsEmitted, atomic.LoadUint64(&o.RecordsEmitted))
	atomic.AddUint64(&s.BytesSkipped, atomic.LoadUint64(&o.BytesSkipped))
}
