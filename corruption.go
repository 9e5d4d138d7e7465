package dflog

import "github.com/boljen/go-bitmap"

// CorruptionMap is a compact bitmap over [0, length) marking byte offsets
// the Record Decoder skipped past while recovering from a frame that failed
// classification or validation. It is purely diagnostic: nothing in the
// decoder reads it back to change behavior, but the CLI's "info" command
// uses it to report what fraction of a log was never claimed by a valid
// frame without requiring a second pass over the image.
type CorruptionMap struct {
	bm     bitmap.Bitmap
	length int
}

// NewCorruptionMap allocates a map covering length bytes.
func NewCorruptionMap(length int) *CorruptionMap {
	return &CorruptionMap{bm: bitmap.New(length), length: length}
}

// MarkSkipped records that the decoder advanced one byte past offset while
// recovering from a rejected candidate frame.
func (c *CorruptionMap) MarkSkipped(offset int) {
	if c == nil || offset < 0 || offset >= c.length {
		return
	}
	c.bm.Set(offset, true)
}

// SkippedCount returns the total number of bytes marked as skipped.
func (c *CorruptionMap) SkippedCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for i := 0; i < c.length; i++ {
		if c.bm.Get(i) {
			n++
		}
	}
	return n
}

// Fraction returns SkippedCount() / length, or 0 for an empty image.
func (c *CorruptionMap) Fraction() float64 {
	if c == nil || c.length == 0 {
		return 0
	}
	return float64(c.SkippedCount()) / float64(c.length)
}
