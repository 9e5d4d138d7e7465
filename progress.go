package dflog

// ProgressBar reports scan progress in terms of bytes of the image consumed.
// Implementations must tolerate a nil receiver (so a caller can pass a typed
// nil to mean "no bar") and must be safe to drive from multiple goroutines,
// since the Parallel Driver's workers report progress concurrently.
type ProgressBar interface {
	SetTotal(total int)
	Set(n int)
	Start()
	Finish()
}
