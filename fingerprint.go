package dflog

import "github.com/dchest/siphash"

// fingerprintKey0/1 key the SipHash used for chunk fingerprints. They have no
// cryptographic significance; they only need to be fixed so fingerprints are
// stable across runs and across a process-parallel worker's independent
// mapping of the same file.
const (
	fingerprintKey0 = 0x646b6c666c6f67 // "dklflog" - arbitrary fixed key
	fingerprintKey1 = 0x6368756e6b6669 // "chunkfi" - arbitrary fixed key
)

// chunkFingerprint returns a SipHash-64 digest over a Chunk Range's boundary
// bytes (up to 4KiB from the start and from the end). It is logged when the
// Parallel Driver dispatches a worker so operators can correlate per-worker
// log lines for a given range across independently interleaved worker logs.
// It plays no role in decoding correctness.
func chunkFingerprint(image []byte, start, end uint64) uint64 {
	const window = 4096
	s, e := int(start), int(end)
	if s < 0 {
		s = 0
	}
	if e > len(image) {
		e = len(image)
	}
	head := image[s:min(e, s+window)]
	tailStart := max(s, e-window)
	tail := image[tailStart:e]
	buf := make([]byte, 0, len(head)+len(tail)+16)
	buf = append(buf, head...)
	buf = append(buf, tail...)
	return siphash.Hash(fingerprintKey0, fingerprintKey1, buf)
}
