package dflog

import "testing"

func TestChunkFingerprintDeterministic(t *testing.T) {
	image := buildLog(1000)
	a := chunkFingerprint(image, 0, uint64(len(image)))
	b := chunkFingerprint(image, 0, uint64(len(image)))
	if a != b {
		t.Fatal("fingerprint should be deterministic for the same range")
	}
}

func TestChunkFingerprintDiffersAcrossRanges(t *testing.T) {
	image := buildLog(1000)
	a := chunkFingerprint(image, 0, uint64(len(image)/2))
	b := chunkFingerprint(image, uint64(len(image)/2), uint64(len(image)))
	if a == b {
		t.Fatal("expected different fingerprints for different ranges")
	}
}

func TestChunkFingerprintClampsOutOfBoundsEnd(t *testing.T) {
	image := buildLog(10)
	// Must not panic when end overshoots the image length.
	_ = chunkFingerprint(image, 0, uint64(len(image)*2))
}
