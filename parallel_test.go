package dflog

import (
	"context"
	"testing"
)

// recordsEqual compares two records field-by-field in declaration order.
func recordsEqual(a, b *Record) bool {
	ak, bk := a.Keys(), b.Keys()
	if len(ak) != len(bk) {
		return false
	}
	for i, k := range ak {
		if bk[i] != k {
			return false
		}
		av, _ := a.Get(k)
		bv, _ := b.Get(k)
		if af, ok := av.(float64); ok {
			bf, ok2 := bv.(float64)
			if !ok2 || af != bf {
				return false
			}
			continue
		}
		if av != bv {
			return false
		}
	}
	return true
}

// TestParallelDriverMatchesSingleThreaded mirrors the teacher's
// TestParallelChunking: decode the same input single-threaded and through
// the Parallel Driver at several worker counts and scheduling modes, and
// assert the outputs are byte-for-byte (field-for-field) identical.
func TestParallelDriverMatchesSingleThreaded(t *testing.T) {
	path := writeTempLog(t, buildLog(1_000_000))

	cfg := DefaultConfig()
	reference, err := Open(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer reference.Close()
	refRecords, err := reference.Decode("")
	if err != nil {
		t.Fatal(err)
	}

	for _, mode := range []SchedulingMode{ProcessParallel, ThreadParallel} {
		for _, workers := range []int{1, 2, 4, 8} {
			res, err := RunParallel(context.Background(), path, cfg, workers, mode, "", nil)
			if err != nil {
				t.Fatalf("mode=%v workers=%d: %v", mode, workers, err)
			}
			if len(res.Records) != len(refRecords) {
				t.Fatalf("mode=%v workers=%d: expected %d records, got %d", mode, workers, len(refRecords), len(res.Records))
			}
			for i := range refRecords {
				if !recordsEqual(refRecords[i], res.Records[i]) {
					t.Fatalf("mode=%v workers=%d: record %d diverges", mode, workers, i)
				}
			}
			if res.State != Done {
				t.Errorf("mode=%v workers=%d: expected state Done, got %v", mode, workers, res.State)
			}
		}
	}
}

func TestRunParallelEmptyImage(t *testing.T) {
	path := writeTempLog(t, nil)
	_, err := RunParallel(context.Background(), path, DefaultConfig(), 4, ProcessParallel, "", nil)
	if err == nil {
		t.Fatal("expected an error for an empty image")
	}
}

func TestRunParallelTypeFilter(t *testing.T) {
	path := writeTempLog(t, buildLog(100))
	res, err := RunParallel(context.Background(), path, DefaultConfig(), 2, ProcessParallel, "FMT", nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range res.Records {
		if rec.Type() != "FMT" {
			t.Fatalf("expected only FMT records, got %q", rec.Type())
		}
	}
}
