package dflog

import "testing"

func TestCorruptionMapMarkAndCount(t *testing.T) {
	m := NewCorruptionMap(10)
	m.MarkSkipped(2)
	m.MarkSkipped(5)
	m.MarkSkipped(5) // marking twice must not double-count
	if got := m.SkippedCount(); got != 2 {
		t.Fatalf("expected 2 skipped bytes, got %d", got)
	}
	if frac := m.Fraction(); frac != 0.2 {
		t.Fatalf("expected fraction 0.2, got %v", frac)
	}
}

func TestCorruptionMapOutOfRangeIgnored(t *testing.T) {
	m := NewCorruptionMap(4)
	m.MarkSkipped(-1)
	m.MarkSkipped(4)
	m.MarkSkipped(100)
	if got := m.SkippedCount(); got != 0 {
		t.Fatalf("expected 0 skipped bytes, got %d", got)
	}
}

func TestCorruptionMapNilReceiverSafe(t *testing.T) {
	var m *CorruptionMap
	m.MarkSkipped(3) // must not panic
	if m.SkippedCount() != 0 {
		t.Fatal("expected 0 from a nil CorruptionMap")
	}
	if m.Fraction() != 0 {
		t.Fatal("expected 0 fraction from a nil CorruptionMap")
	}
}

func TestCorruptionMapEmptyImageFraction(t *testing.T) {
	m := NewCorruptionMap(0)
	if m.Fraction() != 0 {
		t.Fatal("expected 0 fraction for a zero-length image")
	}
}
