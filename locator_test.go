package dflog

import "testing"

func TestLocateFrameFormat(t *testing.T) {
	cfg := DefaultConfig()
	image := buildFMTFrame(cfg, 100, "ATT", "ff", "Roll,Pitch", 11)
	dict := NewFormatDictionary()

	frame := locateFrame(image, 0, len(image), cfg, dict)
	if frame.Kind != FrameFormat {
		t.Fatalf("expected FrameFormat, got %v", frame.Kind)
	}
	if frame.Offset != 0 || frame.Length != cfg.FormatRecordLength {
		t.Errorf("unexpected frame: %+v", frame)
	}
}

func TestLocateFrameData(t *testing.T) {
	cfg := DefaultConfig()
	dict := NewFormatDictionary()
	fd, err := newFormatDef(cfg, 100, "ATT", 11, "ff", []string{"Roll", "Pitch"})
	if err != nil {
		t.Fatal(err)
	}
	dict.Put(100, fd)

	image := buildATTFrame(cfg, 100, 1.5, -2.5)
	frame := locateFrame(image, 0, len(image), cfg, dict)
	if frame.Kind != FrameData {
		t.Fatalf("expected FrameData, got %v", frame.Kind)
	}
	if frame.Def != fd {
		t.Error("expected frame.Def to be the installed FormatDef")
	}
}

func TestLocateFrameNoneOnEmptyOrNoSync(t *testing.T) {
	cfg := DefaultConfig()
	dict := NewFormatDictionary()

	if frame := locateFrame(nil, 0, 0, cfg, dict); frame.Kind != FrameNone {
		t.Errorf("expected FrameNone for empty image, got %v", frame.Kind)
	}

	noise := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	if frame := locateFrame(noise, 0, len(noise), cfg, dict); frame.Kind != FrameNone {
		t.Errorf("expected FrameNone for image with no sync bytes, got %v", frame.Kind)
	}
}

func TestLocateFrameSkipsUnknownTypeID(t *testing.T) {
	cfg := DefaultConfig()
	dict := NewFormatDictionary()

	// A sync match whose type id is neither FormatTypeID nor in the
	// dictionary must be skipped rather than returned.
	unknown := []byte{cfg.SyncBytes[0], cfg.SyncBytes[1], 0xEE}
	real := buildFMTFrame(cfg, 100, "ATT", "ff", "Roll,Pitch", 11)
	image := append(append([]byte{}, unknown...), real...)

	frame := locateFrame(image, 0, len(image), cfg, dict)
	if frame.Kind != FrameFormat {
		t.Fatalf("expected locator to skip the unknown match and find the FMT frame, got %v at offset %d", frame.Kind, frame.Offset)
	}
	if frame.Offset != len(unknown) {
		t.Errorf("expected frame at offset %d, got %d", len(unknown), frame.Offset)
	}
}
