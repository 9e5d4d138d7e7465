package dflog

import (
	"os"
	"testing"

	"github.com/folbricht/tempfile"
)

func writeTempLog(t *testing.T, data []byte) string {
	t.Helper()
	f, err := tempfile.New("", "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(f.Name()) })
	if _, err := f.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func TestSessionOpenEmptyFile(t *testing.T) {
	path := writeTempLog(t, nil)
	if _, err := Open(path, DefaultConfig()); err == nil {
		t.Fatal("expected EmptyImage error")
	} else if _, ok := err.(EmptyImage); !ok {
		t.Fatalf("expected EmptyImage, got %T", err)
	}
}

func TestSessionOpenMissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/path/to/log.bin", DefaultConfig()); err == nil {
		t.Fatal("expected an IoError for a missing file")
	}
}

func TestSessionDecodeAndClose(t *testing.T) {
	path := writeTempLog(t, buildLog(5))
	sess, err := Open(path, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	records, err := sess.Decode("")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 6 { // 1 FMT + 5 ATT
		t.Fatalf("expected 6 records, got %d", len(records))
	}

	if err := sess.Close(); err != nil {
		t.Fatal(err)
	}
	// Closing twice must be a no-op, not an error.
	if err := sess.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
	if sess.Bytes() != nil {
		t.Error("Bytes() should return nil after Close")
	}
	if _, err := sess.NewDecoder(); err == nil {
		t.Fatal("expected NotOpened after Close")
	} else if _, ok := err.(NotOpened); !ok {
		t.Fatalf("expected NotOpened, got %T", err)
	}
}

func TestSessionDecodeFMTOnlyPrelude(t *testing.T) {
	path := writeTempLog(t, buildLog(5))
	sess, err := Open(path, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	records, err := sess.Decode("FMT")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected only the FMT record, got %d", len(records))
	}
	if sess.Dictionary().Len() != 1 {
		t.Fatalf("expected 1 installed format, got %d", sess.Dictionary().Len())
	}
}
