package dflog

import "testing"

func TestDefaultConfigCharTable(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		ch     byte
		typ    FieldType
		width  int
		signed bool
	}{
		{'b', FieldInt, 1, true},
		{'B', FieldInt, 1, false},
		{'h', FieldInt, 2, true},
		{'H', FieldInt, 2, false},
		{'i', FieldInt, 4, true},
		{'I', FieldInt, 4, false},
		{'q', FieldInt, 8, true},
		{'Q', FieldInt, 8, false},
		{'f', FieldFloat, 4, true},
		{'d', FieldFloat, 8, true},
		{'c', FieldCenti, 2, true},
		{'C', FieldCenti, 2, false},
		{'e', FieldCenti, 4, true},
		{'E', FieldCenti, 4, false},
		{'L', FieldLatLon, 4, true},
		{'n', FieldString, 4, false},
		{'N', FieldString, 16, false},
		{'Z', FieldString, 64, false},
		{'a', FieldArray, 64, true},
	}
	for _, tt := range tests {
		spec, ok := cfg.Chars[tt.ch]
		if !ok {
			t.Fatalf("char %q missing from default config", tt.ch)
		}
		if spec.typ != tt.typ || spec.width != tt.width || spec.signed != tt.signed {
			t.Errorf("char %q: got %+v, want type=%v width=%d signed=%v", tt.ch, spec, tt.typ, tt.width, tt.signed)
		}
	}
}

func TestConfigScaledAndLatLonChars(t *testing.T) {
	cfg := DefaultConfig()
	for _, ch := range []byte{'c', 'C', 'e', 'E'} {
		if !cfg.scaledChar(ch) {
			t.Errorf("%q should be a scaled char", ch)
		}
	}
	if !cfg.latLonChar('L') {
		t.Error("'L' should be the lat/lon char")
	}
	if cfg.scaledChar('L') {
		t.Error("'L' should not also be a scaled char")
	}
}

func TestConfigPassthrough(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.passthrough('Z', "Data") {
		t.Error("Data column with Z format should be passthrough")
	}
	if cfg.passthrough('Z', "Message") {
		t.Error("Message column should not be passthrough")
	}
	if cfg.passthrough('N', "Data") {
		t.Error("passthrough only applies to the Z format char")
	}
}
