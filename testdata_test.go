package dflog

import (
	"encoding/binary"
	"math"
)

// buildFMTFrame and buildATTFrame assemble raw wire bytes for a "ATT"
// message type (two float32 fields: Roll, Pitch) used across this package's
// tests, mirroring the shape a real dataflash log's FORMAT/data frame pair
// takes.

func buildFMTFrame(cfg Config, msgType byte, name, format, columns string, recordLen int) []byte {
	buf := make([]byte, cfg.FormatRecordLength)
	buf[0], buf[1] = cfg.SyncBytes[0], cfg.SyncBytes[1]
	buf[2] = cfg.FormatTypeID
	buf[3] = msgType
	buf[4] = byte(recordLen)
	copy(buf[5:9], name)
	copy(buf[9:25], format)
	copy(buf[25:89], columns)
	return buf
}

func buildATTFrame(cfg Config, msgType byte, roll, pitch float32) []byte {
	buf := make([]byte, 11)
	buf[0], buf[1] = cfg.SyncBytes[0], cfg.SyncBytes[1]
	buf[2] = msgType
	binary.LittleEndian.PutUint32(buf[3:7], math.Float32bits(roll))
	binary.LittleEndian.PutUint32(buf[7:11], math.Float32bits(pitch))
	return buf
}

// buildLog concatenates one FMT frame declaring message type 100 ("ATT")
// followed by n ATT data frames with distinct values.
func buildLog(n int) []byte {
	cfg := DefaultConfig()
	out := buildFMTFrame(cfg, 100, "ATT", "ff", "Roll,Pitch", 11)
	for i := 0; i < n; i++ {
		out = append(out, buildATTFrame(cfg, 100, float32(i), float32(i)*2)...)
	}
	return out
}

// buildSCLFrame assembles a "SCL" data frame: a centi-scaled field ("c"), a
// lat/lon field ("L") and a passthrough blob field ("Z"), matching the
// default Config Table's char table and its "Blob" passthrough column.
func buildSCLFrame(cfg Config, msgType byte, centi int16, latlon int32, blob []byte) []byte {
	buf := make([]byte, 3+2+4+64)
	buf[0], buf[1] = cfg.SyncBytes[0], cfg.SyncBytes[1]
	buf[2] = msgType
	binary.LittleEndian.PutUint16(buf[3:5], uint16(centi))
	binary.LittleEndian.PutUint32(buf[5:9], uint32(latlon))
	copy(buf[9:73], blob)
	return buf
}
