// Package dflog decodes ArduPilot-style MAVLink binary dataflash logs into a
// stream of self-describing, typed records.
//
// A log is a concatenation of frames, each starting with a two-byte sync
// pattern followed by a one-byte type id. The FORMAT frame (a reserved type
// id) declares the on-wire layout of every other frame type that follows it:
// name, total length, a per-field format-character string and the matching
// column names. Everything else in the stream is decoded against whatever
// FormatDef the FORMAT frames have installed so far.
//
// Session opens a log as a read-only memory-mapped byte image and hosts the
// decode cursor and the Format Dictionary for one decode. RecordDecoder walks
// that image one frame at a time. For logs large enough to be worth it,
// RunParallel partitions the image into record-aligned chunks with
// PlanChunks and decodes them concurrently, producing the same record
// sequence a single-threaded Session.Decode would.
package dflog
