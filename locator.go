package dflog

import "bytes"

// FrameKind classifies a candidate frame found by the Frame Locator.
type FrameKind int

const (
	// FrameNone means no further sync occurrence exists in [from, until).
	FrameNone FrameKind = iota
	// FrameFormat is a FORMAT frame: sync, FormatTypeID, and enough bytes
	// left in the image for the fixed FORMAT record length.
	FrameFormat
	// FrameData is a frame whose type id is already in the Format
	// Dictionary and whose declared length fits inside the image.
	FrameData
	// FrameUnknown is a sync match that satisfies neither classification:
	// either the type id is unrecognized, or the declared/fixed length
	// would run past the end of the image.
	FrameUnknown
)

// Frame is one classified candidate returned by the Frame Locator.
type Frame struct {
	Kind   FrameKind
	Offset int    // absolute offset of the sync byte
	TypeID byte   // image[Offset+2]
	Length int    // declared wire length, 0 for FrameUnknown/FrameNone
	Def    *FormatDef // set only for FrameData
}

// locateFrame finds the next candidate frame in image[from:until), skipping
// over each Unknown sync match by the length of the sync pattern, per
// spec.md §4.1. until may
// equal len(image) for an unbounded search.
func locateFrame(image []byte, from, until int, cfg Config, dict *FormatDictionary) Frame {
	if until > len(image) {
		until = len(image)
	}
	cursor := from
	for cursor < until {
		rel := bytes.Index(image[cursor:until], cfg.SyncBytes[:])
		if rel < 0 {
			return Frame{Kind: FrameNone}
		}
		p := cursor + rel

		if p+3 <= len(image) {
			typeID := image[p+2]
			switch {
			case typeID == cfg.FormatTypeID && p+cfg.FormatRecordLength <= len(image):
				return Frame{Kind: FrameFormat, Offset: p, TypeID: typeID, Length: cfg.FormatRecordLength}
			default:
				if fd, ok := dict.Get(typeID); ok && p+fd.Length <= len(image) {
					return Frame{Kind: FrameData, Offset: p, TypeID: typeID, Length: fd.Length, Def: fd}
				}
			}
		}
		// Unknown: sync matched but neither classification held. Advance
		// past just the sync bytes and keep scanning; the sync may simply
		// have appeared inside a payload.
		cursor = p + len(cfg.SyncBytes)
	}
	return Frame{Kind: FrameNone}
}
