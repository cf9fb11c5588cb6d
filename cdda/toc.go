package cdda

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Track reports the position information for one audio track from the
// table of contents.
//
// StartSector and EndSector are absolute disc LBAs. EndSector is
// exclusive: it is the start of the following track, or the lead-out
// address for the last track.
type Track struct {
	Number      int
	Title       string
	StartSector int64
	EndSector   int64
	Duration    time.Duration
}

// LengthSectors returns the total number of sectors the track covers.
func (t Track) LengthSectors() int64 {
	return t.EndSector - t.StartSector
}

// PCMBytes returns the number of bytes of raw audio data on the track.
func (t Track) PCMBytes() int64 {
	return t.LengthSectors() * BytesPerSector
}

// tocHeaderSize is the fixed prefix of a READ TOC response:
// 2 bytes data length, first track number, last track number.
const tocHeaderSize = 4

// tocDescriptorSize is the size of each track descriptor that follows
// the header: reserved, adr/control, track number, reserved, 4-byte LBA.
const tocDescriptorSize = 8

// ParseTOC decodes a raw big-endian table of contents blob into an
// ordered list of audio tracks.
//
// The end of each track is the start of the next; the end of the last
// track is the lead-out address. The lead-in (track 0) is skipped.
// A track whose descriptor is missing is silently omitted.
//
// A malformed or undersized blob yields an empty list rather than an
// error: a junk TOC means "no usable tracks", not a failure the caller
// can act on.
func ParseTOC(raw []byte) []Track {
	if len(raw) < tocHeaderSize {
		return nil
	}
	first := int(raw[2])
	last := int(raw[3])
	if last < first {
		return nil
	}

	// index descriptors by track number
	starts := make(map[int]int64)
	leadOut := int64(-1)
	for off := tocHeaderSize; off+tocDescriptorSize <= len(raw); off += tocDescriptorSize {
		num := int(raw[off+2])
		lba := int64(binary.BigEndian.Uint32(raw[off+4 : off+8]))
		if num == LeadOutTrack {
			leadOut = lba
		} else {
			starts[num] = lba
		}
	}
	if leadOut < 0 {
		return nil
	}

	if first < 1 {
		first = 1
	}
	tracks := make([]Track, 0, last-first+1)
	for num := first; num <= last; num++ {
		start, ok := starts[num]
		if !ok {
			continue
		}
		end := leadOut
		// walk forward to the next present track
		for next := num + 1; next <= last; next++ {
			if s, ok := starts[next]; ok {
				end = s
				break
			}
		}
		if end <= start {
			continue
		}
		tracks = append(tracks, Track{
			Number:      num,
			Title:       fmt.Sprintf("Track %02d", num),
			StartSector: start,
			EndSector:   end,
			Duration:    time.Duration((end-start)*1000/SectorsPerSecond) * time.Millisecond,
		})
	}
	return tracks
}

// AppendTOC appends a raw table of contents blob describing the given
// track layout, in the same layout ParseTOC decodes. leadOut is the
// LBA of the first sector past the last track.
func AppendTOC(b []byte, trackStarts []int64, leadOut int64) []byte {
	n := len(trackStarts)
	dataLen := 2 + (n+1)*tocDescriptorSize
	b = binary.BigEndian.AppendUint16(b, uint16(dataLen))
	b = append(b, 1, byte(n))
	for i, start := range trackStarts {
		b = append(b, 0, 0x10, byte(i+1), 0)
		b = binary.BigEndian.AppendUint32(b, uint32(start))
	}
	b = append(b, 0, 0x10, LeadOutTrack, 0)
	b = binary.BigEndian.AppendUint32(b, uint32(leadOut))
	return b
}
