package wav

import (
	"fmt"
	"io"

	"github.com/rabidaudio/discstream/cdda"
	"github.com/rabidaudio/discstream/scsi"
)

// LengthUnbounded opens a TrackSource through to the end of the
// virtual file.
const LengthUnbounded = -1

// TrackSource reads a single audio track as a virtual WAV file of
// HeaderSize + PCM bytes. Byte ranges that fall inside the header are
// served from a synthesized header; the rest is translated to sector
// reads against the drive.
//
// TrackSource implements io.ReadCloser. Reads may return fewer bytes
// than requested; callers are expected to re-invoke. io.EOF marks the
// end of the opened range, any other error is a device failure.
type TrackSource struct {
	dev   scsi.Device
	track cdda.Track

	offset    int64
	remaining int64
	opened    bool
}

var _ io.ReadCloser = (*TrackSource)(nil)

func NewTrackSource(dev scsi.Device, track cdda.Track) *TrackSource {
	return &TrackSource{dev: dev, track: track}
}

// Size returns the total length of the virtual file.
func (s *TrackSource) Size() int64 {
	return HeaderSize + s.track.PCMBytes()
}

// Open positions the source at offset and declares how many bytes the
// range will produce. length may be LengthUnbounded to read through to
// the end. Opening at or past the end of the file returns io.EOF.
func (s *TrackSource) Open(offset, length int64) (int64, error) {
	if offset < 0 {
		return 0, fmt.Errorf("wav: negative offset %d", offset)
	}
	size := s.Size()
	if offset >= size {
		return 0, io.EOF
	}
	remaining := size - offset
	if length != LengthUnbounded && length < remaining {
		remaining = length
	}
	s.offset = offset
	s.remaining = remaining
	s.opened = true
	return remaining, nil
}

func (s *TrackSource) Read(p []byte) (n int, err error) {
	if !s.opened {
		if _, err := s.Open(0, LengthUnbounded); err != nil {
			return 0, err
		}
	}
	if s.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > s.remaining {
		p = p[:s.remaining]
	}
	if len(p) == 0 {
		return 0, nil
	}

	// serve any header bytes first
	if s.offset < HeaderSize {
		header := Header(uint32(s.track.PCMBytes()))
		n = copy(p, header[s.offset:])
		s.offset += int64(n)
		s.remaining -= int64(n)
		if n == len(p) {
			return n, nil
		}
	}

	// translate the rest to whole-sector reads
	pcmOffset := s.offset - HeaderSize
	lba := s.track.StartSector + pcmOffset/cdda.BytesPerSector
	intra := int(pcmOffset % cdda.BytesPerSector)
	want := len(p) - n
	count := (intra + want + cdda.BytesPerSector - 1) / cdda.BytesPerSector

	data, err := s.dev.ReadSectors(lba, count)
	if err != nil {
		return n, fmt.Errorf("wav: track %d at lba %d: %w", s.track.Number, lba, err)
	}
	if len(data) <= intra {
		// drive ran out of media mid-track
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	}
	nn := copy(p[n:], data[intra:])
	s.offset += int64(nn)
	s.remaining -= int64(nn)
	return n + nn, nil
}

// Close resets the source. The underlying device stays open for reuse.
func (s *TrackSource) Close() error {
	s.opened = false
	s.remaining = 0
	return nil
}
