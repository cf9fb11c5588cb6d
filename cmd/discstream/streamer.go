package main

import (
	"io"

	"github.com/faiface/beep"

	"github.com/rabidaudio/discstream/cdda"
	"github.com/rabidaudio/discstream/scsi"
	"github.com/rabidaudio/discstream/wav"
)

var AudioCDFormat = beep.Format{
	SampleRate:  cdda.SampleRate,
	NumChannels: cdda.Channels,
	Precision:   cdda.BytesPerSample,
}

const frameBytes = cdda.Channels * cdda.BytesPerSample

// trackStreamer adapts a track's virtual WAV stream to beep, skipping
// the header and decoding the little-endian PCM frames.
type trackStreamer struct {
	src   *wav.TrackSource
	track cdda.Track
	pos   int
	err   error
}

func newTrackStreamer(dev scsi.Device, track cdda.Track) (*trackStreamer, error) {
	src := wav.NewTrackSource(dev, track)
	if _, err := src.Open(wav.HeaderSize, wav.LengthUnbounded); err != nil {
		return nil, err
	}
	return &trackStreamer{src: src, track: track}, nil
}

func (s *trackStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	buf := make([]byte, len(samples)*frameBytes)
	filled := 0
	for filled < len(buf) {
		nn, err := s.src.Read(buf[filled:])
		filled += nn
		if err == io.EOF {
			break
		}
		if err != nil {
			s.err = err
			return 0, false
		}
	}
	filled -= filled % frameBytes
	if filled == 0 {
		return 0, false
	}
	for i := 0; i < filled/frameBytes; i++ {
		samples[i][0], samples[i][1] = extractFrame(buf[i*frameBytes : (i+1)*frameBytes])
	}
	s.pos += filled / frameBytes
	return filled / frameBytes, true
}

func extractFrame(p []byte) (l, r float64) {
	li := int16(p[0]) + int16(p[1])*(1<<8)
	ri := int16(p[2]) + int16(p[3])*(1<<8)
	return float64(li) / (1<<16 - 1), float64(ri) / (1<<16 - 1)
}

func (s *trackStreamer) Err() error {
	return s.err
}

func (s *trackStreamer) Len() int {
	return int(s.track.PCMBytes() / frameBytes)
}

func (s *trackStreamer) Position() int {
	return s.pos
}

func (s *trackStreamer) Seek(p int) error {
	_, err := s.src.Open(wav.HeaderSize+int64(p)*frameBytes, wav.LengthUnbounded)
	if err != nil {
		return err
	}
	s.pos = p
	return nil
}

func (s *trackStreamer) Close() error {
	return s.src.Close()
}

var _ beep.StreamSeekCloser = (*trackStreamer)(nil)
