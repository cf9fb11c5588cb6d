// Package wav presents a raw CD-DA track as a virtual WAV file:
// a synthesized 44-byte header followed by the PCM sector data read
// on demand from the drive.
package wav

import (
	"encoding/binary"

	"github.com/rabidaudio/discstream/cdda"
)

// HeaderSize is the length of a canonical PCM WAV header.
const HeaderSize = 44

// Header returns a canonical 44-byte little-endian WAV header for
// nbytes of 16-bit stereo 44.1KHz PCM data.
func Header(nbytes uint32) []byte {
	b := make([]byte, HeaderSize)

	copy(b[0:4], "RIFF")
	binary.LittleEndian.PutUint32(b[4:8], nbytes+HeaderSize-8)
	copy(b[8:12], "WAVE")
	copy(b[12:16], "fmt ")
	binary.LittleEndian.PutUint32(b[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(b[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(b[22:24], cdda.Channels)
	binary.LittleEndian.PutUint32(b[24:28], cdda.SampleRate)
	binary.LittleEndian.PutUint32(b[28:32], cdda.SampleRate*cdda.Channels*cdda.BytesPerSample)
	binary.LittleEndian.PutUint16(b[32:34], cdda.Channels*cdda.BytesPerSample)
	binary.LittleEndian.PutUint16(b[34:36], cdda.BytesPerSample*8)
	copy(b[36:40], "data")
	binary.LittleEndian.PutUint32(b[40:44], nbytes)
	return b
}
