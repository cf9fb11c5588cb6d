package cdda

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func descriptor(b []byte, num byte, lba int64) []byte {
	b = append(b, 0, 0x10, num, 0)
	return binary.BigEndian.AppendUint32(b, uint32(lba))
}

func TestParseTOC(t *testing.T) {
	raw := AppendTOC(nil, []int64{0, 22500}, 45000)
	tracks := ParseTOC(raw)

	assert.Len(t, tracks, 2)

	assert.Equal(t, 1, tracks[0].Number)
	assert.Equal(t, "Track 01", tracks[0].Title)
	assert.Equal(t, int64(0), tracks[0].StartSector)
	assert.Equal(t, int64(22500), tracks[0].EndSector)
	assert.Equal(t, int64(22500), tracks[0].LengthSectors())
	assert.Equal(t, 5*time.Minute, tracks[0].Duration)

	assert.Equal(t, 2, tracks[1].Number)
	assert.Equal(t, int64(22500), tracks[1].StartSector)
	assert.Equal(t, int64(45000), tracks[1].EndSector)
	assert.Equal(t, 5*time.Minute, tracks[1].Duration)

	assert.Equal(t, int64(22500*BytesPerSector), tracks[0].PCMBytes())
}

func TestParseTOCUndersized(t *testing.T) {
	assert.Empty(t, ParseTOC(nil))
	assert.Empty(t, ParseTOC([]byte{0, 10, 1}))
}

func TestParseTOCNoLeadOut(t *testing.T) {
	raw := []byte{0, 10, 1, 1}
	raw = descriptor(raw, 1, 0)
	assert.Empty(t, ParseTOC(raw))
}

func TestParseTOCSkipsLeadIn(t *testing.T) {
	// some drives report the lead-in as track 0
	raw := []byte{0, 26, 0, 2}
	raw = descriptor(raw, 0, 0)
	raw = descriptor(raw, 1, 150)
	raw = descriptor(raw, 2, 300)
	raw = descriptor(raw, LeadOutTrack, 450)

	tracks := ParseTOC(raw)
	assert.Len(t, tracks, 2)
	assert.Equal(t, 1, tracks[0].Number)
	assert.Equal(t, int64(150), tracks[0].StartSector)
	assert.Equal(t, int64(300), tracks[0].EndSector)
	assert.Equal(t, 2, tracks[1].Number)
	assert.Equal(t, int64(450), tracks[1].EndSector)
}

func TestParseTOCMissingDescriptor(t *testing.T) {
	// track 2 declared in the header but its descriptor is absent:
	// it is omitted and track 1 runs through to track 3
	raw := []byte{0, 26, 1, 3}
	raw = descriptor(raw, 1, 0)
	raw = descriptor(raw, 3, 600)
	raw = descriptor(raw, LeadOutTrack, 900)

	tracks := ParseTOC(raw)
	assert.Len(t, tracks, 2)
	assert.Equal(t, 1, tracks[0].Number)
	assert.Equal(t, int64(600), tracks[0].EndSector)
	assert.Equal(t, 3, tracks[1].Number)
	assert.Equal(t, int64(600), tracks[1].StartSector)
	assert.Equal(t, int64(900), tracks[1].EndSector)
}

func TestParseTOCSkipsInvertedTrack(t *testing.T) {
	raw := []byte{0, 26, 1, 2}
	raw = descriptor(raw, 1, 500)
	raw = descriptor(raw, 2, 100)
	raw = descriptor(raw, LeadOutTrack, 400)

	// track 1 ends before it starts, track 2 survives
	tracks := ParseTOC(raw)
	assert.Len(t, tracks, 1)
	assert.Equal(t, 2, tracks[0].Number)
	assert.Equal(t, int64(100), tracks[0].StartSector)
	assert.Equal(t, int64(400), tracks[0].EndSector)
}

func TestAppendTOCRoundTrip(t *testing.T) {
	starts := []int64{0, 1000, 5000, 31337, 100000}
	tracks := ParseTOC(AppendTOC(nil, starts, 200000))

	assert.Len(t, tracks, len(starts))
	for i, track := range tracks {
		assert.Equal(t, i+1, track.Number)
		assert.Equal(t, starts[i], track.StartSector)
		if i+1 < len(starts) {
			assert.Equal(t, starts[i+1], track.EndSector)
		} else {
			assert.Equal(t, int64(200000), track.EndSector)
		}
	}
}
