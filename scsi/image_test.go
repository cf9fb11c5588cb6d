package scsi

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rabidaudio/discstream/cdda"
)

func testImage(sectors int, extra int) (*ImageDevice, []byte) {
	data := make([]byte, sectors*cdda.BytesPerSector+extra)
	rand.New(rand.NewSource(7)).Read(data)
	return NewImageDevice(bytes.NewReader(data), int64(len(data)), 0), data
}

func TestReadSectors(t *testing.T) {
	dev, data := testImage(4, 0)

	got, err := dev.ReadSectors(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, data[cdda.BytesPerSector:3*cdda.BytesPerSector], got)
}

func TestReadSectorsTruncatesAtEndOfMedia(t *testing.T) {
	// a trailing partial sector is not readable
	dev, data := testImage(2, 100)
	assert.Equal(t, int64(2), dev.LengthSectors())

	got, err := dev.ReadSectors(0, 5)
	assert.NoError(t, err)
	assert.Equal(t, data[:2*cdda.BytesPerSector], got)

	got, err = dev.ReadSectors(2, 1)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadSectorsInvalid(t *testing.T) {
	dev, _ := testImage(2, 0)
	_, err := dev.ReadSectors(-1, 1)
	assert.Error(t, err)
	_, err = dev.ReadSectors(0, -1)
	assert.Error(t, err)
}

func TestReadTOC(t *testing.T) {
	dev, _ := testImage(300, 0)
	dev.TrackStarts = []int64{0, 100}

	raw, err := dev.ReadTOC()
	assert.NoError(t, err)
	tracks := cdda.ParseTOC(raw)
	assert.Len(t, tracks, 2)
	assert.Equal(t, int64(0), tracks[0].StartSector)
	assert.Equal(t, int64(100), tracks[0].EndSector)
	assert.Equal(t, int64(100), tracks[1].StartSector)
	assert.Equal(t, int64(300), tracks[1].EndSector)
}

func TestReadTOCDefaultsToSingleTrack(t *testing.T) {
	dev, _ := testImage(50, 0)
	raw, err := dev.ReadTOC()
	assert.NoError(t, err)
	tracks := cdda.ParseTOC(raw)
	assert.Len(t, tracks, 1)
	assert.Equal(t, int64(0), tracks[0].StartSector)
	assert.Equal(t, int64(50), tracks[0].EndSector)
}

func TestWaitForReady(t *testing.T) {
	dev, _ := testImage(1, 0)
	assert.True(t, dev.WaitForReady(1, time.Millisecond))
	assert.False(t, dev.WaitForReady(0, time.Millisecond))
}
