package vfs

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/diskfs/go-diskfs/filesystem/fat32"
	"github.com/stretchr/testify/assert"

	"github.com/rabidaudio/discstream/cdda"
	"github.com/rabidaudio/discstream/scsi"
	"github.com/rabidaudio/discstream/wav"
)

const testDiskSize = 64 * fat32.MB

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "UPCASE", sanitizeName("upcase"))
	assert.Equal(t, "MYFILE", sanitizeName("my file"))
	assert.Equal(t, "LIMITSLE", sanitizeName("limitslengthtoeight"))
	assert.Equal(t, "RMVNUMR", sanitizeName("r3m0v35 num83r5"))
	assert.Equal(t, "", sanitizeName(""))
}

func TestCreate(t *testing.T) {
	fsys, err := Create(testDiskSize)
	assert.NoError(t, err)
	assert.NoError(t, fsys.Close())
}

func testDisc() (scsi.Device, []cdda.Track, []byte) {
	data := make([]byte, 4*cdda.BytesPerSector)
	rand.New(rand.NewSource(6)).Read(data)
	dev := scsi.NewImageDevice(bytes.NewReader(data), int64(len(data)), cdda.BytesPerSector)
	tracks := []cdda.Track{
		{Number: 1, StartSector: 0, EndSector: 2},
		{Number: 2, StartSector: 2, EndSector: 4},
	}
	return dev, tracks, data
}

func TestLoadDisc(t *testing.T) {
	dev, tracks, data := testDisc()
	fsys, err := Create(testDiskSize)
	assert.NoError(t, err)
	defer fsys.Close()

	err = fsys.LoadDisc(dev, "My Disc", tracks)
	assert.NoError(t, err)

	// each file is a complete WAV render of its track
	for i, track := range tracks {
		f, err := fsys.Open(trackPath("/MYDISC", i))
		assert.NoError(t, err)

		got, err := io.ReadAll(f)
		assert.NoError(t, err)
		f.Close()

		pcm := data[track.StartSector*cdda.BytesPerSector : track.EndSector*cdda.BytesPerSector]
		expected := append(wav.Header(uint32(len(pcm))), pcm...)
		assert.Equal(t, expected, got)
	}

	// a second disc without ejecting is rejected
	err = fsys.LoadDisc(dev, "Another", tracks)
	assert.Error(t, err)
}

func TestLoadDiscRootDir(t *testing.T) {
	dev, tracks, _ := testDisc()
	fsys, err := Create(testDiskSize)
	assert.NoError(t, err)
	defer fsys.Close()

	// a name that sanitizes to nothing lands the files in the root
	err = fsys.LoadDisc(dev, "✨", tracks)
	assert.NoError(t, err)

	f, err := fsys.Open("/TRACK01.WAV")
	assert.NoError(t, err)
	f.Close()
}

func TestEject(t *testing.T) {
	dev, tracks, _ := testDisc()
	fsys, err := Create(testDiskSize)
	assert.NoError(t, err)
	defer fsys.Close()

	// ejecting with nothing loaded is fine
	assert.NoError(t, fsys.Eject())

	assert.NoError(t, fsys.LoadDisc(dev, "My Disc", tracks))
	assert.NoError(t, fsys.Eject())

	// the slot is free for the next disc
	assert.NoError(t, fsys.LoadDisc(dev, "Another", tracks))
}
