package scsi

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rabidaudio/discstream/cdda"
)

// ImageDevice is a Device backed by a raw sector dump on disk. It is
// what the CLI runs against and what most of the tests use in place of
// real hardware.
type ImageDevice struct {
	// TrackStarts optionally lists the starting LBA of each audio
	// track, used to synthesize the table of contents. If empty, the
	// TOC reports a single track covering the whole image.
	TrackStarts []int64

	r         io.ReaderAt
	size      int64
	blockSize int
	closer    io.Closer
	log       *logrus.Entry
}

var _ Device = (*ImageDevice)(nil)

// OpenImage opens a raw sector image file with the given block size.
func OpenImage(path string, blockSize int) (*ImageDevice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	dev := NewImageDevice(f, stat.Size(), blockSize)
	dev.closer = f
	return dev, nil
}

// NewImageDevice wraps an arbitrary io.ReaderAt holding size bytes of
// raw sector data.
func NewImageDevice(r io.ReaderAt, size int64, blockSize int) *ImageDevice {
	if blockSize <= 0 {
		blockSize = cdda.BytesPerSector
	}
	return &ImageDevice{
		r:         r,
		size:      size,
		blockSize: blockSize,
		log:       logrus.WithField("device", "image"),
	}
}

func (d *ImageDevice) BlockSize() int { return d.blockSize }

// LengthSectors returns the total number of whole sectors in the image.
func (d *ImageDevice) LengthSectors() int64 {
	return d.size / int64(d.blockSize)
}

// ReadSectors reads up to count sectors starting at lba. Reads past
// the end of the image return the available prefix; a read entirely
// past the end returns an empty slice.
func (d *ImageDevice) ReadSectors(lba int64, count int) ([]byte, error) {
	if lba < 0 || count < 0 {
		return nil, fmt.Errorf("scsi: invalid read lba=%d count=%d", lba, count)
	}
	off := lba * int64(d.blockSize)
	if off >= d.size {
		return nil, nil
	}
	want := int64(count) * int64(d.blockSize)
	if off+want > d.size {
		// truncate to whole sectors, matching drive behavior at end of media
		want = (d.size - off) / int64(d.blockSize) * int64(d.blockSize)
	}
	p := make([]byte, want)
	n, err := d.r.ReadAt(p, off)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("scsi: read %d sectors at lba %d: %w", count, lba, err)
	}
	n -= n % d.blockSize
	d.log.WithFields(logrus.Fields{"lba": lba, "count": count, "bytes": n}).Debug("read sectors")
	return p[:n], nil
}

// ReadTOC synthesizes a table of contents blob for the image.
func (d *ImageDevice) ReadTOC() ([]byte, error) {
	starts := d.TrackStarts
	if len(starts) == 0 {
		starts = []int64{0}
	}
	return cdda.AppendTOC(nil, starts, d.LengthSectors()), nil
}

// WaitForReady always reports ready: image files have no spin-up.
func (d *ImageDevice) WaitForReady(maxAttempts int, delay time.Duration) bool {
	return maxAttempts > 0
}

func (d *ImageDevice) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}
