// Package scsi defines the sector-device boundary the rest of the
// module reads through. The physical USB mass-storage transport lives
// behind this interface and is supplied by the caller.
package scsi

import (
	"errors"
	"time"
)

// ErrNotReady is returned when the device fails a readiness probe.
// The caller owns any retry policy.
var ErrNotReady = errors.New("scsi: device not ready")

// Device is a synchronous block-level view of an optical drive.
//
// All calls block. ReadSectors may return fewer bytes than requested
// near the end of the media; a short return is a valid end-of-media
// signal, not an error.
type Device interface {
	// ReadSectors reads up to count sectors starting at the given
	// logical block address. The returned slice holds at most
	// count*BlockSize() bytes.
	ReadSectors(lba int64, count int) ([]byte, error)

	// ReadTOC returns the raw table of contents blob.
	ReadTOC() ([]byte, error)

	// BlockSize reports the device sector size in bytes,
	// 2048 for data discs and 2352 for CD-DA.
	BlockSize() int

	// WaitForReady polls the device until it reports ready,
	// sleeping delay between attempts. It reports whether the
	// device became ready within maxAttempts.
	WaitForReady(maxAttempts int, delay time.Duration) bool

	Close() error
}
