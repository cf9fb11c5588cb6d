// Package bridge implements the pull-based I/O protocol a native
// playback engine drives to read disc data: open, size, read, seek and
// close callbacks over either raw device blocks or the resolved VOB
// data of a DVD title.
package bridge

import (
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/rabidaudio/discstream/dvd"
	"github.com/rabidaudio/discstream/scsi"
)

// rawSize is the declared stream size when no VOB layout is resolved.
// Raw mode has no reliable total; a dual-layer DVD upper bound lets the
// engine probe freely and the device's short reads mark the real end.
const rawSize int64 = 8 << 30

// ReadErr is returned from Read on a device failure, distinct from the
// 0 that marks end of stream.
const ReadErr = -1

// Bridge is one playback attempt's stream state. The five exported
// stream operations (Open, Size, Read, Seek, Close) are invoked by the
// playback engine from its own worker thread, serially per stream.
// Publish and UseTitle run on the setup goroutine beforehand; the
// device reference is the only state shared across the two and is
// published atomically so the engine's first callback observes a fully
// initialized device.
//
// The device and disc session are reusable across sessions: Close tears
// down only per-stream state.
type Bridge struct {
	device atomic.Pointer[publishedDevice]

	log    *logrus.Entry
	offset int64
	size   int64
	cache  cache

	layout *dvd.TitleLayout
	vob    dvd.VobFile
}

type publishedDevice struct {
	dev scsi.Device
}

func New() *Bridge {
	log := logrus.WithField("component", "bridge")
	return &Bridge{log: log, cache: cache{log: log}}
}

// Publish makes dev visible to the engine's callback thread. Passing
// nil withdraws the device, causing subsequent opens to fail.
func (b *Bridge) Publish(dev scsi.Device) {
	if dev == nil {
		b.device.Store(nil)
		return
	}
	b.device.Store(&publishedDevice{dev: dev})
}

// Device returns the currently published device, or nil.
func (b *Bridge) Device() scsi.Device {
	if p := b.device.Load(); p != nil {
		return p.dev
	}
	return nil
}

// UseTitle resolves the cell layout for a 1-based title number and
// opens its VOB data for streaming. If no usable offsets exist the
// bridge stays in raw block mode; that is a degradation, not an error.
func (b *Bridge) UseTitle(nav dvd.Navigator, r dvd.Reader, title int) error {
	layout, err := dvd.ResolveTitle(nav, title)
	if errors.Is(err, dvd.ErrNoVobOffsets) {
		b.log.WithField("title", title).WithError(err).Warn("falling back to raw block mode")
		return nil
	}
	if err != nil {
		return err
	}
	vob, err := r.OpenVob(layout.VTS)
	if err != nil {
		b.log.WithField("vts", layout.VTS).WithError(err).Warn("vob open failed, falling back to raw block mode")
		return nil
	}
	b.layout = layout
	b.vob = vob
	return nil
}

// Open starts a stream session. It reports false if no device has been
// published. Offset and cache state are reset so a failed previous
// session cannot leak into this one.
func (b *Bridge) Open() bool {
	if b.Device() == nil {
		b.log.Error("open with no published device")
		return false
	}
	b.offset = 0
	if b.layout != nil {
		b.size = b.layout.TotalBytes()
	} else {
		b.size = rawSize
	}
	b.cache.invalidate()
	return true
}

// Size returns the declared stream size for the current session.
func (b *Bridge) Size() int64 {
	return b.size
}

// Read fills p from the current offset and advances it. It returns the
// number of bytes read, 0 at end of stream, or ReadErr on a device
// failure. Short reads are valid; the engine re-invokes for the rest.
func (b *Bridge) Read(p []byte) int {
	dev := b.Device()
	if dev == nil {
		return ReadErr
	}
	var n int
	var err error
	if b.vob != nil {
		n, err = b.cache.readVob(b.vob, b.layout.Cells, b.offset, p)
	} else {
		n, err = b.cache.readRaw(dev, b.offset, p)
	}
	if err != nil {
		b.log.WithError(err).Error("stream read failed")
		return ReadErr
	}
	b.offset += int64(n)
	return n
}

// Seek moves the stream position. When a VOB layout is resolved the
// offset must lie within [0, size]; in raw mode any non-negative offset
// is accepted. A successful seek unconditionally drops the read-ahead
// window.
func (b *Bridge) Seek(offset int64) bool {
	if offset < 0 {
		return false
	}
	if b.layout != nil && offset > b.size {
		return false
	}
	b.offset = offset
	b.cache.invalidate()
	return true
}

// Close ends the session, releasing the VOB sub-resource and addressing
// metadata. The shared device and disc session stay open for the next
// Open within the same playback attempt.
func (b *Bridge) Close() {
	if b.vob != nil {
		if err := b.vob.Close(); err != nil {
			b.log.WithError(err).Warn("vob close failed")
		}
		b.vob = nil
	}
	b.layout = nil
	b.cache.invalidate()
}
