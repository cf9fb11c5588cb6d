package bridge

import (
	"github.com/sirupsen/logrus"

	"github.com/rabidaudio/discstream/dvd"
	"github.com/rabidaudio/discstream/scsi"
)

// ReadAheadBlocks is the size of the read-ahead window in device
// blocks. Every cache miss fetches this much beyond the request so the
// engine's next few pulls are served without touching the transport.
const ReadAheadBlocks = 32

// cache is a single-window read-ahead buffer. It holds the most recent
// aligned device read; the window start is always a multiple of the
// block size of whichever addressing scheme filled it.
//
// A request fully inside the window is copied directly. Anything else
// is a miss: one device read refills the window and the prefix covering
// the request is served, which may be a partial read.
type cache struct {
	off  int64
	data []byte
	log  *logrus.Entry
}

// invalidate drops the window. Called on every seek and before any
// refill that fails, so a stale window can never serve a later read.
func (c *cache) invalidate() {
	c.data = nil
}

func (c *cache) copyFrom(off int64, p []byte) (int, bool) {
	if len(c.data) == 0 || off < c.off || off+int64(len(p)) > c.off+int64(len(c.data)) {
		return 0, false
	}
	return copy(p, c.data[off-c.off:]), true
}

// readRaw serves p from byte offset off of the raw block device.
// A return of 0 with nil error is end of media.
func (c *cache) readRaw(dev scsi.Device, off int64, p []byte) (int, error) {
	if n, ok := c.copyFrom(off, p); ok {
		return n, nil
	}
	bs := int64(dev.BlockSize())
	lba := off / bs
	intra := off % bs
	target := intra + int64(len(p)) + ReadAheadBlocks*bs
	count := int((target + bs - 1) / bs)

	data, err := dev.ReadSectors(lba, count)
	if err != nil {
		c.invalidate()
		return 0, err
	}
	c.off = lba * bs
	c.data = data
	if c.log != nil {
		c.log.WithFields(logrus.Fields{"lba": lba, "count": count, "got": len(data)}).Debug("cache fill")
	}
	if int64(len(data)) <= intra {
		return 0, nil
	}
	return copy(p, data[intra:]), nil
}

// readVob serves p from byte offset off of the virtual VOB stream
// described by cells. Reads never cross a cell boundary: a request
// spanning two cells is satisfied only up to the end of the current
// cell and the caller re-reads at the advanced offset.
func (c *cache) readVob(vob dvd.VobFile, cells []dvd.CellRange, off int64, p []byte) (int, error) {
	if n, ok := c.copyFrom(off, p); ok {
		return n, nil
	}

	// locate the cell containing off
	remaining := off
	var cell dvd.CellRange
	found := false
	for _, cl := range cells {
		if remaining < cl.Bytes() {
			cell = cl
			found = true
			break
		}
		remaining -= cl.Bytes()
	}
	if !found {
		return 0, nil
	}

	block := cell.First + remaining/dvd.BlockSize
	intra := int(remaining % dvd.BlockSize)
	count := (intra + len(p) + ReadAheadBlocks*dvd.BlockSize + dvd.BlockSize - 1) / dvd.BlockSize
	if left := cell.Last - block + 1; int64(count) > left {
		count = int(left)
	}

	buf := make([]byte, count*dvd.BlockSize)
	n, err := vob.ReadBlocks(block, count, buf)
	if err != nil {
		c.invalidate()
		return 0, err
	}
	c.off = off - int64(intra)
	c.data = buf[:n]
	if c.log != nil {
		c.log.WithFields(logrus.Fields{"block": block, "count": count, "got": n}).Debug("vob cache fill")
	}
	if n <= intra {
		return 0, nil
	}
	return copy(p, buf[intra:n]), nil
}
