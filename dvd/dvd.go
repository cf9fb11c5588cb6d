// Package dvd resolves DVD-Video titles to the VOB cell ranges that
// hold their program-stream data, and manages the lifecycle of the
// native disc session the addressing metadata comes from.
package dvd

import (
	"errors"
	"fmt"
)

// BlockSize is the DVD logical block (and VOB sector) size.
const BlockSize = 2048

// ErrNoVobOffsets is returned when a title resolves to no usable
// cells. It is not fatal: playback falls back to raw block mode.
var ErrNoVobOffsets = errors.New("dvd: no VOB offsets for title")

// CellRange is one contiguous run of VOB sectors belonging to a
// playback unit of a title. Sector numbers are relative to the start
// of the title set's VOB data, not absolute disc LBAs.
type CellRange struct {
	First int64
	Last  int64
}

// Sectors returns the number of sectors the cell covers, inclusive of
// both ends.
func (c CellRange) Sectors() int64 {
	return c.Last - c.First + 1
}

// Bytes returns the byte span of the cell.
func (c CellRange) Bytes() int64 {
	return c.Sectors() * BlockSize
}

// TitleLayout is the addressing metadata for one title: the video
// title set its VOB data lives in and the ordered cells to play.
type TitleLayout struct {
	VTS   int
	Cells []CellRange
}

// TotalBytes returns the byte size of the title's VOB data.
func (l *TitleLayout) TotalBytes() int64 {
	var total int64
	for _, c := range l.Cells {
		total += c.Bytes()
	}
	return total
}

// Navigator is the disc session's title-addressing surface, backed by
// the native IFO parser. VobOffsets returns a flat array of the form
// [vts, first0, last0, first1, last1, ...] for a 1-based title number.
type Navigator interface {
	VobOffsets(title int) ([]int64, error)
}

// Reader opens the VOB data area of a video title set for block reads.
type Reader interface {
	OpenVob(vts int) (VobFile, error)
}

// VobFile reads whole 2048-byte sectors from a title set's VOB data.
// Block numbers are VOB-relative, matching CellRange addressing.
type VobFile interface {
	// ReadBlocks reads up to count blocks starting at block into p,
	// returning the number of bytes read. 0 means end of file.
	ReadBlocks(block int64, count int, p []byte) (int, error)

	Close() error
}

// ResolveTitle looks up the cell layout for a 1-based title number.
// Cells with an inverted sector range are skipped; if the lookup fails
// or yields no usable cells the result is ErrNoVobOffsets.
func ResolveTitle(nav Navigator, title int) (*TitleLayout, error) {
	offsets, err := nav.VobOffsets(title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoVobOffsets, err)
	}
	if len(offsets) < 3 || len(offsets)%2 == 0 {
		return nil, ErrNoVobOffsets
	}
	layout := TitleLayout{VTS: int(offsets[0])}
	for i := 1; i+1 < len(offsets); i += 2 {
		c := CellRange{First: offsets[i], Last: offsets[i+1]}
		if c.Last < c.First || c.First < 0 {
			continue
		}
		layout.Cells = append(layout.Cells, c)
	}
	if len(layout.Cells) == 0 {
		return nil, ErrNoVobOffsets
	}
	return &layout, nil
}
