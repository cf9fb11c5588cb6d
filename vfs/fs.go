// Package vfs exports a disc as a FAT32 disk image whose files are
// complete WAV renders of the audio tracks, so plain USB mass-storage
// hosts (car head units, mostly) can consume a CD without speaking the
// streaming protocol.
package vfs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
	"github.com/diskfs/go-diskfs/filesystem/fat32"
	"github.com/diskfs/go-diskfs/partition/mbr"
	"github.com/sirupsen/logrus"

	"github.com/rabidaudio/discstream/cdda"
	"github.com/rabidaudio/discstream/scsi"
	"github.com/rabidaudio/discstream/wav"
)

// DefaultDiskSize fits a full 80-minute CD rendered as WAV files.
const DefaultDiskSize = 800 * fat32.MB

const sectorSize = 512

// Filesystem is a virtual FAT32 filesystem containing WAV files for
// the tracks of the loaded disc. Data is backed by a temporary image
// file; be sure to Close after use.
type Filesystem struct {
	fs      filesystem.FileSystem
	Path    string
	name    string
	tracks  []cdda.Track
	closefn func() error
}

// sanitizeName converts a name to DOS 8.3 format by uppercasing,
// limiting to ASCII letters, and trimming to 8 chars.
func sanitizeName(name string) string {
	newName := make([]rune, 0, 8)
	for _, r := range strings.ToUpper(name) {
		if len(newName) == 8 {
			break
		}
		if r >= 'A' && r <= 'Z' {
			newName = append(newName, r)
		}
	}
	return string(newName)
}

// Create builds a new empty filesystem image of the given size, or
// DefaultDiskSize if size is 0.
func Create(size int64) (*Filesystem, error) {
	if size == 0 {
		size = DefaultDiskSize
	}
	tmpdir, err := os.MkdirTemp("", "discstream")
	if err != nil {
		return nil, err
	}
	dskimg := tmpdir + "/disk.img"
	dsk, err := diskfs.Create(dskimg, size, diskfs.Raw, diskfs.SectorSizeDefault)
	if err != nil {
		return nil, err
	}

	// single MBR partition spanning the image
	table := &mbr.Table{
		LogicalSectorSize:  sectorSize,
		PhysicalSectorSize: sectorSize,
		Partitions: []*mbr.Partition{
			{
				Bootable: false,
				Type:     mbr.Linux,
				Start:    0,
				Size:     uint32(size / sectorSize),
			},
		},
	}
	if err := dsk.Partition(table); err != nil {
		os.Remove(dskimg)
		return nil, err
	}
	fatfs, err := dsk.CreateFilesystem(disk.FilesystemSpec{
		Partition:   1,
		FSType:      filesystem.TypeFat32,
		VolumeLabel: "DISCSTREAM",
	})
	if err != nil {
		os.Remove(dskimg)
		return nil, err
	}

	closefn := func() error {
		if err := os.Remove(dskimg); err != nil {
			return err
		}
		return os.Remove(tmpdir)
	}

	return &Filesystem{
		Path:    dskimg,
		fs:      fatfs,
		closefn: closefn,
	}, nil
}

// LoadDisc renders each track of the disc as a WAV file in the image,
// streaming the PCM data from the device. name becomes the containing
// directory (or the root, if it sanitizes to nothing).
func (f *Filesystem) LoadDisc(dev scsi.Device, name string, tracks []cdda.Track) error {
	if f.tracks != nil {
		return fmt.Errorf("vfs: current disc not ejected")
	}

	dir := dirName(name)
	if dir != "" {
		if err := f.fs.Mkdir(dir); err != nil {
			return err
		}
	}

	for i, track := range tracks {
		fname := trackPath(dir, i)
		file, err := f.fs.OpenFile(fname, os.O_CREATE|os.O_RDWR)
		if err != nil {
			return fmt.Errorf("vfs: create %v: %w", fname, err)
		}

		src := wav.NewTrackSource(dev, track)
		n, err := io.Copy(file, src)
		if err != nil {
			return fmt.Errorf("vfs: render track %d: %w", track.Number, err)
		}
		logrus.WithFields(logrus.Fields{"file": fname, "bytes": n}).Debug("vfs: track rendered")
	}
	f.name = name
	f.tracks = tracks
	return nil
}

func dirName(name string) string {
	s := sanitizeName(name)
	if s != "" {
		s = "/" + s
	}
	return s
}

func trackPath(dir string, i int) string {
	return fmt.Sprintf("%v/TRACK%02d.WAV", dir, i+1)
}

// Open opens a rendered file from the image, mostly for verification.
func (f *Filesystem) Open(path string) (filesystem.File, error) {
	return f.fs.OpenFile(path, os.O_RDONLY)
}

// Eject forgets the loaded disc so another can be loaded. FAT32 file
// deletion is not supported by the backing library, so the old disc's
// directory stays orphaned on the image until Close.
func (f *Filesystem) Eject() error {
	f.name = ""
	f.tracks = nil
	return nil
}

func (f *Filesystem) Close() error {
	return f.closefn()
}
