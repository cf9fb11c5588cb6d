// Command discstream inspects and streams optical disc images:
// listing the table of contents, ripping tracks to WAV, exporting a
// FAT32/WAV disk image, and playing tracks through the local speaker.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rabidaudio/discstream/cdda"
	"github.com/rabidaudio/discstream/scsi"
)

var (
	verbose     bool
	blockSize   int
	trackStarts string
)

var rootCmd = &cobra.Command{
	Use:   "discstream",
	Short: "Read optical disc images as playable byte streams",
	Long: `discstream exposes optical disc content as byte-addressable streams.

Commands:
  toc       Print the table of contents of a disc image
  rip       Stream one audio track to a WAV file
  export    Build a FAT32 disk image of the disc's tracks as WAV files
  play      Play a track through the local speaker

Examples:
  discstream toc disc.bin
  discstream rip disc.bin 2 track2.wav
  discstream export --track-starts 0,22500 disc.bin out.img`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&blockSize, "block-size", cdda.BytesPerSector, "device block size in bytes")
	rootCmd.PersistentFlags().StringVar(&trackStarts, "track-starts", "", "comma-separated starting LBAs for synthesizing the TOC")
}

// openDevice opens the image at path with the shared flags applied.
func openDevice(path string) (*scsi.ImageDevice, error) {
	dev, err := scsi.OpenImage(path, blockSize)
	if err != nil {
		return nil, err
	}
	if trackStarts != "" {
		for _, s := range strings.Split(trackStarts, ",") {
			lba, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				dev.Close()
				return nil, fmt.Errorf("bad track start %q: %w", s, err)
			}
			dev.TrackStarts = append(dev.TrackStarts, lba)
		}
	}
	if !dev.WaitForReady(1, 0) {
		dev.Close()
		return nil, scsi.ErrNotReady
	}
	return dev, nil
}

// readTracks reads and parses the table of contents.
func readTracks(dev scsi.Device) ([]cdda.Track, error) {
	raw, err := dev.ReadTOC()
	if err != nil {
		return nil, err
	}
	tracks := cdda.ParseTOC(raw)
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no usable tracks in table of contents")
	}
	return tracks, nil
}
