package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rabidaudio/discstream/vfs"
)

var exportName string
var exportSize int64

var exportCmd = &cobra.Command{
	Use:   "export [image] [out.img]",
	Short: "Build a FAT32 disk image of the disc's tracks as WAV files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := openDevice(args[0])
		if err != nil {
			return err
		}
		defer dev.Close()

		tracks, err := readTracks(dev)
		if err != nil {
			return err
		}

		fs, err := vfs.Create(exportSize)
		if err != nil {
			return err
		}
		defer fs.Close()

		if err := fs.LoadDisc(dev, exportName, tracks); err != nil {
			return err
		}

		// copy the backing image out before Close removes it
		src, err := os.Open(fs.Path)
		if err != nil {
			return err
		}
		defer src.Close()
		out, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer out.Close()
		n, err := io.Copy(out, src)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"tracks": len(tracks), "bytes": n}).Info("export complete")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportName, "name", "", "directory name for the tracks (DOS 8.3, empty for root)")
	exportCmd.Flags().Int64Var(&exportSize, "size", 0, "image size in bytes (0 for default)")
	rootCmd.AddCommand(exportCmd)
}
