package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rabidaudio/discstream/wav"
)

var ripCmd = &cobra.Command{
	Use:   "rip [image] [track] [out.wav]",
	Short: "Stream one audio track to a WAV file",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		trackNum, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad track number %q: %w", args[1], err)
		}

		dev, err := openDevice(args[0])
		if err != nil {
			return err
		}
		defer dev.Close()

		tracks, err := readTracks(dev)
		if err != nil {
			return err
		}
		var src *wav.TrackSource
		for _, t := range tracks {
			if t.Number == trackNum {
				src = wav.NewTrackSource(dev, t)
				break
			}
		}
		if src == nil {
			return fmt.Errorf("no track %d on disc", trackNum)
		}

		out, err := os.Create(args[2])
		if err != nil {
			return err
		}
		defer out.Close()

		n, err := io.Copy(out, src)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"track": trackNum, "bytes": n}).Info("rip complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ripCmd)
}
