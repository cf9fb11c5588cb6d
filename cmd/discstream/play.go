package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [image] [track]",
	Short: "Play a track through the local speaker",
	Args:  cobra.ExactArgs(2),
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
		var st *trackStreamer
		for _, t := range tracks {
			if t.Number == trackNum {
				st, err = newTrackStreamer(dev, t)
				if err != nil {
					return err
				}
				break
			}
		}
		if st == nil {
			return fmt.Errorf("no track %d on disc", trackNum)
		}
		defer st.Close()

		err = speaker.Init(AudioCDFormat.SampleRate, AudioCDFormat.SampleRate.N(time.Second/10))
		if err != nil {
			return err
		}

		done := make(chan bool)
		speaker.Play(beep.Seq(st, beep.Callback(func() {
			done <- true
		})))
		<-done
		return st.Err()
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
