package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tocCmd = &cobra.Command{
	Use:   "toc [image]",
	Short: "Print the table of contents of a disc image",
	Args:  cobra.ExactArgs(1),
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
		fmt.Println("track\tstart\tsectors\tduration")
		for _, t := range tracks {
			fmt.Printf("%d\t%d\t%d\t%v\n", t.Number, t.StartSector, t.LengthSectors(), t.Duration)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tocCmd)
}
