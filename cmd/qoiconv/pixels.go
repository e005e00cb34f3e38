package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tealstatic/qoi"
)

var (
	pixelLimit int
	pixelRaw   bool
)

func init() {
	pixelsCmd := &cobra.Command{
		Use:   "pixels <file.qoi>",
		Short: "Stream decoded pixels to stdout",
		Long: "Stream decoded pixels to stdout as one packed RRGGBBAA word per line,\n" +
			"or as raw channel bytes with --raw (3 or 4 per pixel, per the header).\n" +
			"With --limit the rest of the file is never read.",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := dumpPixels(args[0]); err != nil {
				log.Fatal().Err(err).Msg("pixels failed")
			}
		},
	}
	pixelsCmd.Flags().IntVar(&pixelLimit, "limit", 0, "stop after this many pixels (0 = all)")
	pixelsCmd.Flags().BoolVar(&pixelRaw, "raw", false, "write raw channel bytes instead of text")
	rootCmd.AddCommand(pixelsCmd)
}

func dumpPixels(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d, err := qoi.NewDecoder(f)
	if err != nil {
		return err
	}
	hdr := d.Header()

	out := bufio.NewWriter(os.Stdout)
	var scratch []byte
	n := 0
	for d.Next() {
		px := d.Current()
		if pixelRaw {
			scratch = qoi.AppendChannels(scratch[:0], px, hdr.Channels)
			if _, err := out.Write(scratch); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "%08x\n", qoi.RGBA32(px))
		}
		n++
		if pixelLimit > 0 && n >= pixelLimit {
			break
		}
	}
	if err := d.Err(); err != nil {
		return err
	}

	log.Debug().Int("pixels", n).Msg("stream finished")
	return out.Flush()
}
