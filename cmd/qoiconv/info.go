package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tealstatic/qoi"
)

func init() {
	infoCmd := &cobra.Command{
		Use:   "info <file.qoi>...",
		Short: "Print header fields without decoding any pixels",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, path := range args {
				if err := printInfo(path); err != nil {
					log.Fatal().Err(err).Str("file", path).Msg("info failed")
				}
			}
		},
	}
	rootCmd.AddCommand(infoCmd)
}

func printInfo(path string) error {
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
	fmt.Printf("%s: %dx%d, %d channels, %s\n",
		path, hdr.Width, hdr.Height, hdr.Channels, colorspaceName(hdr.Colorspace))
	return nil
}

func colorspaceName(cs uint8) string {
	switch cs {
	case qoi.SRGB:
		return "sRGB"
	case qoi.Linear:
		return "linear"
	}
	return fmt.Sprintf("unknown (%d)", cs)
}
