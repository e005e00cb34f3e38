package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/tealstatic/qoi"
)

func init() {
	convertCmd := &cobra.Command{
		Use:   "convert <input.qoi> <output.{png,bmp}>",
		Short: "Decode a QOI file and write it out in the format the output extension names",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if err := convert(args[0], args[1]); err != nil {
				log.Fatal().Err(err).Msg("convert failed")
			}
		},
	}
	rootCmd.AddCommand(convertCmd)
}

func convert(inPath, outPath string) error {
	var encode func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".png":
		encode = png.Encode
	case ".bmp":
		encode = bmp.Encode
	default:
		return fmt.Errorf("unsupported output format %q (want .png or .bmp)", filepath.Ext(outPath))
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	start := time.Now()
	img, err := qoi.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}
	bounds := img.Bounds()
	log.Debug().
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Dur("took", time.Since(start)).
		Msg("decoded")

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := encode(out, img); err != nil {
		return fmt.Errorf("encoding %s: %w", outPath, err)
	}

	log.Info().Str("in", inPath).Str("out", outPath).Msg("converted")
	return nil
}
