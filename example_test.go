package qoi_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/tealstatic/qoi"
)

func ExampleDecoder() {
	// A 3x1 image: one red literal followed by a run repeating it twice.
	data := []byte{
		'q', 'o', 'i', 'f',
		0, 0, 0, 3, // width
		0, 0, 0, 1, // height
		3, 0, // channels, colorspace
		0xfe, 255, 0, 0, // rgb literal
		0xc1, // run: two more reds
		0, 0, 0, 0, 0, 0, 0, 1, // end marker
	}

	d, err := qoi.NewDecoder(bytes.NewReader(data))
	if err != nil {
		log.Fatal(err)
	}
	for d.Next() {
		px := d.Current()
		fmt.Println(px.R, px.G, px.B, px.A)
	}
	if err := d.Err(); err != nil {
		log.Fatal(err)
	}
	// Output:
	// 255 0 0 255
	// 255 0 0 255
	// 255 0 0 255
}
