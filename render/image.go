package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/draw"

	"tapewriter/canvas"
)

// Image draws a raster image from disk, scaled to the printable span
// and dithered down to 1-bit.
type Image struct {
	Path string
}

func (op *Image) Draw(c *canvas.Canvas, x int) (int, error) {
	f, err := os.Open(op.Path)
	if err != nil {
		return 0, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("decoding image: %w", err)
	}

	_, spanHeight := c.Size()
	srcBounds := src.Bounds()
	if srcBounds.Dy() == 0 {
		return 0, nil
	}
	width := srcBounds.Dx() * spanHeight / srcBounds.Dy()

	scaledBounds := image.Rect(0, 0, width, spanHeight)
	scaled := image.NewRGBA(scaledBounds)
	draw.CatmullRom.Scale(scaled, scaledBounds, src, srcBounds, draw.Over, nil)

	palette := []color.Color{color.Black, color.White}
	ditherer := dither.NewDitherer(palette)
	ditherer.Matrix = dither.FloydSteinberg
	ditherer.Serpentine = true
	dithered := ditherer.DitherPaletted(scaled)

	// palette index 0 is black, which prints
	for yy := 0; yy < spanHeight; yy++ {
		for xx := 0; xx < width; xx++ {
			if dithered.ColorIndexAt(xx, yy) != 0 {
				continue
			}
			if err := c.Set(x+xx, yy, true); err != nil {
				return 0, err
			}
		}
	}
	return width, nil
}
