package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"tapewriter/canvas"
	"tapewriter/render"
)

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	label := labelFlags{}
	label.register(fs)
	out := fs.String("out", "label.png", "output PNG path")
	height := fs.Int("height", 128, "label height in dots (the printable span of the tape)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ops, err := label.ops()
	if err != nil {
		return err
	}

	cv, err := render.Render(render.Config{Height: *height}, ops)
	if err != nil {
		return err
	}

	img, err := canvasImage(cv)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("Couldn't encode preview:\n%w", err)
	}

	width, _ := cv.Size()
	fmt.Printf("Wrote %s (%dx%d dots)\n", *out, width, *height)
	return nil
}

func canvasImage(cv *canvas.Canvas) (image.Image, error) {
	width, height := cv.Size()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			on, err := cv.Get(x, y)
			if err != nil {
				return nil, err
			}
			if on {
				img.SetGray(x, y, color.Gray{Y: 0x00})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img, nil
}
