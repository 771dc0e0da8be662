package render

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"tapewriter/canvas"
)

// Pad advances the layout by a fixed number of blank columns.
type Pad struct {
	Columns int
}

func (op *Pad) Draw(c *canvas.Canvas, x int) (int, error) {
	if op.Columns < 0 {
		return 0, fmt.Errorf("negative padding %d", op.Columns)
	}
	if op.Columns > 0 {
		// touch the last padded column so the canvas grows to cover it
		if err := c.Set(x+op.Columns-1, 0, false); err != nil {
			return 0, err
		}
	}
	return op.Columns, nil
}

// Text draws one or more lines of text, vertically centred within the
// printable span.
type Text struct {
	Value string
	// Font names a built-in face; File overrides it with a font file
	// from disk. Size applies to scalable faces only.
	Font string
	File string
	Size float64
}

// extra dots between lines of multi-line text
const lineSpacing = 2

func (op *Text) Draw(c *canvas.Canvas, x int) (int, error) {
	face, err := loadFace(op.Font, op.File, op.Size)
	if err != nil {
		return 0, err
	}

	lines := strings.Split(op.Value, "\n")
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil() + lineSpacing

	width := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	height := len(lines)*lineHeight - lineSpacing
	if width == 0 || height <= 0 {
		return 0, nil
	}

	_, spanHeight := c.Size()
	if height > spanHeight {
		return 0, fmt.Errorf("text needs %d dots, media has %d printable", height, spanHeight)
	}

	// Rasterise into a staging image, then copy set pixels across. The
	// drawer needs a draw.Image and the canvas isn't one.
	img := image.NewGray(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.Point26_6{
			X: 0,
			Y: fixed.I(i*lineHeight) + metrics.Ascent,
		}
		d.DrawString(line)
	}

	top := (spanHeight - height) / 2
	for yy := 0; yy < height; yy++ {
		for xx := 0; xx < width; xx++ {
			if img.GrayAt(xx, yy).Y < 0x80 {
				continue
			}
			if err := c.Set(x+xx, top+yy, true); err != nil {
				return 0, err
			}
		}
	}
	return width, nil
}
