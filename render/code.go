package render

import (
	"fmt"
	"image/color"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"

	"tapewriter/canvas"
)

// QR draws a QR code scaled to the largest integer multiple that fits
// the printable span.
type QR struct {
	Value string
}

func (op *QR) Draw(c *canvas.Canvas, x int) (int, error) {
	q, err := qrcode.New(op.Value, qrcode.Medium)
	if err != nil {
		return 0, fmt.Errorf("encoding QR code: %w", err)
	}
	q.DisableBorder = true

	grid := q.Bitmap()
	_, spanHeight := c.Size()
	scale := spanHeight / len(grid)
	if scale < 1 {
		return 0, fmt.Errorf("QR code needs %d dots, media has %d printable", len(grid), spanHeight)
	}

	side := scale * len(grid)
	top := (spanHeight - side) / 2
	for gy, row := range grid {
		for gx, on := range row {
			if !on {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					if err := c.Set(x+gx*scale+dx, top+gy*scale+dy, true); err != nil {
						return 0, err
					}
				}
			}
		}
	}
	return side, nil
}

// Barcode draws a Code 128 barcode across the full printable span.
type Barcode struct {
	Value string
}

func (op *Barcode) Draw(c *canvas.Canvas, x int) (int, error) {
	code, err := code128.Encode(op.Value)
	if err != nil {
		return 0, fmt.Errorf("encoding barcode: %w", err)
	}

	_, spanHeight := c.Size()
	// two dots per module so narrow bars survive the print head
	width := code.Bounds().Dx() * 2
	scaled, err := barcode.Scale(code, width, spanHeight)
	if err != nil {
		return 0, fmt.Errorf("scaling barcode: %w", err)
	}

	bounds := scaled.Bounds()
	for yy := 0; yy < spanHeight; yy++ {
		for xx := 0; xx < width; xx++ {
			g := color.GrayModel.Convert(scaled.At(bounds.Min.X+xx, bounds.Min.Y+yy)).(color.Gray)
			if g.Y >= 0x80 {
				continue
			}
			if err := c.Set(x+xx, yy, true); err != nil {
				return 0, err
			}
		}
	}
	return width, nil
}
