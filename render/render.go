// This package turns a list of render operations (text, QR code,
// barcode, image, padding) into canvas pixels. Ops are laid out left to
// right along the tape-feed axis; each op reports the width it
// consumed. The canvas grows as ops draw, up to a configured limit.
package render

import (
	"fmt"

	"tapewriter/canvas"
)

type Config struct {
	// Height is the printable span of the loaded media in dots.
	Height int
	// MinWidth pre-allocates blank columns; MaxWidth bounds growth so a
	// runaway template can't produce metres of tape.
	MinWidth int
	MaxWidth int
}

// Op draws itself onto the canvas starting at column x and returns the
// number of columns it consumed.
type Op interface {
	Draw(c *canvas.Canvas, x int) (int, error)
}

// Render applies ops in order onto a fresh canvas.
func Render(cfg Config, ops []Op) (*canvas.Canvas, error) {
	if cfg.Height <= 0 {
		return nil, fmt.Errorf("render height must be positive, got %d", cfg.Height)
	}
	if cfg.MinWidth == 0 {
		cfg.MinWidth = 32
	}
	if cfg.MaxWidth == 0 {
		cfg.MaxWidth = 1024
	}

	c := canvas.New(cfg.Height, cfg.MinWidth)
	x := 0
	for i, op := range ops {
		w, err := op.Draw(c, x)
		if err != nil {
			return nil, fmt.Errorf("render op %d: %w", i, err)
		}
		x += w
		if x > cfg.MaxWidth {
			return nil, fmt.Errorf("render op %d grows the label to %d columns, limit is %d", i, x, cfg.MaxWidth)
		}
	}
	return c, nil
}
