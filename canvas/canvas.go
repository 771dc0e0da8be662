// This package implements the 1-bit canvas that render operations draw
// into. Pixels are stored column-major because the printer consumes the
// image one column (one raster line) at a time; the canvas grows in the
// X direction as content is drawn and exports either a row-packed
// preview buffer or margin-aligned raster lines for the device.
package canvas

import (
	"errors"
	"fmt"
)

const bitsPerWord = 8

// RasterLineSize is the fixed size in bytes of one exported raster
// line, covering all 128 dot positions of the print head.
const RasterLineSize = 16

var (
	ErrOutOfRange   = errors.New("pixel coordinate out of range")
	ErrSizeMismatch = errors.New("canvas height does not match printable span")
)

// Margins describes how a piece of media sits within the print head:
// the unused leading dots, the printable span, and the unused trailing
// dots, all in dot units. For supported media the three sum to the
// head's total dot count.
type Margins struct {
	Leading   int
	Printable int
	Trailing  int
}

// Total returns the full dot count covered by the margins.
func (m Margins) Total() int {
	return m.Leading + m.Printable + m.Trailing
}

// IsZero reports whether the margins are the all-zero triple used to
// signal an unrecognised media combination.
func (m Margins) IsZero() bool {
	return m == Margins{}
}

// Canvas is a growable column-major grid of 1-bit pixels. Height is
// fixed at construction; width only ever grows, and newly appended
// columns are all-off.
type Canvas struct {
	height int
	stride int // bytes per column
	cols   [][]byte
}

// New creates a canvas with the given fixed height and an initial
// all-off width of minWidth columns. Heights that aren't a multiple of
// 8 are padded internally; the logical height is preserved.
func New(height, minWidth int) *Canvas {
	c := &Canvas{
		height: height,
		stride: (height + bitsPerWord - 1) / bitsPerWord,
	}
	c.grow(minWidth)
	return c
}

func (c *Canvas) grow(width int) {
	for len(c.cols) < width {
		c.cols = append(c.cols, make([]byte, c.stride))
	}
}

// Size returns the current width and the fixed height.
func (c *Canvas) Size() (width int, height int) {
	return len(c.cols), c.height
}

// Set writes one pixel. Writing beyond the current width grows the
// canvas; writing beyond the height fails.
func (c *Canvas) Set(x int, y int, on bool) error {
	if x < 0 || y < 0 || y >= c.height {
		return fmt.Errorf("%w: set (%d,%d) on %s", ErrOutOfRange, x, y, c)
	}
	c.grow(x + 1)

	if on {
		c.cols[x][y/bitsPerWord] |= 1 << (y % bitsPerWord)
	} else {
		c.cols[x][y/bitsPerWord] &^= 1 << (y % bitsPerWord)
	}
	return nil
}

// Get reads one pixel. Unlike Set, reading beyond the current width
// does not grow the canvas and is an out-of-range error.
func (c *Canvas) Get(x int, y int) (bool, error) {
	if x < 0 || y < 0 || x >= len(c.cols) || y >= c.height {
		return false, fmt.Errorf("%w: get (%d,%d) on %s", ErrOutOfRange, x, y, c)
	}
	return c.cols[x][y/bitsPerWord]&(1<<(y%bitsPerWord)) != 0, nil
}

func (c *Canvas) String() string {
	return fmt.Sprintf("Canvas(%d,%d)", len(c.cols), c.height)
}

// ExportPacked reshapes the canvas into a row-major buffer with 8
// pixels per byte, least significant bit first, the width padded up to
// a multiple of 8. This layout is only used for previews and tests;
// the device consumes ExportRaster output.
func (c *Canvas) ExportPacked() []byte {
	width := len(c.cols)
	padded := width
	for padded%bitsPerWord != 0 {
		padded++
	}

	buff := make([]byte, padded/bitsPerWord*c.height)
	for x := 0; x < width; x++ {
		for y := 0; y < c.height; y++ {
			if c.cols[x][y/bitsPerWord]&(1<<(y%bitsPerWord)) == 0 {
				continue
			}
			buff[x/bitsPerWord+y*padded/bitsPerWord] |= 1 << (x % bitsPerWord)
		}
	}
	return buff
}

// ExportRaster produces one fixed-size raster line per column, aligned
// for the given media margins. The device expects dot 0 of the print
// head as bit 7 of byte 0, so each set pixel lands at bit
// (7 - offset%8) of byte offset/8 where offset is the pixel's Y
// position shifted by the leading margin.
//
// The canvas height must equal the printable span exactly.
func (c *Canvas) ExportRaster(m Margins) ([][]byte, error) {
	if c.height != m.Printable {
		return nil, fmt.Errorf("%w: %s vs printable span %d", ErrSizeMismatch, c, m.Printable)
	}
	if m.Total() > RasterLineSize*bitsPerWord {
		return nil, fmt.Errorf("%w: margins cover %d dots, line holds %d", ErrSizeMismatch, m.Total(), RasterLineSize*bitsPerWord)
	}

	lines := make([][]byte, len(c.cols))
	for x := range c.cols {
		line := make([]byte, RasterLineSize)
		for y := 0; y < c.height; y++ {
			if c.cols[x][y/bitsPerWord]&(1<<(y%bitsPerWord)) == 0 {
				continue
			}
			offset := y + m.Leading
			line[offset/bitsPerWord] |= 1 << (7 - offset%bitsPerWord)
		}
		lines[x] = line
	}
	return lines, nil
}
