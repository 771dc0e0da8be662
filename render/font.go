package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/font/opentype"
)

const defaultFontSize = 32

// loadFace resolves a text op's font. Built-in names cover the common
// cases; a file path wins over the name when both are given.
func loadFace(name, file string, size float64) (font.Face, error) {
	if size == 0 {
		size = defaultFontSize
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading font file: %w", err)
		}
		return scalableFace(data, size)
	}

	switch name {
	case "", "goregular":
		return scalableFace(goregular.TTF, size)
	case "gomono":
		return scalableFace(gomono.TTF, size)
	case "7x13":
		return basicfont.Face7x13, nil
	case "8x16":
		return inconsolata.Regular8x16, nil
	case "8x16-bold":
		return inconsolata.Bold8x16, nil
	}
	return nil, fmt.Errorf(`unrecognised font "%s"`, name)
}

func scalableFace(data []byte, size float64) (font.Face, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	return face, nil
}
