package ptouch

import "tapewriter/canvas"

// MediaMargins looks up the print-head margins for a media kind and
// physical tape width in millimetres. The triple always sums to the
// head's 128 dots for recognised media; unrecognised combinations
// return the zero triple, which callers must reject before printing.
func MediaMargins(kind MediaKind, widthMM uint8) canvas.Margins {
	switch kind {
	case MediaLaminated, MediaNonLaminated:
		switch widthMM {
		case 6:
			return canvas.Margins{Leading: 48, Printable: 32, Trailing: 48}
		case 9:
			return canvas.Margins{Leading: 39, Printable: 50, Trailing: 39}
		case 12:
			return canvas.Margins{Leading: 29, Printable: 70, Trailing: 29}
		case 18:
			return canvas.Margins{Leading: 8, Printable: 112, Trailing: 8}
		case 24:
			return canvas.Margins{Leading: 0, Printable: 128, Trailing: 0}
		}

	case MediaHeatShrink:
		switch widthMM {
		case 6:
			return canvas.Margins{Leading: 50, Printable: 28, Trailing: 50}
		case 9:
			return canvas.Margins{Leading: 40, Printable: 48, Trailing: 40}
		case 12:
			return canvas.Margins{Leading: 31, Printable: 66, Trailing: 31}
		case 18:
			return canvas.Margins{Leading: 11, Printable: 106, Trailing: 11}
		case 24:
			return canvas.Margins{Leading: 0, Printable: 128, Trailing: 0}
		}
	}

	return canvas.Margins{}
}
