// This package implements the PackBits-style run-length codec the
// printer's TIFF compression mode uses for raster lines. A signed
// control byte introduces each run: negative means the next byte
// repeats (1 - control) times, non-negative means (control + 1) raw
// bytes follow.
//
// This is deliberately a raster-line-sized codec, not a general
// PackBits implementation: when the encoded form would exceed the
// 16-byte line budget it falls back to a raw frame of one length byte
// followed by the unmodified data, and runs longer than a line cannot
// occur. Inputs unrelated to raster lines are out of contract.
package packbits

// Encoded output longer than one raster line is never worth sending.
const fallbackThreshold = 16

type runKind int

const (
	runPending runKind = iota // one buffered byte, run undecided
	runRepeat                 // count copies of value seen
	runLiteral                // adjacent non-repeating bytes buffered
)

// run is the codec's scan state, one of the three run kinds.
type run struct {
	kind  runKind
	value byte
	count int
	buf   []byte
}

// next consumes one input byte, appending any completed run to out and
// returning the successor state and the extended output.
func (r run) next(b byte, out []byte) (run, []byte) {
	switch r.kind {
	case runPending:
		if b == r.value {
			return run{kind: runRepeat, value: b, count: 2}, out
		}
		return run{kind: runLiteral, buf: []byte{r.value, b}}, out

	case runRepeat:
		if b == r.value {
			r.count++
			return r, out
		}
		out = append(out, byte(-(r.count - 1)), r.value)
		return run{kind: runPending, value: b}, out

	default: // runLiteral
		if b != r.buf[len(r.buf)-1] {
			r.buf = append(r.buf, b)
			return r, out
		}
		// The repeated byte belongs to the new repeat run, not the
		// literal, so flush everything before it.
		keep := r.buf[:len(r.buf)-1]
		out = append(out, byte(len(keep)-1))
		out = append(out, keep...)
		return run{kind: runRepeat, value: b, count: 2}, out
	}
}

// flush appends whatever run is still open at end of input.
func (r run) flush(out []byte) []byte {
	switch r.kind {
	case runPending:
		return append(out, 0x00, r.value)
	case runRepeat:
		return append(out, byte(-(r.count-1)), r.value)
	default:
		out = append(out, byte(len(r.buf)-1))
		return append(out, r.buf...)
	}
}

// Compress run-length encodes data. If the encoded form would exceed
// the raster-line budget the raw fallback frame (length byte plus the
// unmodified bytes) is emitted instead, so the worst case grows the
// payload by exactly one byte.
func Compress(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	var out []byte
	r := run{kind: runPending, value: data[0]}
	for _, b := range data[1:] {
		r, out = r.next(b, out)
	}
	out = r.flush(out)

	if len(out) > fallbackThreshold {
		out = make([]byte, 0, len(data)+1)
		out = append(out, byte(len(data)))
		out = append(out, data...)
	}
	return out
}

// Decompress reverses Compress. Literal copies are clamped to the
// remaining input so the raw fallback frame, whose length byte claims
// one more literal than follows it, round-trips exactly.
func Decompress(data []byte) []byte {
	var out []byte
	for i := 0; i < len(data); {
		control := int8(data[i])
		i++
		if i >= len(data) {
			// truncated trailing run
			break
		}

		if control < 0 {
			v := data[i]
			i++
			for n := 1 - int(control); n > 0; n-- {
				out = append(out, v)
			}
		} else {
			n := int(control) + 1
			if n > len(data)-i {
				n = len(data) - i
			}
			out = append(out, data[i:i+n]...)
			i += n
		}
	}
	return out
}
