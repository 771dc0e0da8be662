package ptouch

import (
	"fmt"
	"strings"
)

// StatusFrameSize is the fixed size of every status frame the device
// emits.
const StatusFrameSize = 32

// Error1 is the first device error bitmask.
type Error1 byte

const (
	Err1NoMedia     Error1 = 1 << 0
	Err1CutterJam   Error1 = 1 << 2
	Err1WeakBattery Error1 = 1 << 3
	Err1HighVoltage Error1 = 1 << 6
)

// Error1FromByte truncates unrecognised bits.
func Error1FromByte(b byte) Error1 {
	return Error1(b) & (Err1NoMedia | Err1CutterJam | Err1WeakBattery | Err1HighVoltage)
}

func (e Error1) String() string {
	var names []string
	if e&Err1NoMedia != 0 {
		names = append(names, "no media")
	}
	if e&Err1CutterJam != 0 {
		names = append(names, "cutter jam")
	}
	if e&Err1WeakBattery != 0 {
		names = append(names, "weak battery")
	}
	if e&Err1HighVoltage != 0 {
		names = append(names, "high voltage adapter")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// Error2 is the second device error bitmask.
type Error2 byte

const (
	Err2WrongMedia Error2 = 1 << 0
	Err2CoverOpen  Error2 = 1 << 4
	Err2Overheat   Error2 = 1 << 5
)

// Error2FromByte truncates unrecognised bits.
func Error2FromByte(b byte) Error2 {
	return Error2(b) & (Err2WrongMedia | Err2CoverOpen | Err2Overheat)
}

func (e Error2) String() string {
	var names []string
	if e&Err2WrongMedia != 0 {
		names = append(names, "wrong media")
	}
	if e&Err2CoverOpen != 0 {
		names = append(names, "cover open")
	}
	if e&Err2Overheat != 0 {
		names = append(names, "overheating")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// Status is one decoded status frame. It is a snapshot: each status
// query produces a fresh value and nothing mutates it afterwards.
type Status struct {
	ModelCode  byte
	Error1     Error1
	Error2     Error2
	MediaWidth uint8 // millimetres
	MediaKind  MediaKind
	Type       StatusType
	Phase      Phase
	TapeColour TapeColour
	TextColour TextColour

	// Raw keeps the whole frame for diagnostics.
	Raw [StatusFrameSize]byte
}

// Errored reports whether either error bitmask is set.
func (s *Status) Errored() bool {
	return s.Error1 != 0 || s.Error2 != 0
}

func (s *Status) String() string {
	return fmt.Sprintf("Status(%s, phase %s, %dmm %s, errors: %s / %s)",
		s.Type, s.Phase, s.MediaWidth, s.MediaKind, s.Error1, s.Error2)
}

// ParseStatus decodes a 32-byte status frame. Every field sits at a
// fixed offset; unknown enum bytes decode to their Unknown or
// Incompatible member and unknown flag bits are dropped, so a
// well-formed frame never fails to decode.
func ParseStatus(frame []byte) (*Status, error) {
	if len(frame) != StatusFrameSize {
		return nil, fmt.Errorf("status frame is %d bytes, expected %d", len(frame), StatusFrameSize)
	}

	s := &Status{
		ModelCode:  frame[0],
		Error1:     Error1FromByte(frame[8]),
		Error2:     Error2FromByte(frame[9]),
		MediaWidth: frame[10],
		MediaKind:  MediaKindFromByte(frame[11]),
		Type:       StatusTypeFromByte(frame[18]),
		Phase:      PhaseFromByte(frame[20]),
		TapeColour: TapeColourFromByte(frame[24]),
		TextColour: TextColourFromByte(frame[25]),
	}
	copy(s.Raw[:], frame)
	return s, nil
}
