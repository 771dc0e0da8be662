package ptouch

import (
	"testing"
)

func statusFrame(modify func(frame []byte)) []byte {
	frame := make([]byte, StatusFrameSize)
	if modify != nil {
		modify(frame)
	}
	return frame
}

func TestParseStatusPhaseChange(t *testing.T) {
	s, err := ParseStatus(statusFrame(func(f []byte) {
		f[18] = 0x06
		f[20] = 0x01
	}))
	if err != nil {
		t.Fatalf("ParseStatus failed: %v", err)
	}

	if s.Type != StatusPhaseChange {
		t.Errorf("Type = %v, expected phase change", s.Type)
	}
	if s.Phase != PhasePrinting {
		t.Errorf("Phase = %v, expected printing", s.Phase)
	}
	if s.Errored() {
		t.Errorf("clean frame reported errors: %s / %s", s.Error1, s.Error2)
	}
}

func TestParseStatusMediaFields(t *testing.T) {
	s, err := ParseStatus(statusFrame(func(f []byte) {
		f[10] = 18   // width mm
		f[11] = 0x01 // laminated
		f[24] = 0x01 // white tape
		f[25] = 0x08 // black text
	}))
	if err != nil {
		t.Fatalf("ParseStatus failed: %v", err)
	}

	if s.MediaWidth != 18 {
		t.Errorf("MediaWidth = %d, expected 18", s.MediaWidth)
	}
	if s.MediaKind != MediaLaminated {
		t.Errorf("MediaKind = %v, expected laminated", s.MediaKind)
	}
	if s.TapeColour != TapeWhite {
		t.Errorf("TapeColour = %#02x, expected white", s.TapeColour)
	}
	if s.TextColour != TextBlack {
		t.Errorf("TextColour = %#02x, expected black", s.TextColour)
	}
}

// Unknown enum bytes must decode to the incompatible/unknown members,
// never fail the whole frame.
func TestParseStatusUnknownValues(t *testing.T) {
	s, err := ParseStatus(statusFrame(func(f []byte) {
		f[11] = 0x42
		f[18] = 0x99
		f[20] = 0x07
		f[24] = 0xEE
		f[25] = 0xEE
	}))
	if err != nil {
		t.Fatalf("ParseStatus failed on unknown values: %v", err)
	}

	if s.MediaKind != MediaIncompatible {
		t.Errorf("MediaKind = %v, expected incompatible", s.MediaKind)
	}
	if s.Type != StatusUnknown {
		t.Errorf("Type = %v, expected unknown", s.Type)
	}
	if s.Phase != PhaseUnknown {
		t.Errorf("Phase = %v, expected unknown", s.Phase)
	}
	if s.TapeColour != TapeIncompatible {
		t.Errorf("TapeColour = %#02x, expected incompatible", s.TapeColour)
	}
	if s.TextColour != TextIncompatible {
		t.Errorf("TextColour = %#02x, expected incompatible", s.TextColour)
	}
}

func TestParseStatusErrorMasks(t *testing.T) {
	s, err := ParseStatus(statusFrame(func(f []byte) {
		f[8] = 0b0000_0101 // no media + cutter jam
		f[9] = 0b0001_0001 // wrong media + cover open
	}))
	if err != nil {
		t.Fatalf("ParseStatus failed: %v", err)
	}

	if s.Error1 != Err1NoMedia|Err1CutterJam {
		t.Errorf("Error1 = %s, expected no media + cutter jam", s.Error1)
	}
	if s.Error2 != Err2WrongMedia|Err2CoverOpen {
		t.Errorf("Error2 = %s, expected wrong media + cover open", s.Error2)
	}
	if !s.Errored() {
		t.Error("Errored() = false with both masks set")
	}
}

// Bits without a named meaning are dropped rather than rejected.
func TestErrorMasksTruncateUnknownBits(t *testing.T) {
	if e := Error1FromByte(0xFF); e != Err1NoMedia|Err1CutterJam|Err1WeakBattery|Err1HighVoltage {
		t.Errorf("Error1FromByte(0xFF) = %#02x, kept unknown bits", byte(e))
	}
	if e := Error2FromByte(0xFF); e != Err2WrongMedia|Err2CoverOpen|Err2Overheat {
		t.Errorf("Error2FromByte(0xFF) = %#02x, kept unknown bits", byte(e))
	}
}

func TestParseStatusBadLength(t *testing.T) {
	if _, err := ParseStatus(make([]byte, 16)); err == nil {
		t.Error("short frame parsed without error")
	}
	if _, err := ParseStatus(make([]byte, 33)); err == nil {
		t.Error("oversized frame parsed without error")
	}
}

func TestModeFlagsTruncateUnknownBits(t *testing.T) {
	if m := VariousModeFromByte(0xFF); m != VariousAutoCut|VariousMirror {
		t.Errorf("VariousModeFromByte(0xFF) = %#02x", byte(m))
	}
	if m := AdvancedModeFromByte(0xFF); m != AdvancedHalfCut|AdvancedNoChain|AdvancedSpecialTape|AdvancedHighRes|AdvancedNoBufferClear {
		t.Errorf("AdvancedModeFromByte(0xFF) = %#02x", byte(m))
	}
}

func TestModelByName(t *testing.T) {
	m, ok := ModelByName("pt-p710bt")
	if !ok || m != PTP710BT {
		t.Errorf("ModelByName(pt-p710bt) = %v, %v", m, ok)
	}
	if _, ok := ModelByName("pt-unknown"); ok {
		t.Error("unknown model name resolved")
	}
}
