// This package drives Brother P-touch label printers: the binary
// command encoder, the status decoder, the media margin tables and the
// print session state machine. The wire format follows the Brother
// raster command reference.
package ptouch

import "strings"

// Model identifies a supported device by its USB product id.
type Model uint16

const (
	PTE550W  Model = 0x2060
	PTP750W  Model = 0x2062
	PTP710BT Model = 0x20AF
)

var modelNames = map[Model]string{
	PTE550W:  "pt-e550w",
	PTP750W:  "pt-p750w",
	PTP710BT: "pt-p710bt",
}

func (m Model) String() string {
	if n, ok := modelNames[m]; ok {
		return n
	}
	return "unknown"
}

// ModelByName resolves the CLI spelling of a device name.
func ModelByName(name string) (Model, bool) {
	for m, n := range modelNames {
		if n == strings.ToLower(name) {
			return m, true
		}
	}
	return 0, false
}

// Mode selects the device's command interpreter.
type Mode byte

const (
	ModeEscP     Mode = 0x00
	ModeRaster   Mode = 0x01
	ModeTemplate Mode = 0x03
)

// CompressionMode selects how raster transfer payloads are encoded.
type CompressionMode byte

const (
	CompressionNone CompressionMode = 0x00
	CompressionTiff CompressionMode = 0x02
)

// MediaKind is the tape type reported in status frames. Unknown bytes
// decode to MediaIncompatible rather than failing.
type MediaKind byte

const (
	MediaNone         MediaKind = 0x00
	MediaLaminated    MediaKind = 0x01
	MediaNonLaminated MediaKind = 0x03
	MediaHeatShrink   MediaKind = 0x11
	MediaIncompatible MediaKind = 0xFF
)

func MediaKindFromByte(b byte) MediaKind {
	switch k := MediaKind(b); k {
	case MediaNone, MediaLaminated, MediaNonLaminated, MediaHeatShrink:
		return k
	}
	return MediaIncompatible
}

func (k MediaKind) String() string {
	switch k {
	case MediaNone:
		return "none"
	case MediaLaminated:
		return "laminated tape"
	case MediaNonLaminated:
		return "non-laminated tape"
	case MediaHeatShrink:
		return "heat-shrink tube"
	}
	return "incompatible"
}

// StatusType classifies a status frame.
type StatusType byte

const (
	StatusReply        StatusType = 0x00
	StatusCompleted    StatusType = 0x01
	StatusError        StatusType = 0x02
	StatusExitIF       StatusType = 0x03
	StatusTurnedOff    StatusType = 0x04
	StatusNotification StatusType = 0x05
	StatusPhaseChange  StatusType = 0x06
	StatusUnknown      StatusType = 0xFF
)

func StatusTypeFromByte(b byte) StatusType {
	if b <= byte(StatusPhaseChange) {
		return StatusType(b)
	}
	return StatusUnknown
}

func (s StatusType) String() string {
	switch s {
	case StatusReply:
		return "reply"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	case StatusExitIF:
		return "exit interface"
	case StatusTurnedOff:
		return "turned off"
	case StatusNotification:
		return "notification"
	case StatusPhaseChange:
		return "phase change"
	}
	return "unknown"
}

// Phase is the device's coarse operating state.
type Phase byte

const (
	PhaseEditing  Phase = 0x00
	PhasePrinting Phase = 0x01
	PhaseUnknown  Phase = 0xFF
)

func PhaseFromByte(b byte) Phase {
	switch p := Phase(b); p {
	case PhaseEditing, PhasePrinting:
		return p
	}
	return PhaseUnknown
}

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhasePrinting:
		return "printing"
	}
	return "unknown"
}

// TapeColour is the tape background colour code reported by the device.
type TapeColour byte

const (
	TapeWhite             TapeColour = 0x01
	TapeOther             TapeColour = 0x02
	TapeClear             TapeColour = 0x03
	TapeRed               TapeColour = 0x04
	TapeBlue              TapeColour = 0x05
	TapeYellow            TapeColour = 0x06
	TapeGreen             TapeColour = 0x07
	TapeBlack             TapeColour = 0x08
	TapeClearWhiteText    TapeColour = 0x09
	TapeMatteWhite        TapeColour = 0x20
	TapeMatteClear        TapeColour = 0x21
	TapeMatteSilver       TapeColour = 0x22
	TapeSatinGold         TapeColour = 0x23
	TapeSatinSilver       TapeColour = 0x24
	TapeBlueD             TapeColour = 0x30
	TapeRedD              TapeColour = 0x31
	TapeFluorescentOrange TapeColour = 0x40
	TapeFluorescentYellow TapeColour = 0x41
	TapeBerryPink         TapeColour = 0x50
	TapeLightGray         TapeColour = 0x51
	TapeLimeGreen         TapeColour = 0x52
	TapeYellowF           TapeColour = 0x60
	TapePinkF             TapeColour = 0x61
	TapeBlueF             TapeColour = 0x62
	TapeWhiteHeatShrink   TapeColour = 0x70
	TapeWhiteFlexID       TapeColour = 0x90
	TapeYellowFlexID      TapeColour = 0x91
	TapeCleaning          TapeColour = 0xF0
	TapeStencil           TapeColour = 0xF1
	TapeIncompatible      TapeColour = 0xFF
)

func TapeColourFromByte(b byte) TapeColour {
	switch c := TapeColour(b); c {
	case TapeWhite, TapeOther, TapeClear, TapeRed, TapeBlue, TapeYellow,
		TapeGreen, TapeBlack, TapeClearWhiteText, TapeMatteWhite,
		TapeMatteClear, TapeMatteSilver, TapeSatinGold, TapeSatinSilver,
		TapeBlueD, TapeRedD, TapeFluorescentOrange, TapeFluorescentYellow,
		TapeBerryPink, TapeLightGray, TapeLimeGreen, TapeYellowF,
		TapePinkF, TapeBlueF, TapeWhiteHeatShrink, TapeWhiteFlexID,
		TapeYellowFlexID, TapeCleaning, TapeStencil:
		return c
	}
	return TapeIncompatible
}

// TextColour is the print colour code reported by the device.
type TextColour byte

const (
	TextWhite        TextColour = 0x01
	TextOther        TextColour = 0x02
	TextRed          TextColour = 0x04
	TextBlue         TextColour = 0x05
	TextBlack        TextColour = 0x08
	TextGold         TextColour = 0x0A
	TextBlueF        TextColour = 0x62
	TextCleaning     TextColour = 0xF0
	TextStencil      TextColour = 0xF1
	TextIncompatible TextColour = 0xFF
)

func TextColourFromByte(b byte) TextColour {
	switch c := TextColour(b); c {
	case TextWhite, TextOther, TextRed, TextBlue, TextBlack, TextGold,
		TextBlueF, TextCleaning, TextStencil:
		return c
	}
	return TextIncompatible
}

// VariousMode holds the print option bits of the various-mode command.
type VariousMode byte

const (
	VariousAutoCut VariousMode = 1 << 6
	VariousMirror  VariousMode = 1 << 7
)

// VariousModeFromByte truncates unrecognised bits.
func VariousModeFromByte(b byte) VariousMode {
	return VariousMode(b) & (VariousAutoCut | VariousMirror)
}

// AdvancedMode holds the print option bits of the advanced-mode command.
type AdvancedMode byte

const (
	AdvancedHalfCut       AdvancedMode = 1 << 2
	AdvancedNoChain       AdvancedMode = 1 << 3
	AdvancedSpecialTape   AdvancedMode = 1 << 4
	AdvancedHighRes       AdvancedMode = 1 << 6
	AdvancedNoBufferClear AdvancedMode = 1 << 7
)

// AdvancedModeFromByte truncates unrecognised bits.
func AdvancedModeFromByte(b byte) AdvancedMode {
	return AdvancedMode(b) & (AdvancedHalfCut | AdvancedNoChain |
		AdvancedSpecialTape | AdvancedHighRes | AdvancedNoBufferClear)
}
