package ptouch

import (
	"encoding/binary"

	"tapewriter/printer"
)

// PrintInfo carries the print-information command's payload, built from
// the current device status and canvas size immediately before a
// session. Nil optional fields are omitted from the command's validity
// flags.
type PrintInfo struct {
	Kind   *MediaKind
	Width  *uint8 // millimetres
	Length *uint8 // always zero for continuous tape
	// RasterCount is the number of raster lines the session will
	// transfer.
	RasterCount uint32
	// Recover enables the device's print recovery behaviour.
	Recover bool
}

// Commands encodes the raster command set onto a transport. Every
// method writes one complete command frame and reports only whether the
// write succeeded; sequencing and retries belong to the Session.
type Commands struct {
	t printer.Transport
}

func NewCommands(t printer.Transport) *Commands {
	return &Commands{t: t}
}

// Null writes a single zero byte.
func (c *Commands) Null() error {
	return c.t.Write([]byte{0x00})
}

// Invalidate writes 100 zero bytes, flushing any partial command the
// device may be holding.
func (c *Commands) Invalidate() error {
	return c.t.Write(make([]byte, 100))
}

// Init resets the device's mode settings.
func (c *Commands) Init() error {
	return c.t.Write([]byte{0x1B, 0x40})
}

// RequestStatus asks the device to emit one status frame.
func (c *Commands) RequestStatus() error {
	return c.t.Write([]byte{0x1B, 0x69, 0x53})
}

// SwitchMode selects the device's command interpreter.
func (c *Commands) SwitchMode(mode Mode) error {
	return c.t.Write([]byte{0x1B, 0x69, 0x61, byte(mode)})
}

// SetStatusNotify toggles automatic status notification. On the wire 0
// means enabled.
func (c *Commands) SetStatusNotify(enabled bool) error {
	var en byte = 1
	if enabled {
		en = 0
	}
	return c.t.Write([]byte{0x1B, 0x69, 0x21, en})
}

// SetPrintInfo writes the 13-byte print-information command.
func (c *Commands) SetPrintInfo(info *PrintInfo) error {
	buff := make([]byte, 13)
	buff[0] = 0x1B
	buff[1] = 0x69
	buff[2] = 0x7A

	if info.Kind != nil {
		buff[3] |= 0x02
		buff[4] = byte(*info.Kind)
	}
	if info.Width != nil {
		buff[3] |= 0x04
		buff[5] = *info.Width
	}
	if info.Length != nil {
		buff[3] |= 0x08
		buff[6] = *info.Length
	}
	if info.Recover {
		buff[3] |= 0x80
	}
	binary.LittleEndian.PutUint32(buff[7:11], info.RasterCount)

	return c.t.Write(buff)
}

func (c *Commands) SetVariousMode(mode VariousMode) error {
	return c.t.Write([]byte{0x1B, 0x69, 0x4D, byte(mode)})
}

func (c *Commands) SetAdvancedMode(mode AdvancedMode) error {
	return c.t.Write([]byte{0x1B, 0x69, 0x4B, byte(mode)})
}

// SetMargin sets the feed margin in dots.
func (c *Commands) SetMargin(dots uint16) error {
	return c.t.Write([]byte{0x1B, 0x69, 0x64, byte(dots), byte(dots >> 8)})
}

func (c *Commands) SetPageNo(no byte) error {
	return c.t.Write([]byte{0x1B, 0x69, 0x41, no})
}

func (c *Commands) SetCompressionMode(mode CompressionMode) error {
	return c.t.Write([]byte{0x4D, byte(mode)})
}

// RasterTransfer writes one raster line, raw or compressed.
func (c *Commands) RasterTransfer(data []byte) error {
	buff := make([]byte, len(data)+3)
	buff[0] = 0x47
	binary.LittleEndian.PutUint16(buff[1:3], uint16(len(data)))
	copy(buff[3:], data)
	return c.t.Write(buff)
}

// RasterZero is the shorthand for an all-blank raster line.
func (c *Commands) RasterZero() error {
	return c.t.Write([]byte{0x5A})
}

// Print starts printing without feeding the tape clear of the head.
func (c *Commands) Print() error {
	return c.t.Write([]byte{0x0C})
}

// PrintAndFeed starts printing the final page and feeds the tape.
func (c *Commands) PrintAndFeed() error {
	return c.t.Write([]byte{0x1A})
}
