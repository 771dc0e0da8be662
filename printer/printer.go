// This package defines the contracts shared between the device-specific
// protocol driver and whatever owns the physical link. It assumes one
// exclusively-owned device per transport for the transport's lifetime;
// nothing here is safe for concurrent use and nothing needs to be.
package printer

// Transport is the byte-level link to a label printer: one in-order
// command channel and one channel for fixed-size status frames. Both
// directions block up to the transport's configured timeout.
type Transport interface {
	// Write sends one complete command frame.
	Write(data []byte) error

	// ReadStatus reads one status frame, returning however many bytes
	// arrived before the timeout. Callers decide whether a short read
	// is fatal.
	ReadStatus() ([]byte, error)

	Close() error
}

// DeviceInfo holds the USB descriptor strings of a connected printer.
type DeviceInfo struct {
	Manufacturer string
	Product      string
	Serial       string
}
