package ptouch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/gousb"

	"tapewriter/printer"
)

// All P-touch devices share Brother's vendor id; the product id
// selects the model.
const brotherVendorID = 0x04F9

// DefaultTimeout bounds every bulk transfer unless the caller
// configures otherwise.
const DefaultTimeout = 500 * time.Millisecond

var (
	ErrNoDevice     = errors.New("no matching device found")
	ErrInvalidIndex = errors.New("device index out of range")
	ErrNoEndpoints  = errors.New("bulk endpoints not found")
)

var _ printer.Transport = (*USBTransport)(nil)

// Filter selects which connected device to open when several match.
type Filter struct {
	Model Model
	Index int
}

// USBTransport is the bulk-transfer link to one device: one OUT
// endpoint for commands, one IN endpoint for status frames, and one
// timeout for both. It is exclusively owned by a single session or
// status query at a time.
type USBTransport struct {
	ctx     *gousb.Context
	dev     *gousb.Device
	done    func()
	in      *gousb.InEndpoint
	out     *gousb.OutEndpoint
	timeout time.Duration
}

// OpenUSB finds, opens and claims a device matching the filter. All
// failures here are configuration errors: nothing has been written to
// the device yet and retrying without fixing the setup will not help.
func OpenUSB(f Filter, timeout time.Duration) (*USBTransport, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx := gousb.NewContext()
	t, err := open(ctx, f, timeout)
	if err != nil {
		ctx.Close()
		return nil, err
	}
	t.ctx = ctx
	return t, nil
}

func open(ctx *gousb.Context, f Filter, timeout time.Duration) (*USBTransport, error) {
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(brotherVendorID) && desc.Product == gousb.ID(f.Model)
	})
	if err != nil {
		// Some unrelated devices can fail to open while enumerating;
		// only give up if nothing matched at all.
		slog.Debug("Device enumeration reported errors", "err", err)
	}
	if len(devs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDevice, f.Model)
	}
	if f.Index < 0 || f.Index >= len(devs) {
		for _, d := range devs {
			d.Close()
		}
		return nil, fmt.Errorf("%w: index %d of %d matching devices", ErrInvalidIndex, f.Index, len(devs))
	}

	dev := devs[f.Index]
	for i, d := range devs {
		if i != f.Index {
			d.Close()
		}
	}

	if err := dev.SetAutoDetach(true); err != nil {
		slog.Debug("Couldn't enable kernel driver auto-detach", "err", err)
	}

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("%w: claiming interface: %v", ErrNoEndpoints, err)
	}

	// One bulk IN endpoint carries status frames, one bulk OUT carries
	// commands; locate both from the claimed interface.
	inNum, outNum := -1, -1
	for _, ep := range intf.Setting.Endpoints {
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		if ep.Direction == gousb.EndpointDirectionIn {
			inNum = ep.Number
		} else {
			outNum = ep.Number
		}
	}
	if inNum < 0 || outNum < 0 {
		done()
		dev.Close()
		return nil, fmt.Errorf("%w on %s", ErrNoEndpoints, f.Model)
	}

	in, err := intf.InEndpoint(inNum)
	if err != nil {
		done()
		dev.Close()
		return nil, fmt.Errorf("%w: opening IN endpoint %d: %v", ErrNoEndpoints, inNum, err)
	}
	out, err := intf.OutEndpoint(outNum)
	if err != nil {
		done()
		dev.Close()
		return nil, fmt.Errorf("%w: opening OUT endpoint %d: %v", ErrNoEndpoints, outNum, err)
	}

	slog.Debug("Opened device",
		"model", f.Model,
		"statusEndpoint", inNum,
		"commandEndpoint", outNum,
	)

	return &USBTransport{
		dev:     dev,
		done:    done,
		in:      in,
		out:     out,
		timeout: timeout,
	}, nil
}

// Write sends one command frame over the bulk OUT endpoint, blocking
// up to the transport timeout. A short write is an error.
func (u *USBTransport) Write(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
	defer cancel()

	n, err := u.out.WriteContext(ctx, data)
	if err != nil {
		return fmt.Errorf("bulk write: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("bulk write: wrote %d of %d bytes", n, len(data))
	}
	return nil
}

// ReadStatus reads one status frame from the bulk IN endpoint,
// returning however many bytes arrived within the timeout.
func (u *USBTransport) ReadStatus() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
	defer cancel()

	buf := make([]byte, StatusFrameSize)
	n, err := u.in.ReadContext(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("bulk read: %w", err)
	}
	return buf[:n], nil
}

// Info fetches the descriptor strings of the opened device.
func (u *USBTransport) Info() (printer.DeviceInfo, error) {
	var info printer.DeviceInfo
	var err error

	if info.Manufacturer, err = u.dev.Manufacturer(); err != nil {
		return info, fmt.Errorf("reading manufacturer string: %w", err)
	}
	if info.Product, err = u.dev.Product(); err != nil {
		return info, fmt.Errorf("reading product string: %w", err)
	}
	if info.Serial, err = u.dev.SerialNumber(); err != nil {
		return info, fmt.Errorf("reading serial string: %w", err)
	}
	return info, nil
}

// Close releases the interface, device and USB context. Any blocked
// transfer on another goroutine surfaces a transport error once the
// handle goes away; that is the only cancellation mechanism.
func (u *USBTransport) Close() error {
	u.done()
	err := u.dev.Close()
	if u.ctx != nil {
		if cerr := u.ctx.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
