package ptouch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tapewriter/canvas"
	"tapewriter/packbits"
	"tapewriter/printer"
)

// ErrTimeout is returned when the completion poll bound is exhausted
// without the device reporting a completed print.
var ErrTimeout = errors.New("device did not report completion in time")

// DeviceError carries the raw error bitmasks of a status frame that
// aborted a session. It is fatal; the operator has to address the
// physical cause before retrying.
type DeviceError struct {
	Error1 Error1
	Error2 Error2
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device reported errors: %s / %s", e.Error1, e.Error2)
}

// SessionConfig bounds a print session. The zero value is replaced
// with the defaults the device documentation suggests.
type SessionConfig struct {
	// PollAttempts bounds the completion poll loop.
	PollAttempts int
	// PollInterval is the fixed sleep between poll attempts.
	PollInterval time.Duration
	// Compress selects TIFF compression for raster transfers. Off by
	// default; the fallback-heavy codec hasn't been validated against
	// every device revision.
	Compress bool
}

// Session executes one print job against one exclusively-owned
// transport. The command sequence is fixed: a session never reorders
// steps and never resumes after a failure.
type Session struct {
	cmds *Commands
	t    printer.Transport
	cfg  SessionConfig

	// sleep is swapped out in tests to avoid real delays.
	sleep func(time.Duration)
}

func NewSession(t printer.Transport, cfg SessionConfig) *Session {
	if cfg.PollAttempts == 0 {
		cfg.PollAttempts = 10
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Second
	}
	return &Session{
		cmds:  NewCommands(t),
		t:     t,
		cfg:   cfg,
		sleep: time.Sleep,
	}
}

// QueryStatus performs the reset-and-request sequence that fetches one
// status frame outside of a print session.
func QueryStatus(t printer.Transport) (*Status, error) {
	cmds := NewCommands(t)
	if err := cmds.Invalidate(); err != nil {
		return nil, fmt.Errorf("invalidate: %w", err)
	}
	if err := cmds.Init(); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	if err := cmds.RequestStatus(); err != nil {
		return nil, fmt.Errorf("status request: %w", err)
	}

	frame, err := t.ReadStatus()
	if err != nil {
		return nil, fmt.Errorf("status read: %w", err)
	}
	return ParseStatus(frame)
}

// PrintCanvas exports the canvas for the media currently loaded (per
// the given status) and prints it.
func (s *Session) PrintCanvas(cv *canvas.Canvas, status *Status) error {
	margins := MediaMargins(status.MediaKind, status.MediaWidth)
	if margins.IsZero() {
		return fmt.Errorf("unsupported media: %dmm %s", status.MediaWidth, status.MediaKind)
	}

	lines, err := cv.ExportRaster(margins)
	if err != nil {
		return err
	}

	kind := status.MediaKind
	width := status.MediaWidth
	length := uint8(0)
	info := &PrintInfo{
		Kind:        &kind,
		Width:       &width,
		Length:      &length,
		RasterCount: uint32(len(lines)),
	}
	return s.Print(lines, info)
}

// Print runs the full mandated command sequence for the given raster
// lines, then polls until the device reports completion, a device
// error, or the attempt bound runs out. Lines are transferred in order;
// the device accumulates them positionally.
func (s *Session) Print(lines [][]byte, info *PrintInfo) error {
	if int(info.RasterCount) != len(lines) {
		return fmt.Errorf("print info declares %d raster lines, got %d", info.RasterCount, len(lines))
	}

	slog.Debug("Starting print session", "lines", len(lines), "compress", s.cfg.Compress)

	if err := s.cmds.SwitchMode(ModeRaster); err != nil {
		return fmt.Errorf("switch mode: %w", err)
	}
	if err := s.cmds.SetStatusNotify(true); err != nil {
		return fmt.Errorf("status notify: %w", err)
	}
	if err := s.cmds.SetPrintInfo(info); err != nil {
		return fmt.Errorf("print info: %w", err)
	}
	if err := s.cmds.SetVariousMode(VariousAutoCut); err != nil {
		return fmt.Errorf("various mode: %w", err)
	}
	if err := s.cmds.SetAdvancedMode(AdvancedNoChain); err != nil {
		return fmt.Errorf("advanced mode: %w", err)
	}
	if err := s.cmds.SetMargin(0); err != nil {
		return fmt.Errorf("margin: %w", err)
	}

	compression := CompressionNone
	if s.cfg.Compress {
		compression = CompressionTiff
	}
	if err := s.cmds.SetCompressionMode(compression); err != nil {
		return fmt.Errorf("compression mode: %w", err)
	}

	for i, line := range lines {
		if err := s.transferLine(line); err != nil {
			return fmt.Errorf("raster line %d: %w", i, err)
		}
	}

	if err := s.cmds.PrintAndFeed(); err != nil {
		return fmt.Errorf("print: %w", err)
	}

	return s.poll()
}

func (s *Session) transferLine(line []byte) error {
	if allZero(line) {
		return s.cmds.RasterZero()
	}
	if s.cfg.Compress {
		return s.cmds.RasterTransfer(packbits.Compress(line))
	}
	return s.cmds.RasterTransfer(line)
}

func allZero(line []byte) bool {
	for _, b := range line {
		if b != 0 {
			return false
		}
	}
	return true
}

// poll reads status frames until completion or failure. Read errors
// and short reads count as a missed attempt rather than failing
// outright; only the attempt bound turns them into a timeout.
func (s *Session) poll() error {
	for attempt := 0; attempt < s.cfg.PollAttempts; attempt++ {
		s.sleep(s.cfg.PollInterval)

		frame, err := s.t.ReadStatus()
		if err != nil {
			slog.Debug("Status read failed, continuing to poll", "attempt", attempt, "err", err)
			continue
		}
		if len(frame) != StatusFrameSize {
			slog.Debug("Short status read, continuing to poll", "attempt", attempt, "bytes", len(frame))
			continue
		}

		status, err := ParseStatus(frame)
		if err != nil {
			continue
		}
		if status.Errored() {
			return &DeviceError{Error1: status.Error1, Error2: status.Error2}
		}

		switch status.Type {
		case StatusCompleted:
			slog.Debug("Print completed", "attempts", attempt+1)
			return nil
		case StatusPhaseChange:
			slog.Debug("Phase change", "phase", status.Phase)
		default:
			slog.Debug("Still waiting for completion", "type", status.Type)
		}
	}

	return fmt.Errorf("%w (%d attempts)", ErrTimeout, s.cfg.PollAttempts)
}
