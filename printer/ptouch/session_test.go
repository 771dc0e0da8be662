package ptouch

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"tapewriter/canvas"
	"tapewriter/packbits"
)

func testSession(t *testing.T, tr *fakeTransport, cfg SessionConfig) *Session {
	t.Helper()
	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Millisecond
	}
	s := NewSession(tr, cfg)
	s.sleep = func(time.Duration) {} // no real delays in tests
	return s
}

func completedFrame(int) ([]byte, error) {
	return statusFrame(func(f []byte) {
		f[18] = byte(StatusCompleted)
	}), nil
}

func testPrintInfo(lines int) *PrintInfo {
	kind := MediaLaminated
	width := uint8(18)
	length := uint8(0)
	return &PrintInfo{
		Kind:        &kind,
		Width:       &width,
		Length:      &length,
		RasterCount: uint32(lines),
	}
}

func TestSessionCommandSequence(t *testing.T) {
	blank := make([]byte, canvas.RasterLineSize)
	inked := make([]byte, canvas.RasterLineSize)
	inked[1] = 0x80

	tr := &fakeTransport{onRead: completedFrame}
	s := testSession(t, tr, SessionConfig{})

	if err := s.Print([][]byte{blank, inked}, testPrintInfo(2)); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	expected := [][]byte{
		{0x1B, 0x69, 0x61, 0x01},       // raster mode
		{0x1B, 0x69, 0x21, 0x00},       // status notify on
		nil,                            // print info, checked below
		{0x1B, 0x69, 0x4D, 0x40},       // auto-cut
		{0x1B, 0x69, 0x4B, 0x08},       // no-chain
		{0x1B, 0x69, 0x64, 0x00, 0x00}, // zero margin
		{0x4D, 0x00},                   // no compression
		{0x5A},                         // blank line shorthand
		append([]byte{0x47, 0x10, 0x00}, inked...),
		{0x1A}, // print and feed
	}

	if len(tr.writes) != len(expected) {
		t.Fatalf("session wrote %d frames, expected %d", len(tr.writes), len(expected))
	}
	for i, frame := range expected {
		if frame == nil {
			continue
		}
		if !bytes.Equal(tr.writes[i], frame) {
			t.Errorf("frame %d = %x, expected %x", i, tr.writes[i], frame)
		}
	}

	info := tr.writes[2]
	if !bytes.Equal(info[:3], []byte{0x1B, 0x69, 0x7A}) {
		t.Errorf("frame 2 is not a print-info command: %x", info)
	}
	if info[7] != 2 || info[8] != 0 || info[9] != 0 || info[10] != 0 {
		t.Errorf("print info raster count bytes = %x, expected 2", info[7:11])
	}
}

func TestSessionCompressesLines(t *testing.T) {
	inked := make([]byte, canvas.RasterLineSize)
	inked[3] = 0xFF
	inked[4] = 0xFF

	tr := &fakeTransport{onRead: completedFrame}
	s := testSession(t, tr, SessionConfig{Compress: true})

	if err := s.Print([][]byte{inked}, testPrintInfo(1)); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	var modeFrame, rasterFrame []byte
	for _, frame := range tr.writes {
		switch frame[0] {
		case 0x4D:
			modeFrame = frame
		case 0x47:
			rasterFrame = frame
		}
	}

	if !bytes.Equal(modeFrame, []byte{0x4D, 0x02}) {
		t.Errorf("compression select frame = %x, expected 4D02", modeFrame)
	}

	payload := packbits.Compress(inked)
	expected := append([]byte{0x47, byte(len(payload)), 0x00}, payload...)
	if !bytes.Equal(rasterFrame, expected) {
		t.Errorf("raster frame = %x, expected %x", rasterFrame, expected)
	}
}

// A device error on the first poll must abort immediately, with no
// further polling attempts.
func TestSessionDeviceError(t *testing.T) {
	inked := make([]byte, canvas.RasterLineSize)
	inked[0] = 0x01

	tr := &fakeTransport{
		onRead: func(int) ([]byte, error) {
			return statusFrame(func(f []byte) {
				f[8] = byte(Err1NoMedia)
				f[18] = byte(StatusError)
			}), nil
		},
	}
	s := testSession(t, tr, SessionConfig{})

	err := s.Print([][]byte{inked}, testPrintInfo(1))

	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		t.Fatalf("got %v, expected DeviceError", err)
	}
	if devErr.Error1 != Err1NoMedia {
		t.Errorf("Error1 = %s, expected no media", devErr.Error1)
	}
	if tr.reads != 1 {
		t.Errorf("session polled %d times after a device error, expected 1", tr.reads)
	}
}

func TestSessionPollTimeout(t *testing.T) {
	inked := make([]byte, canvas.RasterLineSize)
	inked[0] = 0x01

	var slept int
	tr := &fakeTransport{
		// the device acknowledges but never completes
		onRead: func(int) ([]byte, error) {
			return statusFrame(nil), nil
		},
	}
	s := testSession(t, tr, SessionConfig{PollAttempts: 4})
	s.sleep = func(time.Duration) { slept++ }

	err := s.Print([][]byte{inked}, testPrintInfo(1))
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("got %v, expected ErrTimeout", err)
	}
	if tr.reads != 4 {
		t.Errorf("session polled %d times, expected 4", tr.reads)
	}
	if slept != 4 {
		t.Errorf("session slept %d times, expected 4", slept)
	}
}

// Short reads and read errors are transient poll misses, not failures.
func TestSessionToleratesPollMisses(t *testing.T) {
	inked := make([]byte, canvas.RasterLineSize)
	inked[0] = 0x01

	tr := &fakeTransport{
		onRead: func(n int) ([]byte, error) {
			switch n {
			case 1:
				return nil, errors.New("interrupted")
			case 2:
				return make([]byte, 5), nil // short read
			default:
				return completedFrame(n)
			}
		},
	}
	s := testSession(t, tr, SessionConfig{})

	if err := s.Print([][]byte{inked}, testPrintInfo(1)); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if tr.reads != 3 {
		t.Errorf("session polled %d times, expected 3", tr.reads)
	}
}

// Phase-change frames are informational; polling continues past them.
func TestSessionPollSkipsPhaseChange(t *testing.T) {
	inked := make([]byte, canvas.RasterLineSize)
	inked[0] = 0x01

	tr := &fakeTransport{
		onRead: func(n int) ([]byte, error) {
			if n == 1 {
				return statusFrame(func(f []byte) {
					f[18] = byte(StatusPhaseChange)
					f[20] = byte(PhasePrinting)
				}), nil
			}
			return completedFrame(n)
		},
	}
	s := testSession(t, tr, SessionConfig{})

	if err := s.Print([][]byte{inked}, testPrintInfo(1)); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if tr.reads != 2 {
		t.Errorf("session polled %d times, expected 2", tr.reads)
	}
}

func TestSessionRejectsRasterCountMismatch(t *testing.T) {
	inked := make([]byte, canvas.RasterLineSize)

	tr := &fakeTransport{}
	s := testSession(t, tr, SessionConfig{})

	if err := s.Print([][]byte{inked}, testPrintInfo(2)); err == nil {
		t.Fatal("mismatched raster count accepted")
	}
	if len(tr.writes) != 0 {
		t.Errorf("session wrote %d frames before validation, expected 0", len(tr.writes))
	}
}

func TestSessionPrintCanvas(t *testing.T) {
	cv := canvas.New(112, 0)
	for x := 0; x < 4; x++ {
		if err := cv.Set(x, x, true); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	tr := &fakeTransport{onRead: completedFrame}
	s := testSession(t, tr, SessionConfig{})

	status, err := ParseStatus(statusFrame(func(f []byte) {
		f[10] = 18
		f[11] = byte(MediaLaminated)
	}))
	if err != nil {
		t.Fatalf("ParseStatus failed: %v", err)
	}

	if err := s.PrintCanvas(cv, status); err != nil {
		t.Fatalf("PrintCanvas failed: %v", err)
	}

	var rasterFrames int
	for _, frame := range tr.writes {
		if frame[0] == 0x47 {
			rasterFrames++
		}
	}
	if rasterFrames != 4 {
		t.Errorf("transferred %d raster lines, expected 4", rasterFrames)
	}
}

func TestSessionPrintCanvasRejectsUnknownMedia(t *testing.T) {
	cv := canvas.New(112, 4)

	tr := &fakeTransport{}
	s := testSession(t, tr, SessionConfig{})

	status, err := ParseStatus(statusFrame(nil)) // no media loaded
	if err != nil {
		t.Fatalf("ParseStatus failed: %v", err)
	}

	if err := s.PrintCanvas(cv, status); err == nil {
		t.Fatal("unknown media accepted")
	}
	if len(tr.writes) != 0 {
		t.Errorf("session wrote %d frames for unknown media, expected 0", len(tr.writes))
	}
}

func TestQueryStatus(t *testing.T) {
	tr := &fakeTransport{
		onRead: func(int) ([]byte, error) {
			return statusFrame(func(f []byte) {
				f[10] = 12
				f[11] = byte(MediaLaminated)
				f[18] = byte(StatusReply)
			}), nil
		},
	}

	s, err := QueryStatus(tr)
	if err != nil {
		t.Fatalf("QueryStatus failed: %v", err)
	}
	if s.MediaWidth != 12 || s.MediaKind != MediaLaminated {
		t.Errorf("decoded %s, expected 12mm laminated", s)
	}

	// invalidate, init, status request, in that order
	if len(tr.writes) != 3 {
		t.Fatalf("QueryStatus wrote %d frames, expected 3", len(tr.writes))
	}
	if len(tr.writes[0]) != 100 {
		t.Errorf("first frame is %d bytes, expected 100-byte invalidate", len(tr.writes[0]))
	}
	if !bytes.Equal(tr.writes[1], []byte{0x1B, 0x40}) {
		t.Errorf("second frame = %x, expected init", tr.writes[1])
	}
	if !bytes.Equal(tr.writes[2], []byte{0x1B, 0x69, 0x53}) {
		t.Errorf("third frame = %x, expected status request", tr.writes[2])
	}
}
