package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tapewriter/printer/ptouch"
	"tapewriter/render"
	"tapewriter/template"
)

// connFlags are shared by every command that talks to a device.
type connFlags struct {
	model   string
	index   int
	timeout time.Duration
	verbose bool
}

func (cf *connFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&cf.model, "model", "pt-p750w", "device model (pt-e550w, pt-p750w, pt-p710bt)")
	fs.IntVar(&cf.index, "index", 0, "device index when several matching devices are connected")
	fs.DurationVar(&cf.timeout, "timeout", ptouch.DefaultTimeout, "bulk transfer timeout")
	fs.BoolVar(&cf.verbose, "v", false, "enable debug logging")
}

func (cf *connFlags) open() (*ptouch.USBTransport, error) {
	if cf.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	model, ok := ptouch.ModelByName(cf.model)
	if !ok {
		return nil, fmt.Errorf("unknown model %q", cf.model)
	}
	return ptouch.OpenUSB(ptouch.Filter{Model: model, Index: cf.index}, cf.timeout)
}

// labelFlags select the label content, either from a stored template, a
// template file, or directly from the command line.
type labelFlags struct {
	template string
	file     string
	text     string
	font     string
	fontFile string
	size     float64
	qr       string
	barcode  string
	image    string
	pad      int
	db       string
}

func (lf *labelFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&lf.template, "template", "", "name of a stored template to render")
	fs.StringVar(&lf.file, "file", "", "path to a template file to render")
	fs.StringVar(&lf.text, "text", "", "text to render (lines separated by \\n)")
	fs.StringVar(&lf.font, "font", "", "built-in font name (goregular, gomono, 7x13, 8x16, 8x16-bold)")
	fs.StringVar(&lf.fontFile, "font-file", "", "path to a TTF or OTF font file")
	fs.Float64Var(&lf.size, "size", 0, "font size in dots (0 picks a default)")
	fs.StringVar(&lf.qr, "qr", "", "content to render as a QR code")
	fs.StringVar(&lf.barcode, "barcode", "", "content to render as a Code 128 barcode")
	fs.StringVar(&lf.image, "image", "", "path to a PNG or JPEG image to render")
	fs.IntVar(&lf.pad, "pad", 0, "blank columns to add at both ends of the label")
	fs.StringVar(&lf.db, "db", defaultDbPath, "path to the template database")
}

func (lf *labelFlags) ops() ([]render.Op, error) {
	var ops []render.Op
	var err error

	switch {
	case lf.template != "":
		ops, err = lf.storedOps()
	case lf.file != "":
		ops, err = template.LoadFile(lf.file)
	default:
		ops = lf.directOps()
	}
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("nothing to render, give -text, -qr, -barcode, -image, -template or -file")
	}

	if lf.pad > 0 {
		padded := []render.Op{&render.Pad{Columns: lf.pad}}
		padded = append(padded, ops...)
		ops = append(padded, &render.Pad{Columns: lf.pad})
	}
	return ops, nil
}

func (lf *labelFlags) storedOps() ([]render.Op, error) {
	repo, err := openRepository(lf.db)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	rec, err := repo.GetByName(lf.template)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("no stored template named %q", lf.template)
	}
	return template.Parse(rec.Source)
}

func (lf *labelFlags) directOps() []render.Op {
	var ops []render.Op
	if lf.text != "" {
		ops = append(ops, &render.Text{
			Value: strings.ReplaceAll(lf.text, `\n`, "\n"),
			Font:  lf.font,
			File:  lf.fontFile,
			Size:  lf.size,
		})
	}
	if lf.qr != "" {
		ops = append(ops, &render.QR{Value: lf.qr})
	}
	if lf.barcode != "" {
		ops = append(ops, &render.Barcode{Value: lf.barcode})
	}
	if lf.image != "" {
		ops = append(ops, &render.Image{Path: lf.image})
	}
	return ops
}
