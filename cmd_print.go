package main

import (
	"flag"
	"fmt"

	"tapewriter/printer/ptouch"
	"tapewriter/render"
)

func runPrint(args []string) error {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	conn := connFlags{}
	conn.register(fs)
	label := labelFlags{}
	label.register(fs)
	compress := fs.Bool("compress", false, "compress raster transfers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ops, err := label.ops()
	if err != nil {
		return err
	}

	t, err := conn.open()
	if err != nil {
		return err
	}
	defer t.Close()

	status, err := ptouch.QueryStatus(t)
	if err != nil {
		return err
	}
	if status.Errored() {
		return fmt.Errorf("device reports errors: %s / %s", status.Error1, status.Error2)
	}

	margins := ptouch.MediaMargins(status.MediaKind, status.MediaWidth)
	if margins.IsZero() {
		return fmt.Errorf("unsupported media: %dmm %s", status.MediaWidth, status.MediaKind)
	}

	cv, err := render.Render(render.Config{Height: margins.Printable}, ops)
	if err != nil {
		return err
	}

	width, _ := cv.Size()
	fmt.Printf("Media : %dmm %s\n", status.MediaWidth, status.MediaKind)
	fmt.Printf("Label : %d columns, %d printable dots\n", width, margins.Printable)

	session := ptouch.NewSession(t, ptouch.SessionConfig{Compress: *compress})
	if err := session.PrintCanvas(cv, status); err != nil {
		return err
	}
	fmt.Println("Printed.")
	return nil
}
