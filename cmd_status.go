package main

import (
	"flag"
	"fmt"

	"tapewriter/printer/ptouch"
)

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	conn := connFlags{}
	conn.register(fs)
	if err := fs.Parse(args); err != nil {
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

	fmt.Printf("Status : %s\n", status.Type)
	fmt.Printf("Phase  : %s\n", status.Phase)
	fmt.Printf("Media  : %dmm %s\n", status.MediaWidth, status.MediaKind)
	fmt.Printf("Tape   : %s on %s\n", status.TextColour, status.TapeColour)
	if status.Errored() {
		fmt.Printf("Errors : %s / %s\n", status.Error1, status.Error2)
	} else {
		fmt.Println("Errors : none")
	}
	return nil
}
