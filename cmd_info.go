package main

import (
	"flag"
	"fmt"
)

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
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

	info, err := t.Info()
	if err != nil {
		return err
	}
	fmt.Printf("Manufacturer : %s\n", info.Manufacturer)
	fmt.Printf("Product      : %s\n", info.Product)
	fmt.Printf("Serial       : %s\n", info.Serial)
	return nil
}
