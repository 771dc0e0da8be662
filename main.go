package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		exitErr(errors.New("no command given"))
	}

	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))
	args := os.Args[2:]

	switch cmd {
	case "status":
		if err := runStatus(args); err != nil {
			exitErr(err)
		}
	case "info":
		if err := runInfo(args); err != nil {
			exitErr(err)
		}
	case "preview":
		if err := runPreview(args); err != nil {
			exitErr(err)
		}
	case "print":
		if err := runPrint(args); err != nil {
			exitErr(err)
		}
	case "template":
		if err := runTemplate(args); err != nil {
			exitErr(err)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		exitErr(fmt.Errorf("unknown command: %s", cmd))
	}
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
