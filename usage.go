package main

import "fmt"

func printUsage() {
	fmt.Print(`tapewriter - Brother P-touch label printer tool

Usage:
  tapewriter <command> [flags]

Commands:
  status     query the connected printer's media and error state
  info       show the connected printer's USB descriptor strings
  preview    render a label to a PNG without printing
  print      render a label and print it
  template   manage stored label templates (add, list, show, delete)
  help       show this message

Run a command with -h for its flags, for example:
  tapewriter print -h
`)
}
