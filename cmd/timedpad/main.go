package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	Execute()
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", color.RedString(msg), err)
	os.Exit(1)
}
