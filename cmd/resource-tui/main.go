package main

import (
	"fmt"
	"os"

	"github.com/handiism/resource-pipeline/internal/tui"
)

func main() {
	if err := tui.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
