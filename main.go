package main

import (
	"os"

	"github.com/vertiport/evtol-sim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
