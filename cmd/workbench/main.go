package main

import (
	"os"

	"github.com/aristath/workbench/cmd/workbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
