package main

import (
	"os"

	"github.com/vidsponential/website/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
