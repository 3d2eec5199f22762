package main

import (
	"os"

	"github.com/anhpng/luyende/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
