package main

import (
	"os"

	"github.com/tcfw/didreg/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
