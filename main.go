package main

import (
	"os"

	"github.com/AbdouB/psyki/internal/cli"
)

var Version = "dev"

func main() {
	cli.Version = Version
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
