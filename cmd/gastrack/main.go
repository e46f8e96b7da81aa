package main

import (
	"os"

	"github.com/gastrack-dev/gastrack/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
