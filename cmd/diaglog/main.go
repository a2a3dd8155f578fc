package main

import (
	"os"

	"github.com/psukit/diaglog/internal/cmd/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
