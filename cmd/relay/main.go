package main

import (
	"os"

	"github.com/tiertech/blueprint/internal/relay/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
