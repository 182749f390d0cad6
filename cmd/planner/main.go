package main

import (
	"os"

	"github.com/tiertech/blueprint/internal/planner/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
