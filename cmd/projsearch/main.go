package main

import (
	"os"

	"github.com/agenthands/projectsearch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
