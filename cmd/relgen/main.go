// Package main is the entry point for the relgen CLI.
package main

import (
	"os"

	"github.com/syssam/relgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
