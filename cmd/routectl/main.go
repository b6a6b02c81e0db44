// Package main is the entry point for the routectl CLI.
package main

import (
	"os"

	"github.com/fashionforward/psp-router/cmd/routectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
