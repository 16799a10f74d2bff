// Package main is the entrypoint for the PDF Sentry CLI.
// It delegates all command handling to the cmd package.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/toyinlola/pdfsentry/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrThresholdExceeded) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
