// Package cmd implements the CLI commands for Letterpress using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "letterpress",
	Short: "Letterpress — render dictated letters into mail-ready PDFs",
	Long: `Letterpress takes a letter request (body text, recipient, sender, service
tier, optional signature, audio recording, and branding) and renders it into
a print-ready PDF for the mail fulfillment pipeline.

Usage:
  letterpress render <request.json> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
