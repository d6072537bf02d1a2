// Package main provides the entry point for the seoscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for seoscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seoscan",
		Short: "SEO analysis pipeline for your domain",
		Long: `seoscan runs a multi-stage SEO analysis for a domain: keyword research,
SERP gap analysis against competitors, backlink gap discovery, content
clustering with a prioritized calendar, internal link recommendations,
and a technical site audit.

The provider API key is read from the SEOSCAN_API_KEY environment
variable.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
