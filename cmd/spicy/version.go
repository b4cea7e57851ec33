package main

import (
	"os"

	"github.com/spf13/cobra"

	"spicy/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the spicy version",
	Run: func(cmd *cobra.Command, args []string) {
		version.Banner(os.Stdout, isTerminal(os.Stdout))
	},
}
