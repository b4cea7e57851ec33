package main

import (
	"github.com/spf13/cobra"

	"spicy/internal/driver"
)

var formatCmd = &cobra.Command{
	Use:   "format <file.spc>",
	Short: "Print the canonical form of a Spy source file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := resolveOptions(cmd)

		out, parsed, err := driver.Format(args[0], opts.MaxDiagnostics)
		if err != nil {
			failIO(err)
		}
		if parsed.Bag.Len() > 0 {
			printDiagnostics(parsed.Bag, parsed.FileSet, opts)
		}
		if parsed.Bag.HasErrors() {
			exitWith(parsed.Bag)
		}

		w, closeOut, err := openOutput(opts)
		if err != nil {
			failIO(err)
		}
		defer closeOut()
		if _, err := w.Write(out); err != nil {
			failIO(err)
		}
		exitWith(parsed.Bag)
	},
}
