package main

import (
	"os"

	"github.com/spf13/cobra"

	"spicy/internal/driver"
)

var runCmd = &cobra.Command{
	Use:   "run <file.spc>",
	Short: "Compile and execute a Spy program",
	Long:  `Compile a Spy source file, run the modifier checker, and execute it with the tree-walking backend`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExecution(cmd, args[0])
	},
}

func runExecution(cmd *cobra.Command, path string) {
	opts := resolveOptions(cmd)

	result, err := driver.Run(path, opts.MaxDiagnostics, os.Stdout)
	if err != nil {
		failIO(err)
	}

	if result.Bag.Len() > 0 {
		printDiagnostics(result.Bag, result.FileSet, opts)
	}
	exitWith(result.Bag)
}
