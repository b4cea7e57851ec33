package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spicy/internal/diagfmt"
	"spicy/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.spc>",
	Short: "Dump the AST",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := resolveOptions(cmd)
		formatFlag, _ := cmd.Flags().GetString("format")
		format, ok := diagfmt.ParseDumpFormat(formatFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "spicy: unknown format %q\n", formatFlag)
			os.Exit(exitInternal)
		}

		result, err := driver.Parse(args[0], opts.MaxDiagnostics)
		if err != nil {
			failIO(err)
		}

		out, closeOut, err := openOutput(opts)
		if err != nil {
			failIO(err)
		}
		defer closeOut()

		tree := diagfmt.DumpFile(result.Builder, result.FileID)
		switch format {
		case diagfmt.DumpJSON:
			if err := diagfmt.JSON(out, tree); err != nil {
				failIO(err)
			}
		case diagfmt.DumpMsgpack:
			if err := diagfmt.Msgpack(out, tree); err != nil {
				failIO(err)
			}
		default:
			diagfmt.TreeText(out, tree, 0)
		}

		if result.Bag.Len() > 0 {
			printDiagnostics(result.Bag, result.FileSet, opts)
		}
		exitWith(result.Bag)
	},
}

func init() {
	parseCmd.Flags().String("format", "text", "dump format (text|json|msgpack)")
}
