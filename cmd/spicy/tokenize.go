package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spicy/internal/diagfmt"
	"spicy/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file.spc>",
	Short: "Dump the token stream",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := resolveOptions(cmd)
		formatFlag, _ := cmd.Flags().GetString("format")
		format, ok := diagfmt.ParseDumpFormat(formatFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "spicy: unknown format %q\n", formatFlag)
			os.Exit(exitInternal)
		}

		result, err := driver.Tokenize(args[0], opts.MaxDiagnostics)
		if err != nil {
			failIO(err)
		}

		out, closeOut, err := openOutput(opts)
		if err != nil {
			failIO(err)
		}
		defer closeOut()

		switch format {
		case diagfmt.DumpJSON:
			if err := diagfmt.JSON(out, diagfmt.DumpTokens(result.Tokens, result.FileSet)); err != nil {
				failIO(err)
			}
		case diagfmt.DumpMsgpack:
			if err := diagfmt.Msgpack(out, diagfmt.DumpTokens(result.Tokens, result.FileSet)); err != nil {
				failIO(err)
			}
		default:
			diagfmt.TokensText(out, result.Tokens, result.FileSet)
		}

		if result.Bag.Len() > 0 {
			printDiagnostics(result.Bag, result.FileSet, opts)
		}
		exitWith(result.Bag)
	},
}

func init() {
	tokenizeCmd.Flags().String("format", "text", "dump format (text|json|msgpack)")
}
