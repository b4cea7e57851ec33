package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"spicy/internal/diag"
	"spicy/internal/diagfmt"
	"spicy/internal/project"
	"spicy/internal/source"
)

// cliOptions — флаги команды, слитые с дефолтами spicy.toml.
type cliOptions struct {
	Color          bool
	Verbose        bool
	MaxDiagnostics int
	Output         string
}

// resolveOptions читает флаги и манифест; флаги побеждают.
func resolveOptions(cmd *cobra.Command) cliOptions {
	manifest, _, err := project.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "spicy: %v\n", err)
		manifest = project.Defaults()
	}

	colorMode, _ := cmd.Flags().GetString("color")
	if colorMode == "" {
		colorMode = manifest.Diagnostics.Color
	}
	colorize := false
	switch colorMode {
	case "on":
		colorize = true
	case "off":
		colorize = false
	default: // auto
		colorize = isTerminal(os.Stderr)
	}

	maxDiagnostics, _ := cmd.Flags().GetInt("max-diagnostics")
	if maxDiagnostics <= 0 {
		maxDiagnostics = manifest.Diagnostics.Max
	}
	if maxDiagnostics > 1000 {
		maxDiagnostics = 1000
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	output, _ := cmd.Flags().GetString("output")

	return cliOptions{
		Color:          colorize,
		Verbose:        verbose,
		MaxDiagnostics: maxDiagnostics,
		Output:         output,
	}
}

// openOutput открывает -o файл либо возвращает stdout.
func openOutput(opts cliOptions) (io.Writer, func(), error) {
	if opts.Output == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(opts.Output)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// printDiagnostics — единый рендер диагностик в stderr.
func printDiagnostics(bag *diag.Bag, fs *source.FileSet, opts cliOptions) {
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     opts.Color,
		ShowNotes: opts.Verbose,
	})
}

// exitWith завершает процесс по содержимому bag.
func exitWith(bag *diag.Bag) {
	if bag != nil && bag.HasErrors() {
		os.Exit(exitDiag)
	}
	os.Exit(exitOK)
}

// failIO — выход с кодом 2 по ошибке ввода-вывода.
func failIO(err error) {
	fmt.Fprintf(os.Stderr, "spicy: %v\n", err)
	os.Exit(exitIO)
}
