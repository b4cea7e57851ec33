package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"spicy/internal/driver"
	"spicy/internal/pipeline"
	"spicy/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.spc|dir>",
	Short: "Run diagnostics without executing",
	Long:  `Tokenize, parse and run the modifier checker over a file or every .spc file under a directory`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		noUI, _ := cmd.Flags().GetBool("no-ui")

		files, err := driver.DiscoverFiles(args[0])
		if err != nil {
			failIO(err)
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "spicy: no .spc files found")
			os.Exit(exitIO)
		}
		if len(files) == 1 {
			runCheckOne(cmd, files[0])
			return
		}
		runCheckMany(cmd, files, noUI)
	},
}

func init() {
	checkCmd.Flags().Bool("no-ui", false, "disable the progress UI for directory checks")
}

func runCheckOne(cmd *cobra.Command, path string) {
	opts := resolveOptions(cmd)

	result, err := driver.Check(path, opts.MaxDiagnostics)
	if err != nil {
		failIO(err)
	}
	if result.Bag.Len() > 0 {
		printDiagnostics(result.Bag, result.FileSet, opts)
	}
	exitWith(result.Bag)
}

func runCheckMany(cmd *cobra.Command, files []string, noUI bool) {
	opts := resolveOptions(cmd)
	useUI := !noUI && isTerminal(os.Stdout)

	var events chan pipeline.Event
	if useUI {
		events = make(chan pipeline.Event, len(files)*2)
	}

	type manyResult struct {
		reports []driver.FileReport
		err     error
	}
	resultCh := make(chan manyResult, 1)
	go func() {
		reports, err := driver.CheckMany(context.Background(), files, opts.MaxDiagnostics, events)
		resultCh <- manyResult{reports: reports, err: err}
	}()

	if useUI {
		model := ui.NewProgressModel(fmt.Sprintf("checking %d files", len(files)), files, events)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "spicy: %v\n", err)
		}
	}

	outcome := <-resultCh
	if outcome.err != nil {
		failIO(outcome.err)
	}

	hadErrors := false
	hadIO := false
	for _, report := range outcome.reports {
		if report.Err != nil {
			fmt.Fprintf(os.Stderr, "spicy: %s: %v\n", report.Path, report.Err)
			hadIO = true
			continue
		}
		if report.Result.Bag.Len() > 0 {
			printDiagnostics(report.Result.Bag, report.Result.FileSet, opts)
		}
		if report.Result.Bag.HasErrors() {
			hadErrors = true
		}
	}

	summary(outcome.reports)
	switch {
	case hadErrors:
		os.Exit(exitDiag)
	case hadIO:
		os.Exit(exitIO)
	default:
		os.Exit(exitOK)
	}
}

func summary(reports []driver.FileReport) {
	clean, dirty := 0, 0
	for _, report := range reports {
		switch {
		case report.Err != nil:
			dirty++
		case report.Result.Bag.HasErrors():
			dirty++
		default:
			clean++
		}
	}
	fmt.Fprintf(os.Stderr, "checked %d files: %d ok, %d with errors\n", len(reports), clean, dirty)
}
