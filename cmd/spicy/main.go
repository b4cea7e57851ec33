package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"spicy/internal/version"
)

// Exit codes: 0 успех, 1 диагностики уровня error, 2 ошибка ввода-вывода,
// 3 внутренняя ошибка.
const (
	exitOK       = 0
	exitDiag     = 1
	exitIO       = 2
	exitInternal = 3
)

var rootCmd = &cobra.Command{
	Use:   "spicy [file.spc]",
	Short: "Spy language compiler and runtime",
	Long:  `Spicy compiles and executes Spy programs (.spc): a Python-like surface with interface/abstract/final/static class modifiers`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		checkOnly, _ := cmd.Flags().GetBool("check-only")
		emit, _ := cmd.Flags().GetString("emit")
		if checkOnly || emit == "check" {
			runCheckOne(cmd, args[0])
			return nil
		}
		runExecution(cmd, args[0])
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			os.Stderr.WriteString("spicy: internal error\n")
			os.Exit(exitInternal)
		}
	}()

	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "show note frames on diagnostics")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to collect")
	rootCmd.PersistentFlags().StringP("output", "o", "", "write dump output to file instead of stdout")
	rootCmd.Flags().Bool("check-only", false, "run through the modifier checker without executing")
	rootCmd.Flags().String("emit", "run", "what to do with the checked program (run|check)")

	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("spicy: " + err.Error() + "\n")
		os.Exit(exitInternal)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
