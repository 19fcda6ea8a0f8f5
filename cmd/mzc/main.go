// Command mzc is the incremental MiniZinc/E-Prime front end: it wires the
// parser, resolver, type checker, and TIR rewrite pipeline (internal/driver)
// to a small cobra CLI surface, matching §6.3's command set.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is stamped at release time via -ldflags; "dev" otherwise.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "mzc",
	Short:   "MiniZinc/E-Prime compiler front end",
	Long:    `mzc resolves, type-checks, and rewrites MiniZinc and E-Prime models into instance-ready TIR.`,
	Version: version,
}

func main() {
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().String("format", "pretty", "diagnostic output format (pretty|json)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase phase-timing detail (-v/-vv/-vvv)")
	rootCmd.PersistentFlags().StringSlice("search-dir", nil, "additional include search directory (repeatable)")
	rootCmd.PersistentFlags().String("stdlib-dir", "", "override standard library directory (MZN_STDLIB_DIR)")
	rootCmd.PersistentFlags().Bool("no-stdlib", false, "do not auto-include the standard library")
	rootCmd.PersistentFlags().String("ui", "auto", "progress display mode (auto|on|off)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(solveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f looks like an interactive terminal, for
// --color=auto.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func exitCodeError() error {
	return fmt.Errorf("")
}
