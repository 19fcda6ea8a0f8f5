package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// solveCmd is reserved by §6.3 ("not implemented at the core; reserved"):
// this front end stops at typed, rewritten TIR and has no solver backend to
// hand it to.
var solveCmd = &cobra.Command{
	Use:   "solve <solver> <files…>",
	Short: "Solve a model (reserved; not implemented at the core)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("solve: not implemented — %s has no solver backend wired to its TIR output", cmd.Root().Use)
	},
}
