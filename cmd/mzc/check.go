package main

import (
	"github.com/spf13/cobra"

	"github.com/shackle-rs/mzc/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check <files…>",
	Short: "Diagnostics-only mode: report syntax, scope, and type errors (§6.3)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	common, err := resolveCommon(cmd)
	if err != nil {
		return err
	}

	paths, err := project.Discover(args)
	if err != nil {
		return err
	}

	code, err := runPipeline(paths, common, true)
	if err != nil {
		return err
	}

	if code != 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		return exitCodeError()
	}

	return nil
}
