package main

import (
	"github.com/spf13/cobra"

	"github.com/shackle-rs/mzc/internal/project"
)

var compileCmd = &cobra.Command{
	Use:   "compile <files…>",
	Short: "Resolve, type-check, and rewrite models into TIR (§6.3)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	common, err := resolveCommon(cmd)
	if err != nil {
		return err
	}

	paths, err := project.Discover(args)
	if err != nil {
		return err
	}

	code, err := runPipeline(paths, common, false)
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
