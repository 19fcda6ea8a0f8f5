package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shackle-rs/mzc/internal/diagfmt"
	"github.com/shackle-rs/mzc/internal/driver"
	"github.com/shackle-rs/mzc/internal/observ"
	"github.com/shackle-rs/mzc/internal/passes"
	"github.com/shackle-rs/mzc/internal/project"
)

// commonOptions bundles the flags compile and check share.
type commonOptions struct {
	opts    driver.Options
	format  string
	color   bool
	verbose int
	ui      uiMode
}

// resolveCommon reads the persistent flags and folds in an mzc.toml
// manifest found by climbing from the current directory, if any (§6.2,
// Configuration section): manifest search dirs come first, then any
// --search-dir flags, then the manifest's [stdlib] globals directory if it
// resolves, and an explicit --stdlib-dir/MZN_STDLIB_DIR
// overrides the manifest's [stdlib] section.
func resolveCommon(cmd *cobra.Command) (*commonOptions, error) {
	format, err := cmd.Root().PersistentFlags().GetString("format")
	if err != nil {
		return nil, err
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return nil, err
	}

	verbose, err := cmd.Root().PersistentFlags().GetCount("verbose")
	if err != nil {
		return nil, err
	}

	searchDirs, err := cmd.Root().PersistentFlags().GetStringSlice("search-dir")
	if err != nil {
		return nil, err
	}

	stdlibDir, err := cmd.Root().PersistentFlags().GetString("stdlib-dir")
	if err != nil {
		return nil, err
	}

	noStdlib, err := cmd.Root().PersistentFlags().GetBool("no-stdlib")
	if err != nil {
		return nil, err
	}

	if stdlibDir == "" {
		stdlibDir = os.Getenv(project.EnvStdlibDir)
	}

	globalsSpec := ""

	if manifestPath, ok, err := project.FindManifest("."); err == nil && ok {
		if manifest, err := project.Load(manifestPath); err == nil {
			searchDirs = append(manifest.ResolveSearchDirs(manifestPath), searchDirs...)

			if stdlibDir == "" {
				stdlibDir = manifest.Stdlib.Dir
			}

			globalsSpec = manifest.Stdlib.Globals
		}
	}

	if stdlibDir == "" && !noStdlib {
		if root, err := project.ResolveStdlib(""); err == nil {
			stdlibDir = root
		}
	}

	if globals, ok := project.ResolveGlobals(globalsSpec, stdlibDir); ok {
		searchDirs = append(searchDirs, globals)
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	uiFlag, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return nil, err
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return nil, err
	}

	return &commonOptions{
		opts: driver.Options{
			SearchDirs:   searchDirs,
			StdlibDir:    stdlibDir,
			IgnoreStdlib: noStdlib,
		},
		format:  format,
		color:   useColor,
		verbose: verbose,
		ui:      mode,
	}, nil
}

// runPipeline runs driver.Compile over paths and renders its diagnostics,
// returning the exit code §7 prescribes: 0 if the bag has no errors, 1
// otherwise. A panic inside Compile is caught here and reported as an
// internal compiler error rather than crashing the process (§7 Recovery).
//
// alwaysReport distinguishes `compile` (§6.3: "parse and type-check only;
// exit 0 on success", silent unless something is wrong) from `check`
// (§6.3: "diagnostics-only mode", which always renders its findings, even
// an empty "no diagnostics" report, since reporting is the whole point of
// running it).
func runPipeline(paths []string, common *commonOptions, alwaysReport bool) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "mzc: internal compiler error: %v\n", r)

			code = 2
			err = nil
		}
	}()

	timer := observ.NewTimer()

	var (
		result  *driver.Result
		compErr error
	)

	if common.format == "pretty" && shouldUseTUI(common.ui) {
		result, compErr = compileWithUI("mzc", paths, common.opts, timer)
	} else {
		result, compErr = driver.Compile(paths, common.opts, timer)
	}

	if result == nil {
		return 2, compErr
	}

	if alwaysReport || result.Bag.Len() > 0 {
		switch common.format {
		case "json":
			if jsonErr := diagfmt.JSON(os.Stdout, result.Bag, result.Registry); jsonErr != nil {
				return 2, jsonErr
			}
		default:
			diagfmt.Pretty(os.Stdout, result.Bag, result.Registry, diagfmt.Options{Color: common.color})
		}
	}

	switch {
	case common.verbose >= 3:
		report, err := json.MarshalIndent(timer.Report(), "", "  ")
		if err == nil {
			fmt.Fprintln(os.Stderr, string(report))
		}
	case common.verbose >= 2:
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if compErr != nil {
		var stageErr *passes.StageError
		if errors.As(compErr, &stageErr) {
			// §7 Propagation: the transform pipeline aborts on its first
			// error rather than trying to keep going past a stage it
			// cannot complete; report it alongside the diagnostics
			// already rendered above.
			fmt.Fprintf(os.Stderr, "mzc: %v\n", stageErr)

			return 1, nil
		}

		return 2, compErr
	}

	if result.Bag.HasErrors() {
		return 1, nil
	}

	return 0, nil
}
