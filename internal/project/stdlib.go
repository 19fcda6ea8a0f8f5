package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrStdlibNotFound is returned when none of §6.2's three discovery steps
// resolve a standard library root.
var ErrStdlibNotFound = errors.New("standard library not found")

// stdlibMarker is the file whose presence confirms a candidate directory is
// really a MiniZinc standard library share root.
const stdlibMarker = "std/stdlib.mzn"

// EnvStdlibDir is the environment variable override named by §6.2.
const EnvStdlibDir = "MZN_STDLIB_DIR"

// ResolveStdlib implements §6.2's standard library discovery priority
// order:
//  1. override (an explicit `stdlib_directory` input, or a non-empty
//     MZN_STDLIB_DIR passed in by the caller)
//  2. share/minizinc relative to the current executable, climbing parent
//     directories until share/minizinc/std/stdlib.mzn exists; failing that,
//     the same climb from the current directory
//  3. failure
//
// Grounded on the teacher's internal/driver/stdlib.go detectStdlibRoot
// climb, adapted to this spec's exact two-step priority order.
func ResolveStdlib(override string) (string, error) {
	if override != "" {
		if hasStdlibMarker(override) {
			return override, nil
		}

		return "", ErrStdlibNotFound
	}

	exe, err := os.Executable()
	if err == nil {
		if root := climbForStdlib(filepath.Dir(exe)); root != "" {
			return root, nil
		}
	}

	if root := climbForStdlib("."); root != "" {
		return root, nil
	}

	return "", ErrStdlibNotFound
}

// climbForStdlib walks up from start looking for share/minizinc/std/stdlib.mzn.
func climbForStdlib(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, "share", "minizinc")
		if hasStdlibMarker(candidate) {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}

		dir = parent
	}
}

func hasStdlibMarker(root string) bool {
	if root == "" {
		return false
	}

	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(stdlibMarker)))

	return err == nil && !info.IsDir()
}

// ResolveGlobals resolves an optional globals directory spec: an absolute
// path, a path relative to cwd, or a name resolved inside the stdlib share
// directory (§6.2's "Globals directory" paragraph).
func ResolveGlobals(spec, stdlibRoot string) (string, bool) {
	if spec == "" {
		return "", false
	}

	if filepath.IsAbs(spec) {
		if info, err := os.Stat(spec); err == nil && info.IsDir() {
			return spec, true
		}

		return "", false
	}

	if cwdRel, err := filepath.Abs(spec); err == nil {
		if info, err := os.Stat(cwdRel); err == nil && info.IsDir() {
			return cwdRel, true
		}
	}

	if stdlibRoot != "" {
		candidate := filepath.Join(stdlibRoot, filepath.FromSlash(spec))
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
	}

	return "", false
}
