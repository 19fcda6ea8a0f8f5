package project

import (
	"os"
	"path/filepath"
	"sort"
)

// modelExtensions are the source-file extensions §6.1 names; anything else
// found while walking a directory argument is ignored.
var modelExtensions = map[string]bool{
	".mzn":    true,
	".eprime": true,
	".dzn":    true,
	".json":   true,
}

// Discover expands a mixed list of file and directory command-line
// arguments into a flat, sorted list of model/data file paths, recursing
// into directories and filtering by the extensions §6.1 recognises.
// Grounded on the teacher's cmd/surge/project_files.go directory-walk
// helper.
func Discover(args []string) ([]string, error) {
	seen := map[string]bool{}

	var out []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !seen[arg] {
				seen[arg] = true

				out = append(out, arg)
			}

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			if !modelExtensions[filepath.Ext(path)] {
				return nil
			}

			if !seen[path] {
				seen[path] = true

				out = append(out, path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(out)

	return out, nil
}
