package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed shape of an optional mzc.toml project file
// (SPEC_FULL's Configuration section), grounded on the teacher's
// internal/project/modules.go decode-with-toml.Meta pattern.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Search  SearchSection  `toml:"search"`
	Stdlib  StdlibSection  `toml:"stdlib"`
}

// PackageSection names the project, purely informational; the CLI parses
// it but does not read the name.
type PackageSection struct {
	Name string `toml:"name"`
}

// SearchSection lists include search directories, consulted in listed
// order before the globals directory and the standard library (§6.2).
type SearchSection struct {
	Dirs []string `toml:"dirs"`
}

// StdlibSection overrides standard library discovery (§6.2 priority 1) and
// names an optional globals directory, placed on the include search path
// between user search directories and the standard library.
type StdlibSection struct {
	Dir     string `toml:"dir"`
	Globals string `toml:"globals"`
}

// Load parses path as an mzc.toml manifest. Every section is optional; a
// manifest with no sections at all is valid and equivalent to no manifest.
func Load(path string) (*Manifest, error) {
	var m Manifest

	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: parsing manifest: %w", path, err)
	}

	return &m, nil
}

// ResolveSearchDirs returns the manifest's search directories resolved
// relative to the manifest's own directory (manifestPath's parent).
func (m *Manifest) ResolveSearchDirs(manifestPath string) []string {
	if m == nil {
		return nil
	}

	root := filepath.Dir(manifestPath)
	dirs := make([]string, 0, len(m.Search.Dirs))

	for _, d := range m.Search.Dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}

		if filepath.IsAbs(d) {
			dirs = append(dirs, d)
		} else {
			dirs = append(dirs, filepath.Join(root, filepath.FromSlash(d)))
		}
	}

	return dirs
}
