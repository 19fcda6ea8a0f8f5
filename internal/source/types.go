// Package source provides the file registry, byte-span representation, and
// string interning shared by every later compiler stage.
package source

type (
	// FileID uniquely identifies a source file within a Registry.
	FileID uint32
	// FileFlags encodes metadata about how a file entered the registry.
	FileFlags uint8
)

// NoFileID marks the absence of a file (used by introduced/synthetic spans).
const NoFileID FileID = 0

const (
	// FileVirtual marks a file added from memory rather than the real
	// filesystem (editor overlay, inline model string, test fixture).
	FileVirtual FileFlags = 1 << iota
	// FileStdlib marks a file pulled in via auto-include from the standard
	// library share directory.
	FileStdlib
)

// Dialect selects the surface grammar used to lower a file's CST to HIR.
type Dialect uint8

const (
	// DialectMiniZinc is the primary `.mzn` surface syntax.
	DialectMiniZinc Dialect = iota
	// DialectEPrime is the secondary `.eprime` surface syntax.
	DialectEPrime
	// DialectDataZinc is a `.dzn` data literal file (no HIR, only values).
	DialectDataZinc
	// DialectJSON is a `.json` data literal file.
	DialectJSON
)

// DialectOf infers a dialect from a file name's extension. Unknown
// extensions default to DialectMiniZinc, matching the driver's "assume a
// model file unless told otherwise" behaviour.
func DialectOf(filename string) Dialect {
	switch ext(filename) {
	case ".eprime":
		return DialectEPrime
	case ".dzn":
		return DialectDataZinc
	case ".json":
		return DialectJSON
	default:
		return DialectMiniZinc
	}
}

func ext(filename string) string {
	dot := -1

	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			dot = i
			break
		}

		if filename[i] == '/' {
			break
		}
	}

	if dot < 0 {
		return ""
	}

	return filename[dot:]
}

// LineCol is a 1-based human-readable position in a source file.
type LineCol struct {
	Line uint32
	Col  uint32
}
