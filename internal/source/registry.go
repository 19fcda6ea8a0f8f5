package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// Digest is a file's SHA-256 content hash.
type Digest [32]byte

// File bundles a file's identity, contents, and line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Dialect Dialect
	Flags   FileFlags
	Hash    Digest
	lineIdx []uint32
}

// Durable reports whether this file was read through a durable handler,
// i.e. it is not an editor overlay or an in-memory model (FileVirtual).
func (f *File) Durable() bool { return f.Flags&FileVirtual == 0 }

// Handler abstracts how file contents are obtained. The default handler
// reads the filesystem; a virtual handler backs editor overlays and
// in-memory override models.
type Handler interface {
	// Read returns the contents of path, or an error if unavailable.
	Read(path string) ([]byte, error)
	// Durable reports whether contents returned for path should be treated
	// as a durable input (see File.Durable).
	Durable(path string) bool
}

// FSHandler reads files from the real filesystem. It is always durable.
type FSHandler struct{}

// Read implements Handler.
func (FSHandler) Read(path string) ([]byte, error) {
	// #nosec G304 -- path is supplied by the compilation driver's own file list.
	return os.ReadFile(path)
}

// Durable implements Handler.
func (FSHandler) Durable(string) bool { return true }

// VirtualHandler backs editor overlays: paths are resolved from an in-memory
// map first, falling back to the filesystem. Overlay reads are non-durable.
type VirtualHandler struct {
	overlays map[string][]byte
	fallback Handler
}

// NewVirtualHandler constructs a VirtualHandler falling back to fallback
// (typically FSHandler{}) for paths with no overlay.
func NewVirtualHandler(fallback Handler) *VirtualHandler {
	return &VirtualHandler{overlays: make(map[string][]byte), fallback: fallback}
}

// SetOverlay installs or replaces in-memory contents for path.
func (v *VirtualHandler) SetOverlay(path string, content []byte) {
	v.overlays[path] = content
}

// ClearOverlay removes an in-memory override, reverting to the fallback.
func (v *VirtualHandler) ClearOverlay(path string) {
	delete(v.overlays, path)
}

// Read implements Handler.
func (v *VirtualHandler) Read(path string) ([]byte, error) {
	if content, ok := v.overlays[path]; ok {
		return content, nil
	}

	return v.fallback.Read(path)
}

// Durable implements Handler.
func (v *VirtualHandler) Durable(path string) bool {
	if _, ok := v.overlays[path]; ok {
		return false
	}

	return v.fallback.Durable(path)
}

// Registry owns the set of source files seen by a compilation session. It
// is the component-4 "source-file registry" of the design: identity,
// contents, durability, and span -> (line, col) mapping.
type Registry struct {
	handler Handler
	files   []File
	byPath  map[string]FileID
}

// NewRegistry constructs an empty registry reading through handler.
func NewRegistry(handler Handler) *Registry {
	return &Registry{
		handler: handler,
		files:   []File{{}}, // index 0 reserved for NoFileID
		byPath:  make(map[string]FileID),
	}
}

// Load reads path through the registry's handler and registers it,
// returning its FileID. Re-loading an already-registered path refreshes its
// contents in place and keeps the same FileID, so existing cross-references
// remain valid (arena indices never dangle, per invariant I1).
func (r *Registry) Load(path string) (FileID, error) {
	content, err := r.handler.Read(path)
	if err != nil {
		return NoFileID, fmt.Errorf("reading %s: %w", path, err)
	}

	flags := FileFlags(0)
	if !r.handler.Durable(path) {
		flags |= FileVirtual
	}

	if id, ok := r.byPath[path]; ok {
		r.files[id] = newFile(id, path, content, flags)
		return id, nil
	}

	id, err := safecast.Conv[uint32](len(r.files))
	if err != nil {
		return NoFileID, fmt.Errorf("file registry overflow: %w", err)
	}

	fid := FileID(id)
	r.files = append(r.files, newFile(fid, path, content, flags))
	r.byPath[path] = fid

	return fid, nil
}

// AddVirtual registers an in-memory model without going through the
// handler, e.g. the "inline string" model source allowed by spec §6.1.
func (r *Registry) AddVirtual(name string, content []byte) FileID {
	id := uint32(len(r.files))
	fid := FileID(id)
	r.files = append(r.files, newFile(fid, name, content, FileVirtual))
	r.byPath[name] = fid

	return fid
}

func newFile(id FileID, path string, content []byte, flags FileFlags) File {
	return File{
		ID:      id,
		Path:    path,
		Content: content,
		Dialect: DialectOf(path),
		Flags:   flags,
		Hash:    sha256.Sum256(content),
		lineIdx: buildLineIndex(content),
	}
}

// Get returns the file registered under id. Panics if id is out of range,
// matching the arena contract that indices never dangle within a valid
// compilation.
func (r *Registry) Get(id FileID) *File {
	return &r.files[id]
}

// Lookup resolves a previously loaded path to its FileID.
func (r *Registry) Lookup(path string) (FileID, bool) {
	id, ok := r.byPath[path]
	return id, ok
}

func buildLineIndex(content []byte) []uint32 {
	var idx []uint32

	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i))
		}
	}

	return idx
}

// LineCol resolves a byte offset within this file to a 1-based line/column
// pair.
func (f *File) LineCol(offset uint32) LineCol {
	line := uint32(1)
	lineStart := uint32(0)

	for _, nl := range f.lineIdx {
		if nl >= offset {
			break
		}

		line++
		lineStart = nl + 1
	}

	return LineCol{Line: line, Col: offset - lineStart + 1}
}

// OffsetForLineCol resolves a 1-based line/column pair back to a byte
// offset, the inverse of LineCol. A column past the end of its line clamps
// to the line's length; a line past the end of the file clamps to the
// file's length.
func (f *File) OffsetForLineCol(lc LineCol) uint32 {
	if lc.Line == 0 {
		lc.Line = 1
	}

	lineStart := uint32(0)
	lineEnd := uint32(len(f.Content))

	if lc.Line > 1 {
		idx := int(lc.Line) - 2
		if idx >= len(f.lineIdx) {
			return lineEnd
		}

		lineStart = f.lineIdx[idx] + 1
	}

	if int(lc.Line)-1 < len(f.lineIdx) {
		lineEnd = f.lineIdx[lc.Line-1]
	}

	offset := lineStart + (lc.Col - 1)
	if lc.Col == 0 {
		offset = lineStart
	}

	if offset > lineEnd {
		offset = lineEnd
	}

	return offset
}

// Snippet returns the line of text enclosing the start of span, along with
// the (line, col) of the span's start — the `(line, column, snippet)`
// triple spec §4.4 requires for diagnostics.
func (f *File) Snippet(span Span) (LineCol, string) {
	lc := f.LineCol(span.Start)

	lineStart := uint32(0)
	if lc.Line > 1 {
		lineStart = f.lineIdx[lc.Line-2] + 1
	}

	lineEnd := uint32(len(f.Content))
	if int(lc.Line)-1 < len(f.lineIdx) {
		lineEnd = f.lineIdx[lc.Line-1]
	}

	if lineStart > uint32(len(f.Content)) {
		lineStart = uint32(len(f.Content))
	}

	if lineEnd > uint32(len(f.Content)) {
		lineEnd = uint32(len(f.Content))
	}

	return lc, string(f.Content[lineStart:lineEnd])
}
