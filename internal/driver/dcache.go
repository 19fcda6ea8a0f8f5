package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/shackle-rs/mzc/internal/project"
)

// diskCacheSchemaVersion guards DiskPayload's on-disk shape; bump it
// whenever the struct changes so a stale cache entry is rejected rather
// than misdecoded.
const diskCacheSchemaVersion uint16 = 1

// DiskCache persists a Compile run's outcome, keyed by the content digest of
// every file the run actually read (§4.3's explicit-invalidation query
// engine made cross-process), grounded on the teacher's
// internal/driver/dcache.go. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached summary of one Compile run: enough to decide
// whether a cache hit can skip recompilation entirely (ErrorCount == 0 and
// every input digest still matches) without persisting the full TIR model,
// which is rebuilt from source on any miss.
type DiskPayload struct {
	Schema     uint16
	Paths      []string
	Digests    []project.Digest
	ErrorCount int
	WarnCount  int
}

// OpenDiskCache opens (creating if absent) the disk cache under the user's
// standard cache directory, namespaced by app (normally "mzc").
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		base = filepath.Join(home, ".cache")
	}

	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "compiles", hex.EncodeToString(key[:])+".mp")
}

// Put serialises payload under key, replacing any prior entry atomically.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}

	tmpName := f.Name()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpName)

		return err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpName)

		return err
	}

	return os.Rename(tmpName, p)
}

// Get reads and deserialises the entry for key, if present. A schema
// mismatch is treated as a miss rather than an error, so an upgrade never
// needs a manual cache wipe.
func (c *DiskCache) Get(key project.Digest) (*DiskPayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}

	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}

	return &payload, true, nil
}

// Key computes the cache key for a compile over paths: the inputs' content
// digests, combined in the order given via project.Combine (callers pass
// them pre-sorted), plus a hash of the stdlib/search configuration so
// changing either invalidates stale entries.
func Key(fileDigests []project.Digest, config string) project.Digest {
	configDigest := project.Digest(sha256.Sum256([]byte(config)))

	return project.Combine(configDigest, fileDigests...)
}
