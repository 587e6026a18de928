package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"pyrite/internal/diag"
	"pyrite/internal/source"
	"pyrite/internal/verify"
)

// diskCacheSchemaVersion invalidates every stored payload when the
// DiskPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores generated output keyed by source hash and options.
// It is strictly non-load-bearing: a hit replays the identical (output,
// diagnostics) pair a fresh run would produce, and every correctness
// property holds with the cache disabled. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of one (source, options) pair.
type DiskPayload struct {
	Schema     uint16
	Output     string
	HIRDump    string
	Diags      []cachedDiag
	Violations []cachedViolation
}

// cachedDiag flattens a diagnostic for storage. Spans are stored as byte
// offsets only; the FileID is reattached on replay.
type cachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

type cachedViolation struct {
	Code    uint16
	Func    string
	Message string
	Start   uint32
	End     uint32
}

// OpenDiskCache initializes a disk cache under XDG_CACHE_HOME (or
// ~/.cache) in a subdirectory named after the app.
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

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "out", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a payload and installs it atomically.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or a schema mismatch is a clean
// miss, not an error.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// cacheKey mixes the source hash with the options that change the
// payload, so toggling a flag never replays a stale shape.
func cacheKey(fileHash [32]byte, opts Options) [32]byte {
	h := sha256.New()
	h.Write(fileHash[:])

	var fingerprint [4]byte
	binary.LittleEndian.PutUint16(fingerprint[:2], diskCacheSchemaVersion)
	if opts.Verify {
		fingerprint[2] = 1
	}
	if opts.EmitHIR {
		fingerprint[3] = 1
	}
	h.Write(fingerprint[:])

	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

// storeCached records a completed result. Fatal results, replayed results,
// and files that never produced a module are skipped.
func storeCached(cache *DiskCache, opts Options, u *unit, res *Result) {
	if u == nil || res.Fatal != nil || res.CacheHit {
		return
	}
	payload := &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		Output:  res.Output,
		HIRDump: res.HIRDump,
	}
	for _, d := range res.Bag.Items() {
		payload.Diags = append(payload.Diags, cachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	for _, v := range res.Violations {
		payload.Violations = append(payload.Violations, cachedViolation{
			Code:    uint16(v.Code),
			Func:    v.Func,
			Message: v.Message,
			Start:   v.Span.Start,
			End:     v.Span.End,
		})
	}
	if err := cache.Put(cacheKey(u.file.Hash, opts), payload); err != nil {
		res.Bag.Add(diag.New(diag.SevWarning, diag.IOCache, source.Span{},
			"cache write failed: "+err.Error()))
	}
}

// replayCached rebuilds a Result from a stored payload, reattaching the
// current FileID to every span.
func replayCached(payload *DiskPayload, fileID source.FileID, res *Result) {
	res.Output = payload.Output
	res.HIRDump = payload.HIRDump
	res.CacheHit = true
	for _, d := range payload.Diags {
		res.Bag.Add(diag.New(diag.Severity(d.Severity), diag.Code(d.Code),
			source.Span{File: fileID, Start: d.Start, End: d.End}, d.Message))
	}
	for _, v := range payload.Violations {
		res.Violations = append(res.Violations, verify.Violation{
			Code:    diag.Code(v.Code),
			Span:    source.Span{File: fileID, Start: v.Start, End: v.End},
			Func:    v.Func,
			Message: v.Message,
		})
	}
}
