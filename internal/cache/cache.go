package cache

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrCorrupt marks a cache entry that exists but cannot be decoded. The bad
// entry is removed on the way out; callers re-lint and move on.
var ErrCorrupt = errors.New("cache entry corrupt")

// Store keeps per-file lint results on disk. Safe for concurrent use; a nil
// *Store ignores every call, so a disabled cache needs no branching upstream.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the store at the standard user cache location.
func Open(app string) (*Store, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app))
}

// OpenAt initializes the store at an explicit directory.
func OpenAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

func (s *Store) pathFor(key Key) string {
	// Entries live in a subdirectory so DropAll never touches anything else
	// a future version might put next to them.
	return filepath.Join(s.dir, "results", key.Hex()+".mp")
}

// Put serializes the entry and writes it atomically via temp file + rename,
// so readers never observe a half-written entry.
func (s *Store) Put(key Key, entry *Entry) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads the entry for key. A missing entry is (nil, false, nil). An entry
// that fails to decode is deleted and reported as ErrCorrupt.
func (s *Store) Get(key Key) (*Entry, bool, error) {
	if s == nil {
		return nil, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var entry Entry
	decodeErr := msgpack.NewDecoder(f).Decode(&entry)
	if closeErr := f.Close(); decodeErr == nil {
		decodeErr = closeErr
	}
	if decodeErr != nil {
		// Self-heal: a rename-in-flight cannot produce a torn file, so a
		// decode failure means the entry is garbage for good.
		_ = os.Remove(p)
		return nil, false, ErrCorrupt
	}
	if entry.Schema != schemaVersion {
		return nil, false, nil
	}
	return &entry, true, nil
}

// DropAll removes every cached entry. The directory is renamed first so a
// concurrent run sees either the old cache or an empty one, never a partial
// delete.
func (s *Store) DropAll() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(s.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
