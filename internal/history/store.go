package history

import (
	"encoding/json"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileStore keeps the history as one JSON array, rewritten in full on every save.
// Cost is O(history length) per command; an append-only format would lift that ceiling.
type FileStore struct {
	path string
	fs   fileSystem
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string, fs fileSystem) *FileStore {
	return &FileStore{path: path, fs: fs}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted entries. Any read or parse failure is returned so the
// ledger can decide to start empty.
func (s *FileStore) Load() ([]Entry, error) {
	lock := flock.New(s.lockPath())
	if err := s.fs.EnsureDirs(filepath.Dir(s.path)); err == nil {
		if err := lock.RLock(); err == nil {
			defer lock.Unlock()
		}
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save rewrites the whole file under an exclusive lock.
func (s *FileStore) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &PersistError{Path: s.path, Cause: err}
	}

	if err := s.fs.EnsureDirs(filepath.Dir(s.path)); err != nil {
		return &PersistError{Path: s.path, Cause: err}
	}

	lock := flock.New(s.lockPath())
	if err := lock.Lock(); err != nil {
		return &LockError{Path: s.lockPath(), Cause: err}
	}
	defer lock.Unlock()

	if err := s.fs.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return &PersistError{Path: s.path, Cause: err}
	}
	return nil
}

func (s *FileStore) lockPath() string {
	return s.path + ".lock"
}
