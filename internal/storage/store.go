package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

type Storer[T ValidatingSpec] interface {
	Save(string, T) error
	Get(string) T
	GetAll() map[string]T
}

// Deleter is implemented by stores that can remove a record.
type Deleter interface {
	Delete(string) error
}

type FileStore[T ValidatingSpec] struct {
	path         string
	records      map[string]T
	createDir    bool
	missingEmpty bool
	skipInvalid  bool

	mu sync.RWMutex
}

type FileStoreOpt func(*fileStoreConfig)

type fileStoreConfig struct {
	createDir    bool
	missingEmpty bool
	skipInvalid  bool
}

// WithCreateDir creates the store directory when it does not exist.
func WithCreateDir() FileStoreOpt {
	return func(c *fileStoreConfig) {
		c.createDir = true
	}
}

// WithMissingAsEmpty treats a missing store directory as an empty store
// instead of failing.
func WithMissingAsEmpty() FileStoreOpt {
	return func(c *fileStoreConfig) {
		c.missingEmpty = true
	}
}

// WithSkipInvalid logs and skips files that fail to load or validate
// instead of failing the whole store.
func WithSkipInvalid() FileStoreOpt {
	return func(c *fileStoreConfig) {
		c.skipInvalid = true
	}
}

func NewFileStore[T ValidatingSpec](path string, opts ...FileStoreOpt) (*FileStore[T], error) {
	cfg := &fileStoreConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &FileStore[T]{
		path:         path,
		records:      map[string]T{},
		createDir:    cfg.createDir,
		missingEmpty: cfg.missingEmpty,
		skipInvalid:  cfg.skipInvalid,
	}

	if s.createDir {
		err := os.MkdirAll(path, 0755)
		if err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	err := s.load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *FileStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clear existing records when loading
	s.records = map[string]T{}

	if s.missingEmpty {
		_, err := os.Stat(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("asset directory not found, using empty store", "path", s.path)
			return nil
		}
	}

	err := filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		// Load all json files in the assets path
		if !info.IsDir() && filepath.Ext(path) == ".json" {
			asset, err := s.loadAsset(path)
			if err != nil {
				return s.skip(fmt.Errorf("loading %s: %w", filepath.Base(path), err))
			}

			err = asset.Validate()
			if err != nil {
				return s.skip(fmt.Errorf("validating %s: %w", filepath.Base(path), err))
			}

			// Error if the key is already in use
			_, ok := s.records[asset.Id()]
			if ok {
				return fmt.Errorf("duplicate key detected: %s", asset.Id())
			}

			s.records[asset.Id()] = asset.Spec
		}

		return nil
	})

	if err != nil {
		return err
	}

	return nil
}

// skip swallows err when the store tolerates bad files.
func (s *FileStore[T]) skip(err error) error {
	if !s.skipInvalid {
		return err
	}
	slog.Warn("skipping unreadable record", "path", s.path, "error", err)
	return nil
}

func (s *FileStore[T]) Save(id string, o T) error {
	if !identifierPattern.MatchString(id) || id == "" {
		return fmt.Errorf("invalid id %q", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	asset := &Asset[T]{
		Version:    1,
		Identifier: id,
		Spec:       o,
	}

	jsonData, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	err = atomicWrite(s.filePath(asset.Id()), jsonData, 0644)
	if err != nil {
		return err
	}

	s.records[id] = o
	return nil
}

// Delete removes the record and its backing file. Deleting an unknown id
// is not an error.
func (s *FileStore[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)

	err := os.Remove(s.filePath(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", id, err)
	}
	return nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (s *FileStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *FileStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}

	return vals
}

func (s *FileStore[T]) filePath(id string) string {
	return filepath.Join(s.path, fmt.Sprintf("%s.json", id))
}

func (s *FileStore[T]) loadAsset(path string) (*Asset[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	jsonData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	err = json.Unmarshal(jsonData, asset)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}

// MemoryStore is a Storer that keeps records only in memory.
type MemoryStore[T ValidatingSpec] struct {
	records map[string]T

	mu sync.RWMutex
}

func NewMemoryStore[T ValidatingSpec](records map[string]T) *MemoryStore[T] {
	s := &MemoryStore[T]{records: make(map[string]T, len(records))}
	for id, v := range records {
		s.records[id] = v
	}
	return s
}

func (s *MemoryStore[T]) Save(id string, o T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = o
	return nil
}

func (s *MemoryStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

func (s *MemoryStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}

func (s *MemoryStore[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
