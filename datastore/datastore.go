// Package datastore is a file-backed key/value store for the bot's guild
// state. Everything lives in memory and is flushed to a single JSON file by
// a background autosaver; writes to disk are atomic and keep a few rotating
// backups around. It is deliberately small: no queries, no transactions,
// just Get/Set/Delete over JSON-serializable values.
package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Options tunes a Store.
type Options struct {
	Path         string
	SaveInterval time.Duration
	BackupCount  int
}

// DefaultOptions returns the options the bot runs with.
func DefaultOptions(path string) Options {
	return Options{
		Path:         path,
		SaveInterval: 10 * time.Second,
		BackupCount:  3,
	}
}

// Store is a persistent map[string]any. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]any

	opts         Options
	lastChecksum string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeMu sync.Mutex
	closed  bool
}

// Open loads or creates the store file at path with default options.
func Open(path string) (*Store, error) {
	return OpenWithOptions(DefaultOptions(path))
}

// OpenWithOptions loads or creates the store file and starts the autosaver.
func OpenWithOptions(opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("datastore: empty file path")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("datastore: create directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		data:   make(map[string]any),
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
	}

	switch _, err := os.Stat(opts.Path); {
	case os.IsNotExist(err):
		if err := s.writeAtomic([]byte("{}")); err != nil {
			cancel()
			return nil, fmt.Errorf("datastore: create file: %w", err)
		}
	case err != nil:
		cancel()
		return nil, fmt.Errorf("datastore: stat file: %w", err)
	default:
		if err := s.load(); err != nil {
			cancel()
			return nil, err
		}
	}

	if opts.SaveInterval > 0 {
		s.wg.Add(1)
		go s.autosave()
	}

	return s, nil
}

// Get retrieves the value stored under key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Delete removes key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Keys returns every stored key.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

// Save flushes to disk immediately.
func (s *Store) Save() error {
	return s.save()
}

// Close stops the autosaver and performs a final save.
func (s *Store) Close() error {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return nil
	}
	s.closed = true
	s.closeMu.Unlock()

	s.cancel()
	s.wg.Wait()
	return s.save()
}

func (s *Store) autosave() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.opts.SaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.save(); err != nil {
				log.Error().Err(err).Str("component", "datastore").Msg("autosave failed")
			}
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Store) save() error {
	s.mu.RLock()
	payload, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("datastore: marshal: %w", err)
	}

	sum := checksum(payload)
	if sum == s.lastChecksum {
		return nil
	}

	if s.opts.BackupCount > 0 {
		if err := s.rotateBackups(); err != nil {
			log.Warn().Err(err).Str("component", "datastore").Msg("backup rotation failed")
		}
	}

	if err := s.writeAtomic(payload); err != nil {
		return err
	}
	s.lastChecksum = sum
	return nil
}

func (s *Store) load() error {
	payload, err := os.ReadFile(s.opts.Path)
	if err != nil {
		return fmt.Errorf("datastore: read file: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("datastore: invalid JSON in %s: %w", s.opts.Path, err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	s.lastChecksum = checksum(payload)
	return nil
}

// writeAtomic writes via a temp file in the same directory and renames it
// over the target, so a crash can never leave a half-written store.
func (s *Store) writeAtomic(payload []byte) error {
	dir := filepath.Dir(s.opts.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.opts.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("datastore: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("datastore: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("datastore: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("datastore: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.opts.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("datastore: rename temp file: %w", err)
	}
	return nil
}

// rotateBackups shifts file.bak.1 -> file.bak.2 -> ... and copies the
// current file to file.bak.1.
func (s *Store) rotateBackups() error {
	if _, err := os.Stat(s.opts.Path); err != nil {
		return nil
	}

	for i := s.opts.BackupCount - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.bak.%d", s.opts.Path, i)
		to := fmt.Sprintf("%s.bak.%d", s.opts.Path, i+1)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, to); err != nil {
				return err
			}
		}
	}

	current, err := os.ReadFile(s.opts.Path)
	if err != nil {
		return err
	}
	return os.WriteFile(fmt.Sprintf("%s.bak.1", s.opts.Path), current, 0o644)
}

func checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
