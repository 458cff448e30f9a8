// Package trust provides the file-based publisher key store.
//
// Trusted Ed25519 public keys live under ~/.aio/keys as one file per
// key id ("<key_id>.pub", base64-encoded raw 32-byte key). The store
// watches the directory and reloads on change, so newly trusted
// publishers take effect without restarting long-running servers.
package trust

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
	"github.com/bricsin4u/AIO-research/internal/logger"
)

// Ensure FileKeyStore implements the interface.
var _ driven.KeyStore = (*FileKeyStore)(nil)

// keyExt is the trusted key file extension.
const keyExt = ".pub"

// FileKeyStore resolves trusted publisher keys from a directory.
type FileKeyStore struct {
	mu      sync.RWMutex
	dir     string
	keys    map[string]ed25519.PublicKey
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileKeyStore loads keys from keyDir and starts watching it for
// changes. If keyDir is empty, defaults to ~/.aio/keys.
func NewFileKeyStore(keyDir string) (*FileKeyStore, error) {
	if keyDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		keyDir = filepath.Join(home, ".aio", "keys")
	}
	if err := os.MkdirAll(keyDir, 0700); err != nil {
		return nil, err
	}

	s := &FileKeyStore{
		dir:  keyDir,
		keys: make(map[string]ed25519.PublicKey),
		done: make(chan struct{}),
	}
	if err := s.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting key watcher: %w", err)
	}
	if err := watcher.Add(keyDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", keyDir, err)
	}
	s.watcher = watcher
	go s.watch()

	return s, nil
}

// PublicKey returns the trusted key for a key id, or domain.ErrUnknownKey.
func (s *FileKeyStore) PublicKey(keyID string) (ed25519.PublicKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKey, keyID)
	}
	return key, nil
}

// Add trusts a new publisher key, writing it to the key directory.
func (s *FileKeyStore) Add(keyID, base64Key string) error {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(base64Key))
	if err != nil {
		return fmt.Errorf("%w: key is not valid base64", domain.ErrInvalidInput)
	}
	if len(raw) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: key must be %d bytes", domain.ErrInvalidInput, ed25519.PublicKeySize)
	}
	if keyID == "" || strings.ContainsAny(keyID, `/\`) {
		return fmt.Errorf("%w: invalid key id", domain.ErrInvalidInput)
	}

	path := filepath.Join(s.dir, keyID+keyExt)
	if err := os.WriteFile(path, []byte(base64Key), 0600); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	s.mu.Lock()
	s.keys[keyID] = ed25519.PublicKey(raw)
	s.mu.Unlock()
	return nil
}

// List returns the trusted key ids, sorted.
func (s *FileKeyStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.keys))
	for id := range s.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close stops the directory watcher.
func (s *FileKeyStore) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// reload re-reads every key file in the directory. Unparseable files
// are skipped with a warning rather than failing the whole store.
func (s *FileKeyStore) reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("reading key directory: %w", err)
	}

	keys := make(map[string]ed25519.PublicKey, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), keyExt) {
			continue
		}
		keyID := strings.TrimSuffix(e.Name(), keyExt)

		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			logger.Warn("Skipping key %q: %v", keyID, err)
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if err != nil || len(raw) != ed25519.PublicKeySize {
			logger.Warn("Skipping key %q: not a base64 Ed25519 public key", keyID)
			continue
		}
		keys[keyID] = ed25519.PublicKey(raw)
	}

	s.mu.Lock()
	s.keys = keys
	s.mu.Unlock()
	return nil
}

// watch reloads the store whenever the key directory changes.
func (s *FileKeyStore) watch() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				if err := s.reload(); err != nil {
					logger.Warn("Key store reload failed: %v", err)
				}
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Key watcher error: %v", err)
		}
	}
}
