// Package store tracks synthesized audio files produced for API clients.
package store

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry describes one tracked audio file.
type Entry struct {
	ID        string
	Path      string
	CreatedAt time.Time
}

// Store is a TTL-bounded registry of generated files. Expired entries are
// removed together with their files on disk, either by the janitor goroutine
// or by an explicit Cleanup call.
type Store struct {
	mu     sync.Mutex
	files  map[string]Entry
	ttl    time.Duration
	logger *slog.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a file store. A ttl of zero disables expiry.
func New(ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		files:  make(map[string]Entry),
		ttl:    ttl,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Add registers a generated file and returns its entry with a fresh ID.
func (s *Store) Add(path string) Entry {
	entry := Entry{
		ID:        uuid.New().String(),
		Path:      path,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.files[entry.ID] = entry
	s.mu.Unlock()

	s.logger.Debug("file registered", "id", entry.ID, "path", path)
	return entry
}

// Get returns the entry for id if it exists and has not expired.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.files[id]
	if !ok {
		return Entry{}, false
	}

	if s.expired(entry, time.Now()) {
		delete(s.files, id)
		return Entry{}, false
	}

	return entry, true
}

// Remove forgets id without touching the file on disk.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, id)
}

// Len returns the number of tracked files.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Cleanup deletes expired entries and their files, returning the count removed.
func (s *Store) Cleanup() int {
	now := time.Now()

	s.mu.Lock()
	var expired []Entry
	for id, entry := range s.files {
		if s.expired(entry, now) {
			expired = append(expired, entry)
			delete(s.files, id)
		}
	}
	s.mu.Unlock()

	for _, entry := range expired {
		if err := os.Remove(entry.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to remove expired file", "path", entry.Path, "error", err)
		}
	}

	if len(expired) > 0 {
		s.logger.Info("expired files removed", "count", len(expired))
	}

	return len(expired)
}

func (s *Store) expired(entry Entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.CreatedAt) >= s.ttl
}

// Start begins the janitor goroutine. An interval of zero disables it.
func (s *Store) Start(interval time.Duration) {
	if interval <= 0 {
		return
	}

	s.wg.Add(1)
	go s.janitor(interval)
}

// Stop terminates the janitor and waits for it to exit.
func (s *Store) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// janitor periodically removes expired files.
func (s *Store) janitor(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
