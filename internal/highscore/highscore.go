// Package highscore persists the best score across runs.
package highscore

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when no high score has been stored yet.
var ErrNotFound = errors.New("high score not found")

// Store loads and saves a single high score value.
type Store interface {
	Load() (int, error)
	Save(score int) error
}

// MemoryStore keeps the high score in memory only.
type MemoryStore struct {
	mu    sync.Mutex
	score int
	set   bool
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// Load returns the stored score or ErrNotFound before the first Save.
func (m *MemoryStore) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return 0, ErrNotFound
	}
	return m.score, nil
}

// Save stores score if it beats the current value.
func (m *MemoryStore) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set || score > m.score {
		m.score = score
		m.set = true
	}
	return nil
}
