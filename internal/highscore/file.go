package highscore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
)

// record is the on-disk layout of the high score file.
type record struct {
	HighScore int `toml:"high_score"`
}

// FileStore keeps the high score in a TOML file. It is safe for concurrent
// use, so one store can be shared by many game sessions.
type FileStore struct {
	path string

	mu     sync.Mutex
	best   int
	loaded bool
}

// Compile-time check that FileStore implements Store.
var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the high score from disk. A missing file returns ErrNotFound.
// Files holding a bare number are accepted as well.
func (s *FileStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.loaded = true
		return 0, fmt.Errorf("%s: %w", s.path, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}

	score, err := decode(data)
	if err != nil {
		return 0, fmt.Errorf("decode high score %s: %w", s.path, err)
	}
	if score < 0 {
		score = 0
	}
	s.best = max(s.best, score)
	s.loaded = true
	return s.best, nil
}

func decode(data []byte) (int, error) {
	if n, err := strconv.Atoi(string(bytes.TrimSpace(data))); err == nil {
		return n, nil
	}
	var rec record
	if _, err := toml.Decode(string(data), &rec); err != nil {
		return 0, err
	}
	return rec.HighScore, nil
}

// Save writes score if it is higher than the best known value.
// The file is replaced atomically.
func (s *FileStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		// Pick up a better score written by an earlier run.
		_, _ = s.load()
	}
	if s.loaded && score <= s.best {
		if _, err := os.Stat(s.path); err == nil {
			return nil
		}
	}

	if err := s.write(score); err != nil {
		return err
	}
	s.best = max(s.best, score)
	s.loaded = true
	return nil
}

func (s *FileStore) write(score int) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create high score dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(record{HighScore: max(score, s.best)}); err != nil {
		tmp.Close()
		return fmt.Errorf("encode high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace high score file: %w", err)
	}
	return nil
}
