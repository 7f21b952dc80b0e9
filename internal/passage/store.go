// Package passage keeps the weekly TOEFL practice passages in a JSON file
// next to the database, one entry per week.
package passage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Passage is one week's practice text.
type Passage struct {
	WeekNum      int    `json:"week_num"`
	EnglishText  string `json:"english_text"`
	JapaneseText string `json:"japanese_text"`
	AudioFile    string `json:"audio_file,omitempty"`
}

// Store is a file-backed passage collection. All methods are safe for
// concurrent use.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the JSON file at path. The file is
// created on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns all passages sorted by week number. A missing file is an
// empty collection, not an error.
func (s *Store) List() ([]Passage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the passage for the given week.
func (s *Store) Get(weekNum int) (*Passage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	passages, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range passages {
		if passages[i].WeekNum == weekNum {
			return &passages[i], nil
		}
	}
	return nil, fmt.Errorf("no passage for week %d", weekNum)
}

// NextWeekNum returns one past the highest stored week number, starting
// at 1.
func (s *Store) NextWeekNum() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	passages, err := s.load()
	if err != nil {
		return 0, err
	}
	next := 1
	for _, p := range passages {
		if p.WeekNum >= next {
			next = p.WeekNum + 1
		}
	}
	return next, nil
}

// Add appends a passage. An existing entry for the same week is replaced.
func (s *Store) Add(p Passage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	passages, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range passages {
		if passages[i].WeekNum == p.WeekNum {
			passages[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		passages = append(passages, p)
	}
	return s.save(passages)
}

// SetAudio records the generated audio filename for a week.
func (s *Store) SetAudio(weekNum int, audioFile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	passages, err := s.load()
	if err != nil {
		return err
	}
	for i := range passages {
		if passages[i].WeekNum == weekNum {
			passages[i].AudioFile = audioFile
			return s.save(passages)
		}
	}
	return fmt.Errorf("no passage for week %d", weekNum)
}

func (s *Store) load() ([]Passage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read passage file: %w", err)
	}

	var passages []Passage
	if err := json.Unmarshal(data, &passages); err != nil {
		return nil, fmt.Errorf("failed to parse passage file: %w", err)
	}
	sort.Slice(passages, func(i, j int) bool { return passages[i].WeekNum < passages[j].WeekNum })
	return passages, nil
}

func (s *Store) save(passages []Passage) error {
	sort.Slice(passages, func(i, j int) bool { return passages[i].WeekNum < passages[j].WeekNum })

	data, err := json.MarshalIndent(passages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode passages: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create passage directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write passage file: %w", err)
	}
	return nil
}
