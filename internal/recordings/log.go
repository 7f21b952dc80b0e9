// Package recordings stores practice WAV recordings on disk and keeps a
// JSON log of what was recorded, when, and how long it ran.
package recordings

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one logged recording.
type Entry struct {
	ID              string  `json:"id"`
	Category        string  `json:"category"`
	EnglishText     string  `json:"english_text"`
	JapaneseText    string  `json:"japanese_text,omitempty"`
	Filename        string  `json:"filename"`
	DurationSeconds float64 `json:"duration_seconds"`
	RecordedAt      string  `json:"recorded_at"`
}

// Log stores WAV files under dir and appends entries to a JSON log file in
// the same directory.
type Log struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewLog creates a recording log rooted at dir.
func NewLog(dir string) *Log {
	return &Log{dir: dir, now: time.Now}
}

func (l *Log) logPath() string {
	return filepath.Join(l.dir, "recordings.json")
}

// Save writes the WAV data to a uniquely named file and appends a log
// entry for it.
func (l *Log) Save(category, englishText, japaneseText string, wav []byte) (*Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create recordings directory: %w", err)
	}

	id := uuid.New().String()
	filename := id + ".wav"
	if err := os.WriteFile(filepath.Join(l.dir, filename), wav, 0644); err != nil {
		return nil, fmt.Errorf("failed to write recording: %w", err)
	}

	entry := Entry{
		ID:              id,
		Category:        category,
		EnglishText:     englishText,
		JapaneseText:    japaneseText,
		Filename:        filename,
		DurationSeconds: wavDuration(wav),
		RecordedAt:      l.now().Format(time.RFC3339),
	}

	entries, err := l.load()
	if err != nil {
		return nil, err
	}
	entries = append(entries, entry)
	if err := l.save(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns all log entries in recording order.
func (l *Log) List() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Open returns the audio bytes for a logged recording.
func (l *Log) Open(id string) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			data, err := os.ReadFile(filepath.Join(l.dir, e.Filename))
			if err != nil {
				return nil, fmt.Errorf("failed to read recording: %w", err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("no recording with id %s", id)
}

// load tolerates a missing or corrupt log file; recordings on disk are the
// source of truth and a broken index should not break the feature.
func (l *Log) load() ([]Entry, error) {
	data, err := os.ReadFile(l.logPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recording log: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

func (l *Log) save(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode recording log: %w", err)
	}
	if err := os.WriteFile(l.logPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write recording log: %w", err)
	}
	return nil
}

// wavDuration computes the play time of a RIFF/WAVE buffer from the fmt
// chunk's byte rate and the data chunk's size. Returns 0 for anything it
// cannot parse.
func wavDuration(wav []byte) float64 {
	if len(wav) < 12 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return 0
	}

	var byteRate uint32
	var dataSize uint32

	offset := 12
	for offset+8 <= len(wav) {
		chunkID := string(wav[offset : offset+4])
		chunkSize := binary.LittleEndian.Uint32(wav[offset+4 : offset+8])
		body := offset + 8

		switch chunkID {
		case "fmt ":
			if body+16 <= len(wav) {
				byteRate = binary.LittleEndian.Uint32(wav[body+8 : body+12])
			}
		case "data":
			dataSize = chunkSize
		}

		offset = body + int(chunkSize)
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if byteRate == 0 {
		return 0
	}
	return float64(dataSize) / float64(byteRate)
}
