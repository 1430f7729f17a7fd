package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
)

type document struct {
	Version   int            `json:"version"`
	Onboarded bool           `json:"onboarded"`
	Habits    []models.Habit `json:"habits"`
}

// JSONStore keeps the whole document in memory and rewrites the file on every
// save. The mutex covers the document and the file; habit and onboarding
// writes can arrive from different goroutines.
type JSONStore struct {
	path string
	mu   sync.Mutex
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &document{
		Version: 1,
		Habits:  []models.Habit{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tinyhabits init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = &document{Version: 1}
	if err := json.Unmarshal(data, s.doc); err != nil {
		// A corrupt file must not stop the app; start over with an empty list.
		logger.Warn("Stored habits are unreadable, starting empty", "path", s.path, "error", err)
		s.doc = &document{Version: 1, Habits: []models.Habit{}}
		return nil
	}

	if s.doc.Habits == nil {
		s.doc.Habits = []models.Habit{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the document out. Callers hold mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) LoadHabits() ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	habits := make([]models.Habit, len(s.doc.Habits))
	copy(habits, s.doc.Habits)
	return habits, nil
}

func (s *JSONStore) SaveHabits(habits []models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Habits = make([]models.Habit, len(habits))
	copy(s.doc.Habits, habits)
	return s.save()
}

func (s *JSONStore) LoadOnboarding() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	return s.doc.Onboarded, nil
}

func (s *JSONStore) SaveOnboarding(value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Onboarded = value
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
