package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/validation"
)

// JSONStore persists the whole data set as a single JSON document:
// {userInfo: {...}, entries: {"YYYY-MM-DD": {...}}}. Every load runs the
// document through the validation gate, so manual edits or partial
// writes degrade to dropped records rather than a crash.
type JSONStore struct {
	path   string
	logger *zap.Logger
}

// NewJSONStore creates a store backed by the JSON document at path.
func NewJSONStore(path string, logger *zap.Logger) *JSONStore {
	return &JSONStore{
		path:   path,
		logger: logger,
	}
}

// load reads and sanitizes the document. A missing file yields an empty
// document; an unparseable file is moved aside to a .corrupt sidecar so
// the data survives for inspection and the app keeps working.
func (s *JSONStore) load() (models.Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.NewDocument(), nil
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to read store file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		corruptPath := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, corruptPath); renameErr == nil {
			s.logger.Warn("Store file is not valid JSON, moved aside",
				zap.String("path", s.path),
				zap.String("backup", corruptPath),
				zap.Error(err))
		} else {
			s.logger.Warn("Store file is not valid JSON and could not be moved aside",
				zap.String("path", s.path),
				zap.Error(err))
		}
		return models.NewDocument(), nil
	}

	doc, dropped := validation.SanitizeDocument(raw)
	if dropped > 0 {
		s.logger.Warn("Dropped invalid entries while loading store",
			zap.String("path", s.path),
			zap.Int("dropped", dropped))
	}
	return doc, nil
}

// save atomically writes the document: temp file in the same directory,
// then rename.
func (s *JSONStore) save(doc models.Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store document: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// SaveEntry validates and stores the entry, overwriting any existing
// entry for the date.
func (s *JSONStore) SaveEntry(date string, entry models.Entry) error {
	if !validation.IsValidDateString(date) {
		return fmt.Errorf("invalid date key: %s", date)
	}
	validated, ok := validation.ValidateEntry(entry.Raw())
	if !ok {
		return fmt.Errorf("entry for %s failed validation", date)
	}

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Entries[date] = validated
	return s.save(doc)
}

// Entry returns the validated entry for the date, if present.
func (s *JSONStore) Entry(date string) (models.Entry, bool, error) {
	if !validation.IsValidDateString(date) {
		return models.Entry{}, false, nil
	}
	doc, err := s.load()
	if err != nil {
		return models.Entry{}, false, err
	}
	entry, ok := doc.Entries[date]
	return entry, ok, nil
}

// DeleteEntry removes the entry for the date if it exists.
func (s *JSONStore) DeleteEntry(date string) error {
	if !validation.IsValidDateString(date) {
		return nil
	}
	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Entries[date]; !ok {
		return nil
	}
	delete(doc.Entries, date)
	return s.save(doc)
}

// MonthEntries returns all entries whose date key falls in the month.
func (s *JSONStore) MonthEntries(year int, month time.Month) (map[string]models.Entry, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	prefix := monthPrefix(year, month)
	result := make(map[string]models.Entry)
	for key, entry := range doc.Entries {
		if strings.HasPrefix(key, prefix) {
			result[key] = entry
		}
	}
	return result, nil
}

// AllEntries returns every stored entry.
func (s *JSONStore) AllEntries() (map[string]models.Entry, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

// ClearMonth removes all entries of the month.
func (s *JSONStore) ClearMonth(year int, month time.Month) (int, error) {
	doc, err := s.load()
	if err != nil {
		return 0, err
	}

	prefix := monthPrefix(year, month)
	removed := 0
	for key := range doc.Entries {
		if strings.HasPrefix(key, prefix) {
			delete(doc.Entries, key)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(doc)
}

// SaveUserInfo overwrites the user-info record.
func (s *JSONStore) SaveUserInfo(info models.UserInfo) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.UserInfo = validation.ValidateUserInfo(map[string]any{
		"nachname":  info.LastName,
		"vorname":   info.FirstName,
		"persNr":    info.PersonnelNo,
		"abteilung": info.Department,
	})
	return s.save(doc)
}

// UserInfo returns the sanitized user-info record.
func (s *JSONStore) UserInfo() (models.UserInfo, error) {
	doc, err := s.load()
	if err != nil {
		return models.UserInfo{}, err
	}
	return doc.UserInfo, nil
}

// Close is a no-op for the file-backed store.
func (s *JSONStore) Close() error {
	return nil
}
