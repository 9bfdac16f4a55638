// Package backup writes and restores JSON snapshots of the full data set.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/storage"
	"github.com/username/zeiterfassung/internal/validation"
	"github.com/username/zeiterfassung/pkg/dateutil"
)

// Version is stamped into every snapshot so a restore can tell which
// release wrote it.
const Version = "1.0.0"

// Snapshot is the backup file format: the full data set plus creation
// metadata. Entries use the same wire shape as the store document.
type Snapshot struct {
	UserInfo  models.UserInfo         `json:"userInfo"`
	Entries   map[string]models.Entry `json:"entries"`
	Timestamp string                  `json:"timestamp"`
	Version   string                  `json:"version"`
}

// Manager creates and restores snapshots against a store.
type Manager struct {
	store  storage.Store
	logger *zap.Logger
}

// NewManager creates a backup Manager.
func NewManager(store storage.Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// FileName returns the snapshot file name for the given day, for example
// zeiterfassung-backup-2026-08-29.json.
func FileName(date time.Time) string {
	return fmt.Sprintf("zeiterfassung-backup-%s.json", dateutil.FormatDate(date))
}

// Create writes a snapshot of the current data set into dir and returns
// the path of the written file.
func (m *Manager) Create(dir string) (string, error) {
	userInfo, err := m.store.UserInfo()
	if err != nil {
		return "", fmt.Errorf("failed to load user info: %w", err)
	}
	entries, err := m.store.AllEntries()
	if err != nil {
		return "", fmt.Errorf("failed to load entries: %w", err)
	}

	snapshot := Snapshot{
		UserInfo:  userInfo,
		Entries:   entries,
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   Version,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	path := filepath.Join(dir, FileName(time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	m.logger.Info("Backup created",
		zap.String("path", path),
		zap.Int("entries", len(entries)))
	return path, nil
}

// Restore reads a snapshot file and writes its records into the store.
// Every record passes through the validation gate; records that fail it
// are skipped and counted, so a tampered backup degrades instead of
// aborting the restore. It returns how many entries were restored and
// how many were skipped.
func (m *Manager) Restore(path string) (restored, skipped int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read backup file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, 0, fmt.Errorf("backup file is not valid JSON: %w", err)
	}

	doc, dropped := validation.SanitizeDocument(raw)
	skipped = dropped

	if ui, ok := raw["userInfo"].(map[string]any); ok && len(ui) > 0 {
		if err := m.store.SaveUserInfo(doc.UserInfo); err != nil {
			return 0, skipped, fmt.Errorf("failed to restore user info: %w", err)
		}
	}

	for date, entry := range doc.Entries {
		if err := m.store.SaveEntry(date, entry); err != nil {
			m.logger.Warn("Skipping entry that failed to restore",
				zap.String("date", date),
				zap.Error(err))
			skipped++
			continue
		}
		restored++
	}

	m.logger.Info("Backup restored",
		zap.String("path", path),
		zap.Int("restored", restored),
		zap.Int("skipped", skipped))
	return restored, skipped, nil
}
