package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/validation"
)

// entryRecord is the SQLite row shape for one day's entry. The date key
// is the primary key, so saving an entry for an existing date overwrites
// it.
type entryRecord struct {
	Date       string `gorm:"primaryKey;size:10"`
	Type       string `gorm:"size:20;not null"`
	RecordedOn string `gorm:"size:10"`
	Begin      string `gorm:"size:5"`
	End        string `gorm:"size:5"`
	Pause      *int
	Duration   *float64
	IsHalfDay  bool      `gorm:"not null;default:false"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (entryRecord) TableName() string {
	return "entries"
}

// raw converts the row back into the untyped shape the validation gate
// accepts, so reads pass through the same gate as the JSON backend.
func (r entryRecord) raw() map[string]any {
	raw := map[string]any{
		"type": r.Type,
	}
	if r.RecordedOn != "" {
		raw["aufgezeichnetAm"] = r.RecordedOn
	}
	if r.Begin != "" {
		raw["beginn"] = r.Begin
	}
	if r.End != "" {
		raw["ende"] = r.End
	}
	if r.Pause != nil {
		raw["pause"] = *r.Pause
	}
	if r.Duration != nil {
		raw["dauer"] = *r.Duration
	}
	if r.IsHalfDay {
		raw["isHalfDay"] = true
	}
	return raw
}

// userInfoRecord is the singleton identity row (always id 1).
type userInfoRecord struct {
	ID          uint   `gorm:"primaryKey"`
	LastName    string `gorm:"size:100"`
	FirstName   string `gorm:"size:100"`
	PersonnelNo string `gorm:"size:50"`
	Department  string `gorm:"size:100"`
}

func (userInfoRecord) TableName() string {
	return "user_info"
}

// SQLiteStore persists entries in a SQLite database via gorm.
type SQLiteStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (creating if needed) the SQLite database at path
// and migrates the schema.
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&entryRecord{}, &userInfoRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

func recordFromEntry(date string, e models.Entry) entryRecord {
	return entryRecord{
		Date:       date,
		Type:       string(e.Type),
		RecordedOn: e.RecordedOn,
		Begin:      e.Begin,
		End:        e.End,
		Pause:      e.BreakMinutes,
		Duration:   e.Duration,
		IsHalfDay:  e.IsHalfDay,
	}
}

// SaveEntry validates and stores the entry, overwriting any existing
// entry for the date.
func (s *SQLiteStore) SaveEntry(date string, entry models.Entry) error {
	if !validation.IsValidDateString(date) {
		return fmt.Errorf("invalid date key: %s", date)
	}
	validated, ok := validation.ValidateEntry(entry.Raw())
	if !ok {
		return fmt.Errorf("entry for %s failed validation", date)
	}

	record := recordFromEntry(date, validated)
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

// Entry returns the validated entry for the date, if present. Rows that
// no longer pass validation are treated as absent.
func (s *SQLiteStore) Entry(date string) (models.Entry, bool, error) {
	if !validation.IsValidDateString(date) {
		return models.Entry{}, false, nil
	}

	var record entryRecord
	err := s.db.First(&record, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Entry{}, false, nil
	}
	if err != nil {
		return models.Entry{}, false, fmt.Errorf("failed to load entry: %w", err)
	}

	entry, ok := validation.ValidateEntry(record.raw())
	if !ok {
		s.logger.Warn("Dropping invalid entry on read", zap.String("date", date))
		return models.Entry{}, false, nil
	}
	return entry, true, nil
}

// DeleteEntry removes the entry for the date if it exists.
func (s *SQLiteStore) DeleteEntry(date string) error {
	if !validation.IsValidDateString(date) {
		return nil
	}
	if err := s.db.Delete(&entryRecord{}, "date = ?", date).Error; err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// collect validates a set of rows into an entry map, logging how many
// rows were dropped.
func (s *SQLiteStore) collect(records []entryRecord) map[string]models.Entry {
	result := make(map[string]models.Entry, len(records))
	dropped := 0
	for _, record := range records {
		if !validation.IsValidDateString(record.Date) {
			dropped++
			continue
		}
		entry, ok := validation.ValidateEntry(record.raw())
		if !ok {
			dropped++
			continue
		}
		result[record.Date] = entry
	}
	if dropped > 0 {
		s.logger.Warn("Dropped invalid entries while loading store", zap.Int("dropped", dropped))
	}
	return result
}

// MonthEntries returns all validated entries of the month.
func (s *SQLiteStore) MonthEntries(year int, month time.Month) (map[string]models.Entry, error) {
	var records []entryRecord
	prefix := monthPrefix(year, month)
	if err := s.db.Where("date LIKE ?", prefix+"%").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load month entries: %w", err)
	}
	return s.collect(records), nil
}

// AllEntries returns every validated entry.
func (s *SQLiteStore) AllEntries() (map[string]models.Entry, error) {
	var records []entryRecord
	if err := s.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return s.collect(records), nil
}

// ClearMonth removes all entries of the month.
func (s *SQLiteStore) ClearMonth(year int, month time.Month) (int, error) {
	prefix := monthPrefix(year, month)
	result := s.db.Where("date LIKE ?", prefix+"%").Delete(&entryRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear month: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

// SaveUserInfo overwrites the singleton user-info row.
func (s *SQLiteStore) SaveUserInfo(info models.UserInfo) error {
	sanitized := validation.ValidateUserInfo(map[string]any{
		"nachname":  info.LastName,
		"vorname":   info.FirstName,
		"persNr":    info.PersonnelNo,
		"abteilung": info.Department,
	})
	record := userInfoRecord{
		ID:          1,
		LastName:    sanitized.LastName,
		FirstName:   sanitized.FirstName,
		PersonnelNo: sanitized.PersonnelNo,
		Department:  sanitized.Department,
	}
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save user info: %w", err)
	}
	return nil
}

// UserInfo returns the sanitized user-info record.
func (s *SQLiteStore) UserInfo() (models.UserInfo, error) {
	var record userInfoRecord
	err := s.db.First(&record, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserInfo{}, nil
	}
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("failed to load user info: %w", err)
	}
	return validation.ValidateUserInfo(map[string]any{
		"nachname":  record.LastName,
		"vorname":   record.FirstName,
		"persNr":    record.PersonnelNo,
		"abteilung": record.Department,
	}), nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
