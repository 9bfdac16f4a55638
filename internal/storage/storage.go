package storage

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/username/zeiterfassung/internal/config"
	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/validation"
)

// Store is the persistent-store boundary. Implementations must apply the
// validation gate on every read so that corrupted records are dropped
// instead of surfacing partially; one entry exists per date key and a
// save overwrites it wholesale.
type Store interface {
	// SaveEntry validates and stores the entry under the date key,
	// replacing any existing entry for that date.
	SaveEntry(date string, entry models.Entry) error

	// Entry returns the validated entry for the date, if present.
	Entry(date string) (models.Entry, bool, error)

	// DeleteEntry removes the entry for the date. Deleting a missing or
	// invalid date is not an error.
	DeleteEntry(date string) error

	// MonthEntries returns all validated entries of the month, keyed by
	// date string.
	MonthEntries(year int, month time.Month) (map[string]models.Entry, error)

	// AllEntries returns every validated entry, keyed by date string.
	AllEntries() (map[string]models.Entry, error)

	// ClearMonth removes all entries of the month and returns how many
	// were removed.
	ClearMonth(year int, month time.Month) (int, error)

	// SaveUserInfo overwrites the singleton user-info record.
	SaveUserInfo(info models.UserInfo) error

	// UserInfo returns the sanitized user-info record.
	UserInfo() (models.UserInfo, error)

	Close() error
}

// Open creates the store backend selected by the configuration.
func Open(cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "json":
		return NewJSONStore(cfg.Path, logger), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// monthPrefix builds the "YYYY-MM-" date-key prefix for month scans.
// Year and month are clamped into their valid ranges first.
func monthPrefix(year int, month time.Month) string {
	y := validation.SanitizeNumber(year, validation.YearLimits)
	m := validation.SanitizeNumber(int(month), validation.MonthLimits)
	return fmt.Sprintf("%04d-%02d-", y, m)
}
