// Package export renders monthly timesheets as Excel workbooks and PDF
// documents, one row per calendar day of the month.
package export

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/username/zeiterfassung/internal/calendar"
	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/storage"
	"github.com/username/zeiterfassung/internal/timesheet"
	"github.com/username/zeiterfassung/pkg/dateutil"
)

// DocumentTitle is printed at the top of every exported timesheet.
const DocumentTitle = "Vorlage zur Dokumentation der täglichen Arbeitszeit"

// Column headers of the timesheet table.
var columnHeaders = []string{
	"Datum",
	"Wochentag",
	"Beginn (Uhrzeit)",
	"Pause (Dauer in Minuten)",
	"Ende (Uhrzeit)",
	"Dauer",
	"Abwesenheitsgrund*",
	"aufgezeichnet am",
}

// absenceCodes is the legend printed under the table.
var absenceCodes = []string{
	"K - Krank",
	"TU - Urlaub",
	"F - Feiertag",
	"GLZ - Gleitzeit",
	"AZK - Arbeitszeitkonto",
}

// row is one rendered calendar day of the timesheet.
type row struct {
	Date       string // DD.MM.YYYY
	Weekday    string
	Begin      string
	Break      string
	End        string
	Duration   string
	Absence    string
	RecordedOn string

	Type       models.EntryType // empty when no entry exists
	HasEntry   bool
	NonWorking bool
}

// monthData is everything both exporters need for one month.
type monthData struct {
	Year       int
	Month      time.Month
	UserInfo   models.UserInfo
	Rows       []row
	TotalHours float64
}

// Exporter renders timesheets from the store and the holiday calendar.
type Exporter struct {
	store  storage.Store
	cal    *calendar.Calendar
	logger *zap.Logger
}

// NewExporter creates an Exporter.
func NewExporter(store storage.Store, cal *calendar.Calendar, logger *zap.Logger) *Exporter {
	return &Exporter{store: store, cal: cal, logger: logger}
}

// loadMonth builds the per-day rows of the month. Days without an entry
// still get a row; holidays without an entry are marked "Feiertag".
func (e *Exporter) loadMonth(year int, month time.Month) (monthData, error) {
	userInfo, err := e.store.UserInfo()
	if err != nil {
		return monthData{}, fmt.Errorf("failed to load user info: %w", err)
	}
	entries, err := e.store.MonthEntries(year, month)
	if err != nil {
		return monthData{}, fmt.Errorf("failed to load entries: %w", err)
	}

	data := monthData{
		Year:     year,
		Month:    month,
		UserInfo: userInfo,
	}

	daysInMonth := dateutil.DaysInMonth(year, month)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		key := dateutil.FormatDateKey(year, month, day)

		r := row{
			Date:       dateutil.FormatGermanDate(date),
			Weekday:    dateutil.GermanWeekdayName(date.Weekday()),
			NonWorking: e.cal.IsNonWorkingDay(date),
		}

		entry, hasEntry := entries[key]
		switch {
		case hasEntry:
			r.HasEntry = true
			r.Type = entry.Type
			r.RecordedOn = entry.RecordedOn
			if entry.Type == models.TypeHomeOffice {
				r.Begin = entry.Begin
				r.End = entry.End
				if !entry.IsHalfDay && entry.BreakMinutes != nil {
					r.Break = fmt.Sprintf("%d", *entry.BreakMinutes)
				}
				if entry.Duration != nil {
					r.Duration = timesheet.FormatNumber(*entry.Duration, 1)
					data.TotalHours += *entry.Duration
				}
				if entry.IsHalfDay {
					r.Absence = "0,5 Home Office"
				} else {
					r.Absence = entry.Type.Label()
				}
			} else {
				r.Absence = entry.Type.Label()
			}
		case e.cal.IsHoliday(date):
			r.Absence = "Feiertag"
		}

		data.Rows = append(data.Rows, r)
	}

	return data, nil
}

// FileName builds the export file name from the user's last name, with
// characters that are unsafe in file names replaced.
func FileName(lastName string, year int, month time.Month, ext string) string {
	name := strings.TrimSpace(lastName)
	if name == "" {
		name = "Export"
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("Zeiterfassung_%s_%04d_%02d.%s", name, year, int(month), ext)
}
