package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/zeiterfassung/internal/calendar"
	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/storage"
)

func newTestExporter(t *testing.T) (*Exporter, storage.Store) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data.json"), zap.NewNop())
	return NewExporter(store, calendar.New(), zap.NewNop()), store
}

func seedMarch(t *testing.T, store storage.Store) {
	t.Helper()
	require.NoError(t, store.SaveUserInfo(models.UserInfo{LastName: "Müller", FirstName: "Anna"}))
	require.NoError(t, store.SaveEntry("2025-03-03", models.Entry{
		Type:  models.TypeHomeOffice,
		Begin: "08:30", End: "16:00",
		BreakMinutes: models.IntPtr(30),
	}))
	require.NoError(t, store.SaveEntry("2025-03-04", models.Entry{Type: models.TypeVacation}))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		lastName string
		want     string
	}{
		{"Plain name", "Müller", "Zeiterfassung_Müller_2025_03.xlsx"},
		{"Empty name falls back", "", "Zeiterfassung_Export_2025_03.xlsx"},
		{"Unsafe characters replaced", `Mü/ll\er?`, "Zeiterfassung_Mü_ll_er__2025_03.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.lastName, 2025, time.March, "xlsx"); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.lastName, got, tt.want)
			}
		})
	}
}

func TestLoadMonth(t *testing.T) {
	exporter, store := newTestExporter(t)
	seedMarch(t, store)

	data, err := exporter.loadMonth(2025, time.March)
	require.NoError(t, err)

	require.Len(t, data.Rows, 31)
	assert.InDelta(t, 7.0, data.TotalHours, 1e-9)

	// 2025-03-03 is the third row.
	row := data.Rows[2]
	assert.Equal(t, "03.03.2025", row.Date)
	assert.Equal(t, "Montag", row.Weekday)
	assert.Equal(t, "08:30", row.Begin)
	assert.Equal(t, "16:00", row.End)
	assert.Equal(t, "30", row.Break)
	assert.Equal(t, "7,0", row.Duration)
	assert.Equal(t, "Homeoffice", row.Absence)

	assert.Equal(t, "Urlaub", data.Rows[3].Absence)
	assert.True(t, data.Rows[0].NonWorking, "2025-03-01 is a Saturday")
}

func TestLoadMonthMarksHolidays(t *testing.T) {
	exporter, _ := newTestExporter(t)

	data, err := exporter.loadMonth(2025, time.May)
	require.NoError(t, err)

	// 2025-05-01 is Tag der Arbeit and has no entry.
	row := data.Rows[0]
	assert.Equal(t, "Feiertag", row.Absence)
	assert.True(t, row.NonWorking)
	assert.False(t, row.HasEntry)
}

func TestExcelExport(t *testing.T) {
	exporter, store := newTestExporter(t)
	seedMarch(t, store)

	dir := t.TempDir()
	path, err := exporter.Excel(2025, time.March, dir)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, filepath.Join(dir, "Zeiterfassung_Müller_2025_03.xlsx"), path)
}

func TestPDFExport(t *testing.T) {
	exporter, store := newTestExporter(t)
	seedMarch(t, store)

	dir := t.TempDir()
	path, err := exporter.PDF(2025, time.March, dir)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, filepath.Join(dir, "Zeiterfassung_Müller_2025_03.pdf"), path)
}
