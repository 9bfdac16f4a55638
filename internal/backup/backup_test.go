package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, storage.Store) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data.json"), zap.NewNop())
	return NewManager(store, zap.NewNop()), store
}

func TestCreateAndRestore(t *testing.T) {
	manager, store := newTestManager(t)

	require.NoError(t, store.SaveUserInfo(models.UserInfo{LastName: "Müller", FirstName: "Anna"}))
	require.NoError(t, store.SaveEntry("2025-03-03", models.Entry{
		Type:         models.TypeHomeOffice,
		Begin:        "08:30",
		End:          "16:00",
		BreakMinutes: models.IntPtr(30),
	}))
	require.NoError(t, store.SaveEntry("2025-03-04", models.Entry{Type: models.TypeVacation}))

	dir := t.TempDir()
	path, err := manager.Create(dir)
	require.NoError(t, err)
	assert.FileExists(t, path)

	// Restore into a fresh store.
	freshStore := storage.NewJSONStore(filepath.Join(t.TempDir(), "data.json"), zap.NewNop())
	freshManager := NewManager(freshStore, zap.NewNop())

	restored, skipped, err := freshManager.Restore(path)
	require.NoError(t, err)
	assert.Equal(t, 2, restored)
	assert.Equal(t, 0, skipped)

	entry, ok, err := freshStore.Entry("2025-03-03")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7.0, entry.DurationHours())

	info, err := freshStore.UserInfo()
	require.NoError(t, err)
	assert.Equal(t, "Müller", info.LastName)
}

func TestRestoreSkipsTamperedRecords(t *testing.T) {
	manager, store := newTestManager(t)

	snapshot := map[string]any{
		"userInfo": map[string]any{"nachname": "Müller"},
		"entries": map[string]any{
			"2025-03-03": map[string]any{"type": "urlaub"},
			"2025-03-04": map[string]any{"type": "feierabend"}, // unknown type
			"2025-99-99": map[string]any{"type": "urlaub"},     // impossible date
		},
		"timestamp": "2025-03-05T12:00:00Z",
		"version":   Version,
	}
	data, err := json.Marshal(snapshot)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	restored, skipped, err := manager.Restore(path)
	require.NoError(t, err)
	assert.Equal(t, 1, restored)
	assert.Equal(t, 2, skipped)

	_, ok, err := store.Entry("2025-03-03")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRestoreRejectsInvalidJSON(t *testing.T) {
	manager, _ := newTestManager(t)

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, _, err := manager.Restore(path)
	assert.Error(t, err)
}

func TestRestoreMissingFile(t *testing.T) {
	manager, _ := newTestManager(t)

	_, _, err := manager.Restore(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
