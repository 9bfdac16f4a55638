package validation

import (
	"reflect"
	"testing"

	"github.com/username/zeiterfassung/internal/models"
)

func TestIsValidDateString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Valid date", "2024-06-15", true},
		{"Leap day in leap year", "2024-02-29", true},
		{"Leap day in non-leap year", "2023-02-29", false},
		{"Impossible day", "2024-02-30", false},
		{"Month 13", "2024-13-01", false},
		{"Day zero", "2024-06-00", false},
		{"Year below range", "1999-12-31", false},
		{"Year above range", "2101-01-01", false},
		{"Range boundaries", "2000-01-01", true},
		{"Upper boundary", "2100-12-31", true},
		{"Wrong separator", "2024/06/15", false},
		{"Unpadded month", "2024-6-15", false},
		{"Trailing garbage", "2024-06-15x", false},
		{"Empty string", "", false},
		{"Letters in year", "20x4-06-15", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDateString(tt.input); got != tt.want {
				t.Errorf("IsValidDateString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidTimeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Valid time", "08:30", true},
		{"Midnight", "00:00", true},
		{"Last minute of day", "23:59", true},
		{"Hour 24", "24:00", false},
		{"Minute 60", "12:60", false},
		{"Unpadded hour", "8:30", false},
		{"Wrong separator", "08-30", false},
		{"Empty string", "", false},
		{"Letters", "ab:cd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidTimeString(tt.input); got != tt.want {
				t.Errorf("IsValidTimeString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		maxLen     int
		allowEmpty bool
		want       string
	}{
		{"Plain string", "Müller", 100, true, "Müller"},
		{"Trimmed", "  Müller  ", 100, true, "Müller"},
		{"Truncated by runes", "äöüäöü", 3, true, "äöü"},
		{"Number coerced", 42, 100, true, "42"},
		{"Nil becomes empty", nil, 100, true, ""},
		{"Map becomes empty", map[string]any{"x": 1}, 100, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input, tt.maxLen, tt.allowEmpty); got != tt.want {
				t.Errorf("SanitizeString(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeBoolean(t *testing.T) {
	tests := []struct {
		input any
		want  bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", false},
		{1.0, true},
		{0.0, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := SanitizeBoolean(tt.input); got != tt.want {
			t.Errorf("SanitizeBoolean(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		limits NumberLimits
		want   int
	}{
		{"In range", 45, BreakLimits, 45},
		{"Clamped below", -10, BreakLimits, 0},
		{"Clamped above", 9999, BreakLimits, 480},
		{"Float truncated", 30.9, BreakLimits, 30},
		{"String parsed", "60", BreakLimits, 60},
		{"Garbage uses default", "abc", BreakLimits, 0},
		{"Nil uses default", nil, BreakLimits, 0},
		{"Year clamped", 1990, YearLimits, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeNumber(tt.input, tt.limits); got != tt.want {
				t.Errorf("SanitizeNumber(%v, %+v) = %v, want %v", tt.input, tt.limits, got, tt.want)
			}
		})
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name   string
		raw    map[string]any
		want   models.Entry
		wantOK bool
	}{
		{
			name:   "Nil record rejected",
			raw:    nil,
			wantOK: false,
		},
		{
			name:   "Unknown type rejected",
			raw:    map[string]any{"type": "feierabend"},
			wantOK: false,
		},
		{
			name:   "Missing type rejected",
			raw:    map[string]any{"beginn": "08:30"},
			wantOK: false,
		},
		{
			name: "Absence keeps only type and recording date",
			raw: map[string]any{
				"type":            "urlaub",
				"aufgezeichnetAm": "2025-03-01",
				"beginn":          "08:30",
				"dauer":           7.0,
			},
			want:   models.Entry{Type: models.TypeVacation, RecordedOn: "2025-03-01"},
			wantOK: true,
		},
		{
			name: "Home office duration is re-derived from times",
			raw: map[string]any{
				"type":   "homeoffice",
				"beginn": "08:30",
				"ende":   "16:00",
				"pause":  30,
				"dauer":  99.0,
			},
			want: models.Entry{
				Type:         models.TypeHomeOffice,
				Begin:        "08:30",
				End:          "16:00",
				BreakMinutes: models.IntPtr(30),
				Duration:     models.FloatPtr(7.0),
			},
			wantOK: true,
		},
		{
			name: "Half day forces break to zero",
			raw: map[string]any{
				"type":      "homeoffice",
				"beginn":    "08:30",
				"ende":      "12:00",
				"pause":     30,
				"isHalfDay": true,
			},
			want: models.Entry{
				Type:         models.TypeHomeOffice,
				Begin:        "08:30",
				End:          "12:00",
				BreakMinutes: models.IntPtr(0),
				Duration:     models.FloatPtr(3.5),
				IsHalfDay:    true,
			},
			wantOK: true,
		},
		{
			name: "Bad time field is dropped, record survives",
			raw: map[string]any{
				"type":   "homeoffice",
				"beginn": "8:30",
				"ende":   "16:00",
				"dauer":  7.0,
			},
			want: models.Entry{
				Type:     models.TypeHomeOffice,
				End:      "16:00",
				Duration: models.FloatPtr(7.0),
			},
			wantOK: true,
		},
		{
			name: "Stored duration outside range is dropped",
			raw: map[string]any{
				"type":  "homeoffice",
				"dauer": 25.0,
			},
			want:   models.Entry{Type: models.TypeHomeOffice},
			wantOK: true,
		},
		{
			name: "Break is clamped into range",
			raw: map[string]any{
				"type":  "homeoffice",
				"pause": 900,
			},
			want: models.Entry{
				Type:         models.TypeHomeOffice,
				BreakMinutes: models.IntPtr(480),
			},
			wantOK: true,
		},
		{
			name: "Invalid recording date is dropped",
			raw: map[string]any{
				"type":            "krank",
				"aufgezeichnetAm": "2025-02-30",
			},
			want:   models.Entry{Type: models.TypeSick},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValidateEntry(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ValidateEntry(%v) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateEntry(%v) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateEntryIdempotent(t *testing.T) {
	raw := map[string]any{
		"type":            "homeoffice",
		"aufgezeichnetAm": "2025-03-01",
		"beginn":          "08:30",
		"ende":            "16:00",
		"pause":           30,
	}

	first, ok := ValidateEntry(raw)
	if !ok {
		t.Fatal("first validation failed")
	}
	second, ok := ValidateEntry(first.Raw())
	if !ok {
		t.Fatal("second validation failed")
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation is not idempotent: %+v vs %+v", first, second)
	}
}

func TestValidateUserInfo(t *testing.T) {
	info := ValidateUserInfo(map[string]any{
		"nachname":  "  Müller  ",
		"vorname":   "Anna",
		"persNr":    12345,
		"abteilung": nil,
	})

	want := models.UserInfo{
		LastName:    "Müller",
		FirstName:   "Anna",
		PersonnelNo: "12345",
	}
	if !reflect.DeepEqual(info, want) {
		t.Errorf("ValidateUserInfo = %+v, want %+v", info, want)
	}

	empty := ValidateUserInfo(nil)
	if !reflect.DeepEqual(empty, models.UserInfo{}) {
		t.Errorf("ValidateUserInfo(nil) = %+v, want zero value", empty)
	}
}

func TestSanitizeDocument(t *testing.T) {
	raw := map[string]any{
		"userInfo": map[string]any{
			"nachname": "Müller",
		},
		"entries": map[string]any{
			"2025-03-03": map[string]any{"type": "homeoffice", "beginn": "08:30", "ende": "16:00", "pause": 30},
			"2025-03-04": map[string]any{"type": "urlaub"},
			"2025-02-30": map[string]any{"type": "urlaub"},     // impossible date key
			"2025-03-05": map[string]any{"type": "feierabend"}, // unknown type
			"2025-03-06": "not a record",
		},
	}

	doc, dropped := SanitizeDocument(raw)

	if dropped != 3 {
		t.Errorf("SanitizeDocument dropped %d records, want 3", dropped)
	}
	if len(doc.Entries) != 2 {
		t.Errorf("SanitizeDocument kept %d entries, want 2", len(doc.Entries))
	}
	if doc.UserInfo.LastName != "Müller" {
		t.Errorf("SanitizeDocument user info = %+v", doc.UserInfo)
	}
	if entry, ok := doc.Entries["2025-03-03"]; !ok || entry.DurationHours() != 7.0 {
		t.Errorf("SanitizeDocument entry for 2025-03-03 = %+v, ok=%v", entry, ok)
	}
}
