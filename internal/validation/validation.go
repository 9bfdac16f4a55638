// Package validation is the sole gate between raw, potentially corrupted
// records and the persistent store. Every function is pure and total:
// malformed input yields a failure indicator or a sanitized default,
// never a panic. The gate is applied on write and re-applied on read.
package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/timesheet"
)

// Field length limits for user info.
const (
	MaxLastNameLen    = 100
	MaxFirstNameLen   = 100
	MaxPersonnelNoLen = 50
	MaxDepartmentLen  = 100
)

// NumberLimits configures SanitizeNumber clamping.
type NumberLimits struct {
	Min     int
	Max     int
	Default int
}

// Numeric limits for entry and query fields.
var (
	BreakLimits = NumberLimits{Min: 0, Max: 480}
	YearLimits  = NumberLimits{Min: 2000, Max: 2100}
	MonthLimits = NumberLimits{Min: 1, Max: 12}
)

// MaxDurationHours caps the derived duration accepted on load.
const MaxDurationHours = 24

// IsValidDateString reports whether s is a YYYY-MM-DD string whose
// components form a real calendar date within the supported year range.
// The check reconstructs the date from its components instead of parsing
// through a timezone, so it cannot shift across day boundaries.
func IsValidDateString(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, ch := range s {
		if i == 4 || i == 7 {
			continue
		}
		if ch < '0' || ch > '9' {
			return false
		}
	}

	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])

	if year < YearLimits.Min || year > YearLimits.Max {
		return false
	}
	if month < 1 || month > 12 || day < 1 {
		return false
	}

	// time.Date normalizes overflow (Feb 30 -> Mar 2), so a changed
	// component exposes an impossible date.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return date.Year() == year && date.Month() == time.Month(month) && date.Day() == day
}

// IsValidTimeString reports whether s is a strict HH:MM string with
// zero-padded hours 00-23 and minutes 00-59.
func IsValidTimeString(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for i, ch := range s {
		if i == 2 {
			continue
		}
		if ch < '0' || ch > '9' {
			return false
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')
	return hours <= 23 && minutes <= 59
}

// SanitizeString coerces v to a trimmed string truncated to maxLen runes.
// When the trimmed result is empty and allowEmpty is false, the empty
// string is returned and the caller treats it as "no value".
func SanitizeString(v any, maxLen int, allowEmpty bool) string {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			s = ""
		} else {
			s = toStringFallback(v)
		}
	}
	s = strings.TrimSpace(s)
	if !allowEmpty && s == "" {
		return ""
	}
	if maxLen > 0 {
		runes := []rune(s)
		if len(runes) > maxLen {
			s = string(runes[:maxLen])
		}
	}
	return s
}

func toStringFallback(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// SanitizeBoolean coerces v to a boolean: true for boolean true and the
// strings "true"/"1", standard truthiness for numbers, false otherwise.
func SanitizeBoolean(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		lower := strings.ToLower(t)
		return lower == "true" || t == "1"
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}

// SanitizeNumber coerces v to an integer clamped into the limits. Values
// that cannot be parsed as a number yield the configured default. Range
// violations are clamped, not rejected.
func SanitizeNumber(v any, limits NumberLimits) int {
	num, ok := toInt(v)
	if !ok {
		return limits.Default
	}
	if num < limits.Min {
		return limits.Min
	}
	if num > limits.Max {
		return limits.Max
	}
	return num
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ValidateEntry normalizes a raw record into an Entry. An absent or
// unknown type is a hard reject; every other malformed field is simply
// omitted so one bad field does not discard the whole record. For
// home-office entries the duration is re-derived from begin/end/break
// whenever both times are present; a stored duration value is only
// accepted as a fallback and only within [0, 24].
func ValidateEntry(raw map[string]any) (models.Entry, bool) {
	if raw == nil {
		return models.Entry{}, false
	}

	typeStr, _ := raw["type"].(string)
	entryType := models.EntryType(typeStr)
	if !entryType.IsValid() {
		return models.Entry{}, false
	}

	entry := models.Entry{Type: entryType}

	if v, present := raw["aufgezeichnetAm"]; present {
		if s, ok := v.(string); ok && IsValidDateString(s) {
			entry.RecordedOn = s
		}
	}

	if entryType != models.TypeHomeOffice {
		return entry, true
	}

	if s, ok := raw["beginn"].(string); ok && IsValidTimeString(s) {
		entry.Begin = s
	}
	if s, ok := raw["ende"].(string); ok && IsValidTimeString(s) {
		entry.End = s
	}

	entry.IsHalfDay = SanitizeBoolean(raw["isHalfDay"])

	if v, present := raw["pause"]; present {
		pause := SanitizeNumber(v, BreakLimits)
		if entry.IsHalfDay {
			pause = 0
		}
		entry.BreakMinutes = models.IntPtr(pause)
	}

	if entry.Begin != "" && entry.End != "" {
		if hours, ok := timesheet.CalculateDuration(entry.Begin, entry.End, entry.BreakMins(), entry.IsHalfDay); ok {
			entry.Duration = models.FloatPtr(hours)
		}
	} else if v, present := raw["dauer"]; present {
		if hours, ok := toFloat(v); ok && hours >= 0 && hours <= MaxDurationHours {
			entry.Duration = models.FloatPtr(hours)
		}
	}

	return entry, true
}

// ValidateUserInfo sanitizes the four identity fields. It always
// succeeds; empty fields are allowed.
func ValidateUserInfo(raw map[string]any) models.UserInfo {
	if raw == nil {
		return models.UserInfo{}
	}
	return models.UserInfo{
		LastName:    SanitizeString(raw["nachname"], MaxLastNameLen, true),
		FirstName:   SanitizeString(raw["vorname"], MaxFirstNameLen, true),
		PersonnelNo: SanitizeString(raw["persNr"], MaxPersonnelNoLen, true),
		Department:  SanitizeString(raw["abteilung"], MaxDepartmentLen, true),
	}
}

// SanitizeDocument validates a whole persisted document. Entries with an
// invalid date key or failing validation are dropped silently; the count
// of dropped records is returned so the store layer can log it.
func SanitizeDocument(raw map[string]any) (models.Document, int) {
	doc := models.NewDocument()
	if raw == nil {
		return doc, 0
	}

	if ui, ok := raw["userInfo"].(map[string]any); ok {
		doc.UserInfo = ValidateUserInfo(ui)
	}

	dropped := 0
	if entries, ok := raw["entries"].(map[string]any); ok {
		for key, v := range entries {
			if !IsValidDateString(key) {
				dropped++
				continue
			}
			rawEntry, ok := v.(map[string]any)
			if !ok {
				dropped++
				continue
			}
			entry, ok := ValidateEntry(rawEntry)
			if !ok {
				dropped++
				continue
			}
			doc.Entries[key] = entry
		}
	}

	return doc, dropped
}
