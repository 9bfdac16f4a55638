package dateutil

import (
	"fmt"
	"time"
)

// DateFormat is the canonical date key format used throughout the app.
const DateFormat = "2006-01-02"

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

var germanWeekdays = [...]string{
	"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag",
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// DaysInMonth returns the number of calendar days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(DateFormat)
}

// FormatDateKey builds a YYYY-MM-DD key from components without going
// through time.Time, avoiding timezone-sensitive conversions
func FormatDateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateFormat, dateStr)
}

// FormatGermanDate formats a date as DD.MM.YYYY
func FormatGermanDate(date time.Time) string {
	return date.Format("02.01.2006")
}

// GermanMonthName returns the German name of the month
func GermanMonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return germanMonths[month-1]
}

// GermanWeekdayName returns the German name of the weekday
func GermanWeekdayName(weekday time.Weekday) string {
	return germanWeekdays[weekday]
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}
