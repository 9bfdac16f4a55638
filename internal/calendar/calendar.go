package calendar

import (
	"sync"
	"time"

	"github.com/username/zeiterfassung/pkg/dateutil"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

// DayInfo represents calendar facts for a specific day
type DayInfo struct {
	Date        time.Time
	Type        DayType
	HolidayName string
	Workday     bool
}

// MonthInfo represents calendar facts for a whole month
type MonthInfo struct {
	Year     int
	Month    time.Month
	WorkDays int
	Weekends int
	Holidays int
	Days     []DayInfo
}

// Calendar computes public-holiday and working-day facts for the
// Nordrhein-Westfalen holiday rule set. Holiday sets are memoized per
// year; an entry is written at most once and never invalidated, so
// concurrent reads after the first computation are safe.
type Calendar struct {
	mu    sync.RWMutex
	years map[int]map[string]string // year -> date key -> holiday name
}

// New creates a Calendar with an empty holiday cache.
func New() *Calendar {
	return &Calendar{
		years: make(map[int]map[string]string),
	}
}

// EasterSunday computes the Gregorian Easter Sunday for the given year
// using the anonymous Gauss algorithm.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// computeHolidays builds the NRW holiday set for one year: six fixed-date
// holidays plus five offsets from Easter Sunday.
func computeHolidays(year int) map[string]string {
	easter := EasterSunday(year)

	holidays := map[string]string{
		dateutil.FormatDateKey(year, time.January, 1):   "Neujahr",
		dateutil.FormatDateKey(year, time.May, 1):       "Tag der Arbeit",
		dateutil.FormatDateKey(year, time.October, 3):   "Tag der Deutschen Einheit",
		dateutil.FormatDateKey(year, time.November, 1):  "Allerheiligen",
		dateutil.FormatDateKey(year, time.December, 25): "1. Weihnachtstag",
		dateutil.FormatDateKey(year, time.December, 26): "2. Weihnachtstag",
	}

	easterRelative := []struct {
		offset int
		name   string
	}{
		{-2, "Karfreitag"},
		{1, "Ostermontag"},
		{39, "Christi Himmelfahrt"},
		{50, "Pfingstmontag"},
		{60, "Fronleichnam"},
	}
	for _, h := range easterRelative {
		d := easter.AddDate(0, 0, h.offset)
		holidays[dateutil.FormatDate(d)] = h.name
	}

	return holidays
}

// Holidays returns the holiday set for the year, keyed by YYYY-MM-DD.
// The returned map is shared cache state and must not be modified.
func (c *Calendar) Holidays(year int) map[string]string {
	c.mu.RLock()
	set, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return set
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok = c.years[year]; ok {
		return set
	}
	set = computeHolidays(year)
	c.years[year] = set
	return set
}

// IsHoliday checks if the given date is a public holiday
func (c *Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.HolidayName(date)
	return ok
}

// HolidayName returns the holiday name for the date, if it is one.
func (c *Calendar) HolidayName(date time.Time) (string, bool) {
	name, ok := c.Holidays(date.Year())[dateutil.FormatDate(date)]
	return name, ok
}

// IsWeekend checks if the given date is a Saturday or Sunday
func (c *Calendar) IsWeekend(date time.Time) bool {
	return dateutil.IsWeekend(date)
}

// IsNonWorkingDay checks if the given date is a weekend or a holiday
func (c *Calendar) IsNonWorkingDay(date time.Time) bool {
	return dateutil.IsWeekend(date) || c.IsHoliday(date)
}

// GetDayInfo returns calendar facts for a specific day
func (c *Calendar) GetDayInfo(date time.Time) DayInfo {
	info := DayInfo{Date: date, Type: DayTypeWorkday, Workday: true}

	if name, ok := c.HolidayName(date); ok {
		info.Type = DayTypeHoliday
		info.HolidayName = name
		info.Workday = false
	} else if dateutil.IsWeekend(date) {
		info.Type = DayTypeWeekend
		info.Workday = false
	}

	return info
}

// GetMonthInfo returns calendar facts for every day of the month
func (c *Calendar) GetMonthInfo(year int, month time.Month) MonthInfo {
	daysInMonth := dateutil.DaysInMonth(year, month)

	monthInfo := MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		info := c.GetDayInfo(date)

		switch info.Type {
		case DayTypeWorkday:
			monthInfo.WorkDays++
		case DayTypeWeekend:
			monthInfo.Weekends++
		case DayTypeHoliday:
			monthInfo.Holidays++
		}

		monthInfo.Days = append(monthInfo.Days, info)
	}

	return monthInfo
}

// WorkingDays returns the number of working days in the month
func (c *Calendar) WorkingDays(year int, month time.Month) int {
	return c.GetMonthInfo(year, month).WorkDays
}
