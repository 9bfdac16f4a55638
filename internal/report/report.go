// Package report computes monthly and yearly statistics over the stored
// entries and renders them as plain-text reports.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/username/zeiterfassung/internal/calendar"
	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/storage"
	"github.com/username/zeiterfassung/internal/timesheet"
	"github.com/username/zeiterfassung/pkg/dateutil"
)

// Stats aggregates one month (or a whole year) of entries. Day counts per
// absence category are plain counts; home-office days split into full
// days and half days so the average stays per worked day.
type Stats struct {
	TotalDays      int
	WorkingDays    int
	HomeOffice     int
	HomeOfficeHalf float64
	Vacation       int
	Sick           int
	ChildSick      int
	Other          int
	FlexTime       int
	TimeAccount    int
	TotalHours     float64
	AverageHours   float64
	OvertimeHours  float64
}

// HomeOfficeDays returns full plus half home-office days.
func (s Stats) HomeOfficeDays() float64 {
	return float64(s.HomeOffice) + s.HomeOfficeHalf
}

// MonthlyReport is the statistics of one month.
type MonthlyReport struct {
	Year    int
	Month   time.Month
	Stats   Stats
	Entries int
}

// YearlyReport is twelve monthly reports plus their totals.
type YearlyReport struct {
	Year   int
	Months []MonthlyReport
	Totals Stats
}

// ComputeMonthlyStats aggregates the entries of one month. workingDays is
// the calendar's working-day count for the month; overtimeThreshold is
// the per-day hour limit above which time counts as overtime.
func ComputeMonthlyStats(entries map[string]models.Entry, totalDays, workingDays int, overtimeThreshold float64) Stats {
	stats := Stats{
		TotalDays:   totalDays,
		WorkingDays: workingDays,
	}

	for _, entry := range entries {
		switch entry.Type {
		case models.TypeHomeOffice:
			if entry.IsHalfDay {
				stats.HomeOfficeHalf += 0.5
			} else {
				stats.HomeOffice++
			}
			hours := entry.DurationHours()
			stats.TotalHours += hours
			if hours > overtimeThreshold {
				stats.OvertimeHours += hours - overtimeThreshold
			}
		case models.TypeVacation:
			stats.Vacation++
		case models.TypeSick:
			stats.Sick++
		case models.TypeChildSick:
			stats.ChildSick++
		case models.TypeOther:
			stats.Other++
		case models.TypeFlexTime:
			stats.FlexTime++
		case models.TypeTimeAccount:
			stats.TimeAccount++
		}
	}

	if days := stats.HomeOfficeDays(); days > 0 {
		stats.AverageHours = stats.TotalHours / days
	}

	return stats
}

// Reporter builds reports from the store and the holiday calendar.
type Reporter struct {
	store             storage.Store
	cal               *calendar.Calendar
	overtimeThreshold float64
}

// NewReporter creates a Reporter. overtimeThreshold is the full-day hour
// limit; hours beyond it count as overtime.
func NewReporter(store storage.Store, cal *calendar.Calendar, overtimeThreshold float64) *Reporter {
	return &Reporter{
		store:             store,
		cal:               cal,
		overtimeThreshold: overtimeThreshold,
	}
}

// Monthly builds the report for one month.
func (r *Reporter) Monthly(year int, month time.Month) (MonthlyReport, error) {
	entries, err := r.store.MonthEntries(year, month)
	if err != nil {
		return MonthlyReport{}, fmt.Errorf("failed to load entries for %d-%02d: %w", year, month, err)
	}

	monthInfo := r.cal.GetMonthInfo(year, month)
	stats := ComputeMonthlyStats(entries, len(monthInfo.Days), monthInfo.WorkDays, r.overtimeThreshold)

	return MonthlyReport{
		Year:    year,
		Month:   month,
		Stats:   stats,
		Entries: len(entries),
	}, nil
}

// Yearly builds twelve monthly reports and sums them. The yearly average
// is recomputed from the yearly totals, not averaged over months.
func (r *Reporter) Yearly(year int) (YearlyReport, error) {
	report := YearlyReport{
		Year:   year,
		Months: make([]MonthlyReport, 0, 12),
	}

	for month := time.January; month <= time.December; month++ {
		monthly, err := r.Monthly(year, month)
		if err != nil {
			return YearlyReport{}, err
		}
		report.Months = append(report.Months, monthly)

		report.Totals.TotalDays += monthly.Stats.TotalDays
		report.Totals.WorkingDays += monthly.Stats.WorkingDays
		report.Totals.HomeOffice += monthly.Stats.HomeOffice
		report.Totals.HomeOfficeHalf += monthly.Stats.HomeOfficeHalf
		report.Totals.Vacation += monthly.Stats.Vacation
		report.Totals.Sick += monthly.Stats.Sick
		report.Totals.ChildSick += monthly.Stats.ChildSick
		report.Totals.Other += monthly.Stats.Other
		report.Totals.FlexTime += monthly.Stats.FlexTime
		report.Totals.TimeAccount += monthly.Stats.TimeAccount
		report.Totals.TotalHours += monthly.Stats.TotalHours
		report.Totals.OvertimeHours += monthly.Stats.OvertimeHours
	}

	if days := report.Totals.HomeOfficeDays(); days > 0 {
		report.Totals.AverageHours = report.Totals.TotalHours / days
	}

	return report, nil
}

// FormatMonthly renders the monthly report as text.
func (r *Reporter) FormatMonthly(year int, month time.Month) (string, error) {
	monthly, err := r.Monthly(year, month)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MONATSBERICHT - %s %d\n", dateutil.GermanMonthName(month), year)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	writeStats(&b, monthly.Stats, false)
	return b.String(), nil
}

// FormatYearly renders the yearly report as text, with a per-month
// breakdown of the months that have entries.
func (r *Reporter) FormatYearly(year int) (string, error) {
	yearly, err := r.Yearly(year)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "JAHRESBERICHT - %d\n", year)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	b.WriteString("GESAMTSTATISTIK:\n")
	writeStats(&b, yearly.Totals, true)

	b.WriteString("\nMONATLICHE AUFSCHLÜSSELUNG:\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, monthly := range yearly.Months {
		if monthly.Entries == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s %d:\n", dateutil.GermanMonthName(monthly.Month), year)
		fmt.Fprintf(&b, "  Home Office: %s Tage\n", timesheet.FormatNumber(monthly.Stats.HomeOfficeDays(), 1))
		fmt.Fprintf(&b, "  Stunden: %s Std\n", timesheet.FormatNumber(monthly.Stats.TotalHours, 1))
	}
	return b.String(), nil
}

func writeStats(b *strings.Builder, s Stats, yearly bool) {
	fmt.Fprintf(b, "Arbeitstage: %d\n", s.WorkingDays)
	fmt.Fprintf(b, "Home Office (Ganztag): %d Tage\n", s.HomeOffice)
	fmt.Fprintf(b, "Home Office (Halbtag): %s Tage\n", timesheet.FormatNumber(s.HomeOfficeHalf, 1))
	fmt.Fprintf(b, "Gesamt Home Office: %s Tage\n", timesheet.FormatNumber(s.HomeOfficeDays(), 1))
	fmt.Fprintf(b, "Gesamtstunden: %s Stunden\n", timesheet.FormatNumber(s.TotalHours, 1))
	fmt.Fprintf(b, "Durchschnitt pro Tag: %s Stunden\n", timesheet.FormatNumber(s.AverageHours, 1))
	if s.OvertimeHours > 0 {
		label := "Überstunden"
		if yearly {
			label = "Überstunden gesamt"
		}
		fmt.Fprintf(b, "%s: %s Stunden\n", label, timesheet.FormatNumber(s.OvertimeHours, 1))
	}
	fmt.Fprintf(b, "Urlaub: %d Tage\n", s.Vacation)
	fmt.Fprintf(b, "Krank: %d Tage\n", s.Sick)
	fmt.Fprintf(b, "Kind krank: %d Tage\n", s.ChildSick)
	fmt.Fprintf(b, "Sonstiges: %d Tage\n", s.Other)
	fmt.Fprintf(b, "Gleitzeit: %d Tage\n", s.FlexTime)
	fmt.Fprintf(b, "AZK: %d Tage\n", s.TimeAccount)
}

// SortedDates returns the entry dates in ascending order. Exports and
// timesheet listings rely on this for stable output.
func SortedDates(entries map[string]models.Entry) []string {
	dates := make([]string, 0, len(entries))
	for date := range entries {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
