package timesheet

import "fmt"

// Policy holds the advisory duration thresholds. Exceeding them produces
// warnings the user may override; it never blocks persistence outright.
type Policy struct {
	HalfDayMaxHours float64
	FullDayMaxHours float64
	MinBreakMinutes int
}

// DefaultPolicy returns the standard thresholds: 3.5h for half days,
// 7.0h for full days, 30 minutes minimum break.
func DefaultPolicy() Policy {
	return Policy{
		HalfDayMaxHours: 3.5,
		FullDayMaxHours: 7.0,
		MinBreakMinutes: 30,
	}
}

// Check returns advisory warnings for a computed home-office duration.
func (p Policy) Check(hours float64, breakMinutes int, isHalfDay bool) []string {
	var warnings []string

	if !isHalfDay && breakMinutes < p.MinBreakMinutes {
		warnings = append(warnings,
			fmt.Sprintf("break of %d minutes is below the %d minute minimum", breakMinutes, p.MinBreakMinutes))
	}
	if isHalfDay && hours > p.HalfDayMaxHours {
		warnings = append(warnings,
			fmt.Sprintf("half-day duration %s exceeds the %s hour limit",
				FormatNumber(hours, 1), FormatNumber(p.HalfDayMaxHours, 1)))
	}
	if !isHalfDay && hours > p.FullDayMaxHours {
		warnings = append(warnings,
			fmt.Sprintf("duration %s exceeds the %s hour limit",
				FormatNumber(hours, 1), FormatNumber(p.FullDayMaxHours, 1)))
	}

	return warnings
}
