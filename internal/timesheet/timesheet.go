package timesheet

import (
	"fmt"
	"strings"
)

// timeToMinutes converts a strict HH:MM string to minutes since midnight.
func timeToMinutes(timeStr string) (int, bool) {
	if len(timeStr) != 5 || timeStr[2] != ':' {
		return 0, false
	}
	for i, ch := range timeStr {
		if i == 2 {
			continue
		}
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	hours := int(timeStr[0]-'0')*10 + int(timeStr[1]-'0')
	minutes := int(timeStr[3]-'0')*10 + int(timeStr[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// CalculateDuration computes the worked hours between begin and end
// (HH:MM), minus the break unless the day is a half day. It returns
// ok=false for unparseable times or when end is not after begin, which
// keeps "invalid range" distinct from a zero-length valid range.
// The result is precise, not rounded to any increment.
func CalculateDuration(begin, end string, breakMinutes int, isHalfDay bool) (float64, bool) {
	startMinutes, ok := timeToMinutes(begin)
	if !ok {
		return 0, false
	}
	endMinutes, ok := timeToMinutes(end)
	if !ok {
		return 0, false
	}
	if endMinutes <= startMinutes {
		return 0, false
	}

	workMinutes := endMinutes - startMinutes
	if !isHalfDay {
		workMinutes -= breakMinutes
	}
	if workMinutes < 0 {
		workMinutes = 0
	}
	return float64(workMinutes) / 60, true
}

// FormatDuration formats hours with one decimal place and a comma as the
// decimal separator. Zero formats as the empty string so that "no entry"
// is distinguishable from a recorded value.
func FormatDuration(hours float64) string {
	if hours == 0 {
		return ""
	}
	return FormatNumber(hours, 1)
}

// FormatNumber formats a number with the German comma decimal separator.
func FormatNumber(value float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, value)
	return strings.Replace(s, ".", ",", 1)
}

// TimeRangesOverlap reports whether two HH:MM ranges on the same day
// strictly overlap. Ranges that merely touch at an endpoint do not
// conflict. Unparseable input never conflicts.
func TimeRangesOverlap(start1, end1, start2, end2 string) bool {
	s1, ok := timeToMinutes(start1)
	if !ok {
		return false
	}
	e1, ok := timeToMinutes(end1)
	if !ok {
		return false
	}
	s2, ok := timeToMinutes(start2)
	if !ok {
		return false
	}
	e2, ok := timeToMinutes(end2)
	if !ok {
		return false
	}

	return s1 < e2 && e1 > s2
}
