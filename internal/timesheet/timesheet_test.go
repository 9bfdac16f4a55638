package timesheet

import "testing"

func TestCalculateDuration(t *testing.T) {
	tests := []struct {
		name      string
		begin     string
		end       string
		breakMins int
		isHalfDay bool
		want      float64
		wantOK    bool
	}{
		{"Full day with break", "08:30", "16:00", 30, false, 7.0, true},
		{"Full day without break deduction on half day", "08:30", "16:00", 30, true, 7.5, true},
		{"Half day morning", "08:30", "12:00", 0, true, 3.5, true},
		{"End before begin", "16:00", "08:30", 30, false, 0, false},
		{"End equals begin", "08:30", "08:30", 0, false, 0, false},
		{"Break longer than worked time clamps to zero", "09:00", "09:30", 60, false, 0, true},
		{"Odd minutes stay precise", "08:00", "16:17", 30, false, 7.783333333333333, true},
		{"Unpadded begin", "8:30", "16:00", 30, false, 0, false},
		{"Invalid hour", "24:00", "16:00", 30, false, 0, false},
		{"Empty begin", "", "16:00", 30, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CalculateDuration(tt.begin, tt.end, tt.breakMins, tt.isHalfDay)
			if ok != tt.wantOK {
				t.Fatalf("CalculateDuration(%q, %q, %d, %v) ok = %v, want %v",
					tt.begin, tt.end, tt.breakMins, tt.isHalfDay, ok, tt.wantOK)
			}
			if ok && !almostEqual(got, tt.want) {
				t.Errorf("CalculateDuration(%q, %q, %d, %v) = %v, want %v",
					tt.begin, tt.end, tt.breakMins, tt.isHalfDay, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{7.0, "7,0"},
		{7.5, "7,5"},
		{7.75, "7,8"},
		{0, ""},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.hours); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     string
	}{
		{7.666666, 1, "7,7"},
		{11.5, 1, "11,5"},
		{0, 1, "0,0"},
		{3.14159, 2, "3,14"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.value, tt.decimals); got != tt.want {
			t.Errorf("FormatNumber(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
		}
	}
}

func TestTimeRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       bool
	}{
		{"Clear overlap", "08:00", "12:00", "10:00", "14:00", true},
		{"Contained range", "08:00", "16:00", "10:00", "12:00", true},
		{"Identical ranges", "08:00", "16:00", "08:00", "16:00", true},
		{"Touching endpoints do not conflict", "08:00", "12:00", "12:00", "16:00", false},
		{"Touching endpoints reversed", "12:00", "16:00", "08:00", "12:00", false},
		{"Disjoint ranges", "08:00", "10:00", "11:00", "13:00", false},
		{"Unparseable start never conflicts", "8:00", "12:00", "10:00", "14:00", false},
		{"Unparseable end never conflicts", "08:00", "12:00", "10:00", "25:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeRangesOverlap(tt.start1, tt.end1, tt.start2, tt.end2)
			if got != tt.want {
				t.Errorf("TimeRangesOverlap(%q, %q, %q, %q) = %v, want %v",
					tt.start1, tt.end1, tt.start2, tt.end2, got, tt.want)
			}
		})
	}
}

func TestPolicyCheck(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name         string
		hours        float64
		breakMins    int
		isHalfDay    bool
		wantWarnings int
	}{
		{"Regular full day", 7.0, 30, false, 0},
		{"Overtime full day", 8.0, 30, false, 1},
		{"Short break", 7.0, 15, false, 1},
		{"Overtime and short break", 8.0, 0, false, 2},
		{"Regular half day", 3.5, 0, true, 0},
		{"Long half day", 4.0, 0, true, 1},
		{"Half day ignores break minimum", 3.0, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := policy.Check(tt.hours, tt.breakMins, tt.isHalfDay)
			if len(warnings) != tt.wantWarnings {
				t.Errorf("Check(%v, %d, %v) returned %d warnings (%v), want %d",
					tt.hours, tt.breakMins, tt.isHalfDay, len(warnings), warnings, tt.wantWarnings)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
