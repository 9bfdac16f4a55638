package models

// EntryType is the closed set of per-day entry categories. The string
// values are the persisted wire format and must not change.
type EntryType string

const (
	TypeHomeOffice  EntryType = "homeoffice"
	TypeVacation    EntryType = "urlaub"
	TypeSick        EntryType = "krank"
	TypeChildSick   EntryType = "kindkrank"
	TypeOther       EntryType = "sonstiges"
	TypeFlexTime    EntryType = "gleitzeit"
	TypeTimeAccount EntryType = "azk"
)

// AllTypes lists every valid entry type in display order.
func AllTypes() []EntryType {
	return []EntryType{
		TypeHomeOffice,
		TypeVacation,
		TypeSick,
		TypeChildSick,
		TypeOther,
		TypeFlexTime,
		TypeTimeAccount,
	}
}

// IsValid reports whether t is one of the known entry types.
func (t EntryType) IsValid() bool {
	switch t {
	case TypeHomeOffice, TypeVacation, TypeSick, TypeChildSick,
		TypeOther, TypeFlexTime, TypeTimeAccount:
		return true
	}
	return false
}

// Label returns the German display label used in timesheets and exports.
func (t EntryType) Label() string {
	switch t {
	case TypeHomeOffice:
		return "Homeoffice"
	case TypeVacation:
		return "Urlaub"
	case TypeSick:
		return "Krank"
	case TypeChildSick:
		return "Kind krank"
	case TypeOther:
		return "Sonstiges"
	case TypeFlexTime:
		return "Gleitzeit"
	case TypeTimeAccount:
		return "Arbeitszeitkonto"
	default:
		return string(t)
	}
}

// Entry is one calendar date's validated record. Optional numeric fields
// are pointers so an absent value stays distinct from zero.
type Entry struct {
	Type       EntryType `json:"type"`
	RecordedOn string    `json:"aufgezeichnetAm,omitempty"`

	// Home-office fields, empty/nil for absence categories.
	Begin        string   `json:"beginn,omitempty"`
	End          string   `json:"ende,omitempty"`
	BreakMinutes *int     `json:"pause,omitempty"`
	Duration     *float64 `json:"dauer,omitempty"`
	IsHalfDay    bool     `json:"isHalfDay,omitempty"`
}

// Raw converts the entry back into the untyped document shape that the
// validation gate accepts. Stores use it to re-validate records on read.
func (e Entry) Raw() map[string]any {
	raw := map[string]any{
		"type": string(e.Type),
	}
	if e.RecordedOn != "" {
		raw["aufgezeichnetAm"] = e.RecordedOn
	}
	if e.Begin != "" {
		raw["beginn"] = e.Begin
	}
	if e.End != "" {
		raw["ende"] = e.End
	}
	if e.BreakMinutes != nil {
		raw["pause"] = *e.BreakMinutes
	}
	if e.Duration != nil {
		raw["dauer"] = *e.Duration
	}
	if e.IsHalfDay {
		raw["isHalfDay"] = true
	}
	return raw
}

// DurationHours returns the derived duration or 0 when none is stored.
func (e Entry) DurationHours() float64 {
	if e.Duration == nil {
		return 0
	}
	return *e.Duration
}

// BreakMins returns the break minutes or 0 when none is stored.
func (e Entry) BreakMins() int {
	if e.BreakMinutes == nil {
		return 0
	}
	return *e.BreakMinutes
}

// UserInfo is the singleton identity record printed on exported documents.
type UserInfo struct {
	LastName    string `json:"nachname"`
	FirstName   string `json:"vorname"`
	PersonnelNo string `json:"persNr"`
	Department  string `json:"abteilung"`
}

// Document is the complete persisted data set: one user-info record and
// one entry per date key (YYYY-MM-DD).
type Document struct {
	UserInfo UserInfo         `json:"userInfo"`
	Entries  map[string]Entry `json:"entries"`
}

// NewDocument returns an empty document with an initialized entry map.
func NewDocument() Document {
	return Document{Entries: make(map[string]Entry)}
}

// IntPtr returns a pointer to v, for building optional entry fields.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v, for building optional entry fields.
func FloatPtr(v float64) *float64 { return &v }
