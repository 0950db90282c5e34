package domain

import "time"

// DatePreset is a named date-range shorthand for filtering availabilities
type DatePreset string

const (
	PresetToday    DatePreset = "today"
	PresetTomorrow DatePreset = "tomorrow"
	PresetThisWeek DatePreset = "this_week"
	PresetNextWeek DatePreset = "next_week"
	PresetPick     DatePreset = "pick"
)

// ParseDatePreset maps a raw string to a known preset.
// Unknown or empty values fall back to PresetToday, matching the UI default.
func ParseDatePreset(raw string) DatePreset {
	switch DatePreset(raw) {
	case PresetToday, PresetTomorrow, PresetThisWeek, PresetNextWeek, PresetPick:
		return DatePreset(raw)
	default:
		return PresetToday
	}
}

// TimeSegment is a named time-of-day bucket matched against a slot's start hour.
// A slot falls into the segment when StartHour <= hour < EndHour.
type TimeSegment struct {
	ID        string
	Label     string
	StartHour int
	EndHour   int
}

// TimeSegments is the canonical 3-segment table used for filtering.
// An alternative 4-segment split with an "early 6-9" bucket existed in a
// parallel version of the search form; the 3-segment table is the one kept.
var TimeSegments = []TimeSegment{
	{ID: "morning", Label: "Morning (6–12)", StartHour: 6, EndHour: 12},
	{ID: "afternoon", Label: "Afternoon (12–4)", StartHour: 12, EndHour: 16},
	{ID: "evening", Label: "Evening (4–8)", StartHour: 16, EndHour: 20},
}

// SegmentByID looks up a canonical segment by its id
func SegmentByID(id string) (TimeSegment, bool) {
	for _, s := range TimeSegments {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSegment{}, false
}

// FilterCriteria is the full set of user-selected search filters.
// It is entirely reconstructible from the externalized query mapping, and the
// derivation engine is a pure function of (criteria, slot list).
type FilterCriteria struct {
	Insurance    string     // selected payer id; empty means no search performed
	DatePreset   DatePreset // defaults to PresetToday
	PickedDate   *time.Time // only meaningful when DatePreset == PresetPick
	TimeSegments []string   // selected segment ids, empty means all times
	Soonest      bool
}

// HasInsurance reports whether an insurance payer has been selected
func (c *FilterCriteria) HasInsurance() bool {
	return c.Insurance != ""
}

// HasTimeFilter reports whether any time-of-day segment is selected
func (c *FilterCriteria) HasTimeFilter() bool {
	return len(c.TimeSegments) > 0
}
