package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD, the wire format for picked dates
)

// CalendarWindowDays bounds the calendar availability marker set: the picker
// shows the 14 days spanning the current week and the following week.
const CalendarWindowDays = 14
