package tracker

import (
	"encoding/json"
	"fmt"
	"time"
)

// Weekday is a calendar weekday in the user's settings and in productivity
// aggregations. Values are stored lowercase; ordering helpers below keep
// reports in canonical Monday-first order independent of locale or
// discovery order.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// mondayFirstOrder defines the canonical report ordering (Monday = 0).
var mondayFirstOrder = map[Weekday]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// WeekdaysMondayFirst returns the seven weekdays in canonical report order.
func WeekdaysMondayFirst() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayOf converts a timestamp to its Weekday.
func WeekdayOf(t time.Time) Weekday {
	return WeekdayFromTime(t.Weekday())
}

// WeekdayFromTime converts a time.Weekday to a Weekday.
func WeekdayFromTime(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// IsValid returns true if the value is a known weekday.
func (d Weekday) IsValid() bool {
	_, ok := mondayFirstOrder[d]
	return ok
}

// String returns the string representation of the weekday.
func (d Weekday) String() string {
	return string(d)
}

// Order returns the Monday-first index of the weekday (Monday = 0).
func (d Weekday) Order() int {
	if order, ok := mondayFirstOrder[d]; ok {
		return order
	}
	return 0
}

// Time returns the equivalent time.Weekday (Sunday-first enumeration).
func (d Weekday) Time() time.Weekday {
	switch d {
	case Monday:
		return time.Monday
	case Tuesday:
		return time.Tuesday
	case Wednesday:
		return time.Wednesday
	case Thursday:
		return time.Thursday
	case Friday:
		return time.Friday
	case Saturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

// DisplayName returns a human-readable display name for the weekday.
func (d Weekday) DisplayName() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	default:
		return string(d)
	}
}

// ParseWeekday parses a string into a Weekday.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid weekday: %s", s)
	}
	return d, nil
}

// MarshalJSON implements json.Marshaler interface.
func (d Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed := Weekday(str)
	if !parsed.IsValid() {
		return fmt.Errorf("invalid weekday: %s", str)
	}

	*d = parsed
	return nil
}
