package dateutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format is the wire format for calendar days.
const Format = "2006-01-02"

// Day is a calendar day with no time-of-day component. Transactions are
// attributed to a Day, never to an instant, so comparisons cannot shift
// across timezones.
type Day struct {
	y int
	m time.Month
	d int
}

// NewDay returns a normalized Day for the given year, month and day.
// Out-of-range components roll over the way time.Date normalizes them.
func NewDay(year int, month time.Month, day int) Day {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Day{y: y, m: m, d: d}
}

// DayOf truncates an instant to its calendar day.
func DayOf(t time.Time) Day {
	return NewDay(t.Date())
}

// Today returns the current calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a YYYY-MM-DD string. The components are parsed as plain
// integers instead of going through time.Parse, so the result is a calendar
// day and never shifted by the local timezone.
func ParseDay(s string) (Day, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Day{}, fmt.Errorf("invalid day %q, want YYYY-MM-DD", s)
	}

	var nums [3]int

	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Day{}, fmt.Errorf("invalid day %q, want YYYY-MM-DD", s)
		}

		nums[i] = n
	}

	if nums[1] < 1 || nums[1] > 12 || nums[2] < 1 || nums[2] > 31 {
		return Day{}, fmt.Errorf("invalid day %q, want YYYY-MM-DD", s)
	}

	return NewDay(nums[0], time.Month(nums[1]), nums[2]), nil
}

// MustParseDay is like ParseDay but panics on error. Intended for tests and
// constants.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err.Error())
	}

	return d
}

// time returns the canonical instant for the day (midnight UTC).
func (d Day) time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// Year returns the year.
func (d Day) Year() int { return d.y }

// Month returns the month.
func (d Day) Month() time.Month { return d.m }

// DayOfMonth returns the day of the month.
func (d Day) DayOfMonth() int { return d.d }

// Weekday returns the day of the week.
func (d Day) Weekday() time.Weekday { return d.time().Weekday() }

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool { return d == Day{} }

// Before reports whether d falls before x.
func (d Day) Before(x Day) bool { return d.time().Before(x.time()) }

// After reports whether d falls after x.
func (d Day) After(x Day) bool { return d.time().After(x.time()) }

// Equal reports whether d and x are the same calendar day.
func (d Day) Equal(x Day) bool { return d == x }

// Compare returns -1 when d is before x, 0 when equal, +1 when after.
func (d Day) Compare(x Day) int { return d.time().Compare(x.time()) }

// AddDays returns the day i days after d (before when i is negative).
func (d Day) AddDays(i int) Day { return NewDay(d.y, d.m, d.d+i) }

// StartOfWeek returns the most recent Sunday at or before d.
func (d Day) StartOfWeek() Day {
	return d.AddDays(-int(d.Weekday()))
}

// SameMonth reports whether d and x share calendar month and year.
func (d Day) SameMonth(x Day) bool {
	return d.y == x.y && d.m == x.m
}

// String renders the day in its wire format.
func (d Day) String() string { return d.time().Format(Format) }

// MarshalJSON encodes the day as its YYYY-MM-DD string.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD JSON string.
func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	day, err := ParseDay(s)
	if err != nil {
		return err
	}

	*d = day

	return nil
}

var (
	_ json.Marshaler   = Day{}
	_ json.Unmarshaler = (*Day)(nil)
)
