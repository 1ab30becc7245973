// Package month provides a calendar month type with month-level granularity.
//
// A fund projection is naturally indexed by month: the engine works with
// offsets from the fund's start month, and reports translate those offsets
// back to calendar labels. Month is the small value type doing that
// translation.
package month

import (
	"encoding/json"
	"fmt"
	"time"
)

const readMonthFormat = "2006-1" // permissive read format (allows single-digit month)

// MonthFormat is the format used to represent months as strings (ISO-8601, day omitted).
const MonthFormat = "2006-01"

// Month represents a calendar month with no finer granularity.
type Month struct {
	y int
	m time.Month
}

// time returns a time.Time that is a canonical representation of that month
// (first day, midnight UTC).
func (m Month) time() time.Time { return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Month for the given year and month.
// Out-of-range month values are normalized the way time.Date does.
func New(year int, month time.Month) Month {
	m := Month{year, month}
	y, mm, _ := m.time().Date()
	return Month{y, mm}
}

// Year returns the calendar year.
func (m Month) Year() int { return m.y }

// Month returns the calendar month.
func (m Month) Month() time.Month { return m.m }

// Before reports whether m is strictly before x.
func (m Month) Before(x Month) bool { return m.y < x.y || (m.y == x.y && m.m < x.m) }

// After reports whether m is strictly after x.
func (m Month) After(x Month) bool { return x.Before(m) }

// Add returns a new Month with the given number of months added.
func (m Month) Add(months int) Month { return New(m.y, m.m+time.Month(months)) }

// Sub returns the number of months from x to m.
func (m Month) Sub(x Month) int { return (m.y-x.y)*12 + int(m.m) - int(x.m) }

// Now returns the current month.
func Now() Month { return New(time.Now().Year(), time.Now().Month()) }

// String formats the month in its standard format.
func (m Month) String() string { return m.time().Format(MonthFormat) }

// Parse parses a Month from a string. It is lenient and accepts formats like "2025-7".
func Parse(str string) (Month, error) {
	on, err := time.Parse(readMonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, readMonthFormat, err)
	}
	return New(on.Year(), on.Month()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Month {
	m, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// UnmarshalJSON implements json.Unmarshaler for a month encoded as a string.
func (j *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	m, err := Parse(str)
	if err != nil {
		return err
	}
	*j = m
	return nil
}

func (j Month) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Month pointer is a valid json marshal/unmarshaller type.
var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
