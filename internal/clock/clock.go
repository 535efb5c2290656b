// Package clock converts universal instants to and from the fixed civil
// calendar used by the Malaysian prayer authority (UTC+8, no DST). All
// date/time keys used for delivery deduplication come from here.
package clock

import (
	"fmt"
	"time"
)

const utcOffsetHours = 8

// Local is the fixed Malaysia civil timezone. A fixed zone, not a tzdata
// lookup — the offset has no daylight-saving transitions.
var Local = time.FixedZone("MYT", utcOffsetHours*60*60)

// Civil is a field breakdown of an instant in the fixed local calendar.
type Civil struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// ToCivil converts an instant to its local civil representation.
func ToCivil(t time.Time) Civil {
	lt := t.In(Local)
	return Civil{
		Year:   lt.Year(),
		Month:  int(lt.Month()),
		Day:    lt.Day(),
		Hour:   lt.Hour(),
		Minute: lt.Minute(),
		Second: lt.Second(),
	}
}

// Midnight returns the universal instant at which the given civil day starts.
func Midnight(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, Local).UTC()
}

// StartOfDay truncates an instant to its civil day's midnight.
func StartOfDay(t time.Time) time.Time {
	c := ToCivil(t)
	return Midnight(c.Year, c.Month, c.Day)
}

// DateKey projects an instant to "YYYY-MM-DD" in local civil time.
func DateKey(t time.Time) string {
	c := ToCivil(t)
	return fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month, c.Day)
}

// TimeKey projects an instant to "HH:MM" in local civil time. Two instants
// within the same local minute yield identical keys.
func TimeKey(t time.Time) string {
	c := ToCivil(t)
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
