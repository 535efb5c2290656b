// Package ramadan derives Ramadan/Eid status from a Hijri calendar snapshot
// and the calendar authority's Hijri↔civil entries.
//
// Month 9 is Ramadan; month 10 (Syawal) begins with Eid. The boundary of
// interest is the earliest future entry for Syawal 1 during Ramadan, or for
// Ramadan 1 otherwise.
package ramadan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Sienz16/ramadan-ku/internal/clock"
)

const (
	ramadanMonth = 9
	syawalMonth  = 10
)

// monthNames are the Malay Hijri month names used for snapshot labels.
var monthNames = map[int]string{
	1:  "Muharram",
	2:  "Safar",
	3:  "Rabiulawal",
	4:  "Rabiulakhir",
	5:  "Jamadilawal",
	6:  "Jamadilakhir",
	7:  "Rejab",
	8:  "Sya'ban",
	9:  "Ramadan",
	10: "Syawal",
	11: "Zulkaedah",
	12: "Zulhijjah",
}

// Snapshot is "today" in the Hijri calendar as published by the authority.
type Snapshot struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
	Label string `json:"label"`
}

// Entry pairs one civil day with its Hijri date. Entries accumulate across
// fetched years and are never mutated.
type Entry struct {
	Civil      time.Time
	HijriYear  int
	HijriMonth int
	HijriDay   int
}

// Status is the derived, ephemeral Ramadan state. Known is false when no
// Hijri snapshot was available — absence of data, not a negative.
type Status struct {
	Known          bool
	IsRamadan      bool
	DaysUntilStart int
	DaysElapsed    int
	Boundary       *time.Time
}

// MonthName returns the Malay name of a Hijri month, or its number when out
// of range.
func MonthName(month int) string {
	if name, ok := monthNames[month]; ok {
		return name
	}
	return strconv.Itoa(month)
}

// ParseSnapshot parses the authority's "1447-09-12" Hijri date into a
// labelled snapshot.
func ParseSnapshot(hijri string) (*Snapshot, error) {
	year, month, day, err := splitHijri(hijri)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Year:  year,
		Month: month,
		Day:   day,
		Label: fmt.Sprintf("%d %s %d", day, MonthName(month), year),
	}, nil
}

// ParseEntry parses one calendar row: a Hijri date "1447-09-01" and its
// civil date "18-Feb-2026".
func ParseEntry(hijri, civil string) (Entry, error) {
	year, month, day, err := splitHijri(hijri)
	if err != nil {
		return Entry{}, err
	}

	civilDay, err := time.ParseInLocation("2-Jan-2006", civil, clock.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("parse civil date %q: %w", civil, err)
	}

	return Entry{
		Civil:      clock.Midnight(civilDay.Year(), int(civilDay.Month()), civilDay.Day()),
		HijriYear:  year,
		HijriMonth: month,
		HijriDay:   day,
	}, nil
}

func splitHijri(value string) (year, month, day int, err error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("parse hijri date %q: want YYYY-MM-DD", value)
	}

	year, err = strconv.Atoi(parts[0])
	if err == nil {
		month, err = strconv.Atoi(parts[1])
	}
	if err == nil {
		day, err = strconv.Atoi(parts[2])
	}
	if err != nil {
		return 0, 0, 0, fmt.Errorf("parse hijri date %q: %w", value, err)
	}
	return year, month, day, nil
}

// nextBoundary returns the chronologically nearest entry on or after today
// matching the target Hijri month/day. Duplicated or year-spanning feeds can
// produce several matches; the earliest future one wins.
func nextBoundary(entries []Entry, today time.Time, targetMonth, targetDay int) *time.Time {
	var candidates []time.Time
	for _, entry := range entries {
		if entry.HijriMonth != targetMonth || entry.HijriDay != targetDay {
			continue
		}
		if entry.Civil.Before(today) {
			continue
		}
		candidates = append(candidates, entry.Civil)
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })
	return &candidates[0]
}

// DeriveStatus computes Ramadan status for the given instant. A nil snapshot
// yields Known=false. A missing boundary entry is a legitimate
// insufficient-calendar-data outcome, not an error.
func DeriveStatus(now time.Time, snapshot *Snapshot, entries []Entry) Status {
	today := clock.StartOfDay(now)

	if snapshot == nil {
		return Status{}
	}

	if snapshot.Month == ramadanMonth {
		return Status{
			Known:       true,
			IsRamadan:   true,
			DaysElapsed: snapshot.Day,
			Boundary:    nextBoundary(entries, today, syawalMonth, 1),
		}
	}

	boundary := nextBoundary(entries, today, ramadanMonth, 1)
	status := Status{Known: true, Boundary: boundary}
	if boundary != nil {
		days := int((boundary.Sub(today) + 24*time.Hour - 1) / (24 * time.Hour))
		if days < 0 {
			days = 0
		}
		status.DaysUntilStart = days
	}
	return status
}
