// Package prayer defines the canonical daily timing record and the due-event
// matcher that decides which prayer, if any, falls on the current minute.
package prayer

import (
	"fmt"
	"strconv"
	"strings"
)

// Timing is the canonical six-field daily record for one zone, all values
// "HH:MM" zone-local wall-clock strings.
type Timing struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// Order lists the notifiable prayer events. Sunrise is deliberately absent:
// it is not a solat event and must never trigger a notification.
var Order = [...]string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// labels are the Malay display names used in notification payloads.
var labels = map[string]string{
	"Fajr":    "Subuh",
	"Dhuhr":   "Zohor",
	"Asr":     "Asar",
	"Maghrib": "Maghrib",
	"Isha":    "Isyak",
}

func pad2(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}

// toHourMinute strips seconds and left-pads to "HH:MM".
func toHourMinute(value string) string {
	parts := strings.SplitN(value, ":", 3)
	hour, minute := "00", "00"
	if len(parts) > 0 && parts[0] != "" {
		hour = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		minute = parts[1]
	}
	return pad2(hour) + ":" + pad2(minute)
}

// Normalize maps the provider's raw six fields ("HH:MM:SS" or "HH:MM",
// syuruk for sunrise) to the canonical shape. No timezone conversion — raw
// values are already zone-local.
func Normalize(fajr, syuruk, dhuhr, asr, maghrib, isha string) Timing {
	return Timing{
		Fajr:    toHourMinute(fajr),
		Sunrise: toHourMinute(syuruk),
		Dhuhr:   toHourMinute(dhuhr),
		Asr:     toHourMinute(asr),
		Maghrib: toHourMinute(maghrib),
		Isha:    toHourMinute(isha),
	}
}

// At returns the timing for a named event, "" for unknown names.
func (t Timing) At(name string) string {
	switch name {
	case "Fajr":
		return t.Fajr
	case "Sunrise":
		return t.Sunrise
	case "Dhuhr":
		return t.Dhuhr
	case "Asr":
		return t.Asr
	case "Maghrib":
		return t.Maghrib
	case "Isha":
		return t.Isha
	}
	return ""
}

// DueEvent returns the prayer event whose time equals the current "HH:MM"
// key, or "" when none is due. Exact string match — the caller is expected
// to evaluate once per minute without gaps.
func DueEvent(t Timing, timeKey string) string {
	for _, name := range Order {
		if t.At(name) == timeKey {
			return name
		}
	}
	return ""
}

// Label returns the Malay display name for a prayer event.
func Label(name string) string {
	if label, ok := labels[name]; ok {
		return label
	}
	return name
}

// To12Hour formats an "HH:MM" value as "h:MM AM/PM" for display.
func To12Hour(hhmm string) string {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return hhmm
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return hhmm
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	if hour %= 12; hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%s %s", hour, parts[1], period)
}
