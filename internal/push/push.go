// Package push owns the durable subscription registry, the delivery ledger,
// the Web Push transport, and the per-minute dispatch worker.
//
// Delivery guarantee: for each (endpoint, date|zone|event) pair at most one
// send is ever attempted. The ledger insert is the claim — it happens before
// the send, so a claimed-but-failed send is never retried for that key.
package push

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sienz16/ramadan-ku/internal/prayer"
)

// Subscription is one registered push endpoint.
type Subscription struct {
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
	Zone     string `json:"zone"`
	City     string `json:"city,omitempty"`
}

// DeliveryKey builds the composite identity that deduplicates notification
// delivery: "YYYY-MM-DD|ZONE|Event".
func DeliveryKey(dateKey, zone, event string) string {
	return dateKey + "|" + zone + "|" + event
}

// Payload is the JSON document handed to the push transport. Field names
// match what the service worker on the client expects.
type Payload struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	URL        string `json:"url"`
	PrayerName string `json:"prayerName,omitempty"`
	Zone       string `json:"zone,omitempty"`
}

// PrayerPayload builds the notification document for a due prayer event.
func PrayerPayload(event, zone string, timing prayer.Timing) ([]byte, error) {
	body := fmt.Sprintf("%s (%s) - Zon %s",
		prayer.Label(event), prayer.To12Hour(timing.At(event)), zone)

	return json.Marshal(Payload{
		Title:      "Waktu solat telah masuk",
		Body:       body,
		URL:        "/",
		PrayerName: event,
		Zone:       zone,
	})
}

// TestPayload builds the document for a manual test notification.
func TestPayload(title, body string) ([]byte, error) {
	if title == "" {
		title = "RamadanKu test notification"
	}
	if body == "" {
		body = "Notifikasi latar belakang berjaya diaktifkan."
	}
	return json.Marshal(Payload{Title: title, Body: body, URL: "/"})
}

// ZoneStats are per-zone counters for one dispatch tick. Logged only, never
// persisted.
type ZoneStats struct {
	Zone    string
	Due     string
	Sent    int
	Skipped int
}

// RunStats aggregates a whole tick.
type RunStats struct {
	Zones    int
	Due      int
	Sent     int
	Skipped  int
	Errors   []string
	Duration time.Duration
}

// Summary renders a one-line log summary.
func (s RunStats) Summary() string {
	return fmt.Sprintf("zones=%d due=%d sent=%d skipped=%d errors=%d duration=%s",
		s.Zones, s.Due, s.Sent, s.Skipped, len(s.Errors), s.Duration.Round(time.Millisecond))
}
