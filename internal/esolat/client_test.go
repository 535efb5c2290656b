package esolat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sienz16/ramadan-ku/internal/clock"
)

const todayBody = `{
	"prayerTime": [{
		"hijri": "1447-09-12",
		"date": "01-Mar-2026",
		"day": "Sunday",
		"fajr": "05:55:00",
		"syuruk": "07:05:00",
		"dhuhr": "13:15:00",
		"asr": "16:30:00",
		"maghrib": "19:20:00",
		"isha": "20:32:00"
	}],
	"status": "OK!",
	"zone": "WLY01"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, 600, nil)
}

func TestTodayParsesAndNormalizes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "esolatApi/takwimsolat", r.URL.Query().Get("r"))
		assert.Equal(t, "WLY01", r.URL.Query().Get("zone"))
		assert.Equal(t, "today", r.URL.Query().Get("period"))
		w.Write([]byte(todayBody))
	})

	today, err := c.Today(context.Background(), "WLY01")
	require.NoError(t, err)

	assert.Equal(t, "05:55", today.Timing.Fajr)
	assert.Equal(t, "07:05", today.Timing.Sunrise)
	assert.Equal(t, "20:32", today.Timing.Isha)

	require.NotNil(t, today.Hijri)
	assert.Equal(t, 9, today.Hijri.Month)
	assert.Equal(t, 12, today.Hijri.Day)
	assert.Equal(t, "12 Ramadan 1447", today.Hijri.Label)
}

func TestTodayServerErrorIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.Today(context.Background(), "WLY01")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidPayload)
}

func TestTodayBadStatusIsInvalidPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "NO RECORD!", "prayerTime": []}`))
	})

	_, err := c.Today(context.Background(), "XXX99")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestTodayMalformedFieldInvalidatesZone(t *testing.T) {
	body := `{
		"prayerTime": [{
			"hijri": "1447-09-12", "date": "01-Mar-2026",
			"fajr": "05:55:00", "syuruk": "", "dhuhr": "13:15:00",
			"asr": "16:30:00", "maghrib": "19:20:00", "isha": "20:32:00"
		}],
		"status": "OK!"
	}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	_, err := c.Today(context.Background(), "WLY01")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestTodayUnusableHijriStillReturnsTimings(t *testing.T) {
	body := `{
		"prayerTime": [{
			"hijri": "garbage", "date": "01-Mar-2026",
			"fajr": "05:55:00", "syuruk": "07:05:00", "dhuhr": "13:15:00",
			"asr": "16:30:00", "maghrib": "19:20:00", "isha": "20:32:00"
		}],
		"status": "OK!"
	}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	today, err := c.Today(context.Background(), "WLY01")
	require.NoError(t, err)
	assert.Nil(t, today.Hijri)
	assert.Equal(t, "05:55", today.Timing.Fajr)
}

func TestCalendarParsesWindow(t *testing.T) {
	body := `{
		"prayerTime": [
			{"hijri": "1447-08-30", "date": "17-Feb-2026", "fajr": "x"},
			{"hijri": "1447-09-01", "date": "18-Feb-2026", "fajr": "x"},
			{"hijri": "bad", "date": "19-Feb-2026", "fajr": "x"}
		],
		"status": "OK!"
	}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "duration", r.URL.Query().Get("period"))
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("datestart"))
		w.Write([]byte(body))
	})

	entries, err := c.Calendar(context.Background(), "WLY01",
		clock.Midnight(2026, 1, 1), clock.Midnight(2026, 12, 31))
	require.NoError(t, err)

	// Unparseable row skipped, parseable ones kept.
	require.Len(t, entries, 2)
	assert.Equal(t, 9, entries[1].HijriMonth)
	assert.Equal(t, clock.Midnight(2026, 2, 18), entries[1].Civil)
}

func TestCalendarAllRowsBadIsInvalidPayload(t *testing.T) {
	body := `{"prayerTime": [{"hijri": "bad", "date": "also-bad"}], "status": "OK!"}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	_, err := c.Calendar(context.Background(), "WLY01",
		clock.Midnight(2026, 1, 1), clock.Midnight(2026, 12, 31))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
