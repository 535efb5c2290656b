// Package esolat is the client for the JAKIM e-solat API, the upstream
// authority for both daily prayer timings and the Hijri↔civil calendar.
//
// The API is treated as untrusted: every field is validated before use, and
// failures are split into two kinds so callers can tell "transiently
// unreachable" from "returned garbage".
package esolat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"golang.org/x/time/rate"

	"github.com/Sienz16/ramadan-ku/internal/clock"
	"github.com/Sienz16/ramadan-ku/internal/prayer"
	"github.com/Sienz16/ramadan-ku/internal/ramadan"
)

// Failure kinds. Wrap sites add zone/endpoint context; match with errors.Is.
var (
	// ErrUnavailable marks transport-level failures: connection errors,
	// timeouts, non-200 statuses. Possibly recoverable next tick.
	ErrUnavailable = errors.New("esolat unavailable")

	// ErrInvalidPayload marks a reachable provider returning a malformed or
	// incomplete response. Retrying immediately will not help.
	ErrInvalidPayload = errors.New("esolat invalid payload")
)

const takwimPath = "/index.php"

var timeOfDay = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// Client is a rate-limited HTTP client for the e-solat endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an e-solat client. The timeout bounds each fetch so a
// hanging zone cannot stall a dispatch run.
func NewClient(baseURL string, timeout time.Duration, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// prayerTimeItem is one row of the takwimsolat response.
type prayerTimeItem struct {
	Hijri   string `json:"hijri"`
	Date    string `json:"date"`
	Day     string `json:"day"`
	Fajr    string `json:"fajr"`
	Syuruk  string `json:"syuruk"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

type takwimResponse struct {
	PrayerTime []prayerTimeItem `json:"prayerTime"`
	Status     string           `json:"status"`
	Zone       string           `json:"zone"`
}

// Today is the provider's snapshot for one zone's current civil day.
type Today struct {
	Timing prayer.Timing
	Hijri  *ramadan.Snapshot
}

// Today fetches and validates the zone's timings for the current day. The
// Hijri snapshot is nil if that field alone is unusable — timing consumers
// still get a valid result.
func (c *Client) Today(ctx context.Context, zone string) (Today, error) {
	resp, err := c.fetchTakwim(ctx, zone, url.Values{"period": {"today"}})
	if err != nil {
		return Today{}, err
	}

	item := resp.PrayerTime[0]
	if err := validateTimings(item); err != nil {
		return Today{}, fmt.Errorf("zone %s: %w", zone, err)
	}

	today := Today{
		Timing: prayer.Normalize(item.Fajr, item.Syuruk, item.Dhuhr, item.Asr, item.Maghrib, item.Isha),
	}
	if snapshot, err := ramadan.ParseSnapshot(item.Hijri); err == nil {
		today.Hijri = snapshot
	} else {
		c.logger.Warn("unusable hijri snapshot", "zone", zone, "error", err)
	}

	return today, nil
}

// Calendar fetches the zone's Hijri↔civil entries for the given civil date
// window. Rows with unparseable dates are skipped rather than failing the
// whole window.
func (c *Client) Calendar(ctx context.Context, zone string, start, end time.Time) ([]ramadan.Entry, error) {
	params := url.Values{
		"period":    {"duration"},
		"datestart": {start.In(clock.Local).Format("2006-01-02")},
		"dateend":   {end.In(clock.Local).Format("2006-01-02")},
	}
	resp, err := c.fetchTakwim(ctx, zone, params)
	if err != nil {
		return nil, err
	}

	entries := make([]ramadan.Entry, 0, len(resp.PrayerTime))
	for _, item := range resp.PrayerTime {
		entry, err := ramadan.ParseEntry(item.Hijri, item.Date)
		if err != nil {
			c.logger.Warn("skipping calendar row", "zone", zone, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("zone %s: no usable calendar rows: %w", zone, ErrInvalidPayload)
	}
	return entries, nil
}

func (c *Client) fetchTakwim(ctx context.Context, zone string, params url.Values) (*takwimResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params.Set("r", "esolatApi/takwimsolat")
	params.Set("zone", zone)
	u := c.baseURL + takwimPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zone %s: %w: %w", zone, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("zone %s: read body: %w: %w", zone, ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zone %s: status %d: %s: %w", zone, resp.StatusCode, truncate(body, 200), ErrUnavailable)
	}

	var result takwimResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("zone %s: decode response: %w: %w", zone, ErrInvalidPayload, err)
	}

	if result.Status != "OK!" || len(result.PrayerTime) == 0 {
		return nil, fmt.Errorf("zone %s: status %q with %d rows: %w",
			zone, result.Status, len(result.PrayerTime), ErrInvalidPayload)
	}

	return &result, nil
}

// validateTimings rejects a row when any of the six timing fields is missing
// or malformed — one bad field invalidates the whole zone for the tick.
func validateTimings(item prayerTimeItem) error {
	fields := map[string]string{
		"fajr":    item.Fajr,
		"syuruk":  item.Syuruk,
		"dhuhr":   item.Dhuhr,
		"asr":     item.Asr,
		"maghrib": item.Maghrib,
		"isha":    item.Isha,
	}
	for name, value := range fields {
		if !timeOfDay.MatchString(value) {
			return fmt.Errorf("field %s=%q: %w", name, value, ErrInvalidPayload)
		}
	}
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
