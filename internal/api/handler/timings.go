package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Sienz16/ramadan-ku/internal/api/respond"
	"github.com/Sienz16/ramadan-ku/internal/cache"
	"github.com/Sienz16/ramadan-ku/internal/clock"
	"github.com/Sienz16/ramadan-ku/internal/config"
	"github.com/Sienz16/ramadan-ku/internal/esolat"
	"github.com/Sienz16/ramadan-ku/internal/prayer"
	"github.com/Sienz16/ramadan-ku/internal/ramadan"
	"github.com/Sienz16/ramadan-ku/internal/zone"
)

// calendarWindowDays bounds the Hijri calendar fetch. A Hijri year is ~354
// civil days, so 385 days always contains the next Ramadan 1 and, during
// Ramadan, the next Syawal 1.
const calendarWindowDays = 385

type timingsResponse struct {
	Zone    string            `json:"zone"`
	City    string            `json:"city,omitempty"`
	State   string            `json:"state,omitempty"`
	Date    string            `json:"date"`
	Hijri   *ramadan.Snapshot `json:"hijri,omitempty"`
	Times   prayer.Timing     `json:"times"`
	Display displayTiming     `json:"display"`
}

// displayTiming mirrors prayer.Timing in 12-hour clock form for direct
// rendering.
type displayTiming struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

func toDisplay(t prayer.Timing) displayTiming {
	return displayTiming{
		Fajr:    prayer.To12Hour(t.Fajr),
		Sunrise: prayer.To12Hour(t.Sunrise),
		Dhuhr:   prayer.To12Hour(t.Dhuhr),
		Asr:     prayer.To12Hour(t.Asr),
		Maghrib: prayer.To12Hour(t.Maghrib),
		Isha:    prayer.To12Hour(t.Isha),
	}
}

// GetTimings returns today's prayer timings for one zone.
// @Summary Get today's prayer timings
// @Description Returns the canonical six daily timings for a JAKIM zone, with Hijri date and 12-hour display values.
// @Tags timings
// @Produce json
// @Param zone path string true "JAKIM zone code" example(WLY01)
// @Success 200 {object} timingsResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/timings/{zone} [get]
func (h *Handler) GetTimings(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "zone"))
	loc := zone.ByCode(code)
	if loc == nil {
		respond.WriteError(w, http.StatusNotFound, "UNKNOWN_ZONE", "Unknown zone code "+code)
		return
	}

	now := time.Now()
	cacheKey := cache.TimingsKey(code, clock.DateKey(now))
	ttl := cache.TTLTimings

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	today, err := h.timings.Today(r.Context(), code)
	if err != nil {
		h.writeUpstreamError(w, code, err)
		return
	}

	data, err := json.Marshal(timingsResponse{
		Zone:    code,
		City:    loc.City,
		State:   loc.State,
		Date:    clock.DateKey(now),
		Hijri:   today.Hijri,
		Times:   today.Timing,
		Display: toDisplay(today.Timing),
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

type ramadanResponse struct {
	Zone           string            `json:"zone"`
	Date           string            `json:"date"`
	Hijri          *ramadan.Snapshot `json:"hijri,omitempty"`
	Known          bool              `json:"known"`
	IsRamadan      bool              `json:"isRamadan"`
	DaysElapsed    int               `json:"daysElapsed,omitempty"`
	DaysUntilStart int               `json:"daysUntilStart,omitempty"`
	Boundary       string            `json:"boundary,omitempty"`
}

// GetRamadanStatus returns the derived Ramadan state for a zone.
// @Summary Get Ramadan status
// @Description Derives whether Ramadan is in progress, days elapsed or until start, and the next Hijri boundary date.
// @Tags timings
// @Produce json
// @Param zone query string false "JAKIM zone code, defaults to WLY01" example(WLY01)
// @Success 200 {object} ramadanResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/ramadan [get]
func (h *Handler) GetRamadanStatus(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.URL.Query().Get("zone"))
	if code == "" {
		code = config.DefaultZone
	}
	if zone.ByCode(code) == nil {
		respond.WriteError(w, http.StatusNotFound, "UNKNOWN_ZONE", "Unknown zone code "+code)
		return
	}

	now := time.Now()
	cacheKey := fmt.Sprintf("ramadan:%s:%s", code, clock.DateKey(now))
	ttl := cache.TTLTimings

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	today, err := h.timings.Today(r.Context(), code)
	if err != nil {
		h.writeUpstreamError(w, code, err)
		return
	}

	// Calendar trouble degrades the answer (no boundary) instead of failing
	// the request; the snapshot alone still says whether it is Ramadan.
	entries := h.calendarWindow(r.Context(), code, now)
	status := ramadan.DeriveStatus(now, today.Hijri, entries)

	resp := ramadanResponse{
		Zone:           code,
		Date:           clock.DateKey(now),
		Hijri:          today.Hijri,
		Known:          status.Known,
		IsRamadan:      status.IsRamadan,
		DaysElapsed:    status.DaysElapsed,
		DaysUntilStart: status.DaysUntilStart,
	}
	if status.Boundary != nil {
		resp.Boundary = clock.DateKey(*status.Boundary)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// calendarWindow returns the zone's Hijri entries for the bounded lookahead
// window, from cache when possible. Failures are logged and yield nil.
func (h *Handler) calendarWindow(ctx context.Context, zoneCode string, now time.Time) []ramadan.Entry {
	start := clock.StartOfDay(now)
	end := start.AddDate(0, 0, calendarWindowDays)
	key := cache.CalendarKey(zoneCode, clock.DateKey(start), clock.DateKey(end))

	if data, _, ok := h.cache.Get(key); ok {
		var entries []ramadan.Entry
		if err := json.Unmarshal(data, &entries); err == nil {
			return entries
		}
	}

	entries, err := h.timings.Calendar(ctx, zoneCode, start, end)
	if err != nil {
		h.logger.Warn("calendar window fetch failed", "zone", zoneCode, "error", err)
		return nil
	}

	if data, err := json.Marshal(entries); err == nil {
		h.cache.Set(key, data, cache.TTLCalendar)
	}
	return entries
}

func (h *Handler) writeUpstreamError(w http.ResponseWriter, zoneCode string, err error) {
	h.logger.Warn("upstream fetch failed", "zone", zoneCode, "error", err)
	if errors.Is(err, esolat.ErrInvalidPayload) {
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_INVALID",
			"Prayer time authority returned an unusable response")
		return
	}
	respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE",
		"Prayer time authority is unreachable")
}
