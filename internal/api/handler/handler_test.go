package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sienz16/ramadan-ku/internal/api"
	"github.com/Sienz16/ramadan-ku/internal/api/handler"
	"github.com/Sienz16/ramadan-ku/internal/cache"
	"github.com/Sienz16/ramadan-ku/internal/clock"
	"github.com/Sienz16/ramadan-ku/internal/config"
	"github.com/Sienz16/ramadan-ku/internal/esolat"
	"github.com/Sienz16/ramadan-ku/internal/prayer"
	"github.com/Sienz16/ramadan-ku/internal/push"
	"github.com/Sienz16/ramadan-ku/internal/ramadan"
)

// --------------------------------------------------------------------------
// Fakes
// --------------------------------------------------------------------------

type fakeProvider struct {
	today    esolat.Today
	todayErr error
	entries  []ramadan.Entry
	calErr   error
}

func (f *fakeProvider) Today(context.Context, string) (esolat.Today, error) {
	return f.today, f.todayErr
}

func (f *fakeProvider) Calendar(context.Context, string, time.Time, time.Time) ([]ramadan.Entry, error) {
	return f.entries, f.calErr
}

type fakeRegistry struct {
	subs     map[string]push.Subscription
	disabled map[string]bool
	failWith error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		subs:     make(map[string]push.Subscription),
		disabled: make(map[string]bool),
	}
}

func (f *fakeRegistry) Upsert(_ context.Context, sub push.Subscription) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.subs[sub.Endpoint] = sub
	return nil
}

func (f *fakeRegistry) Delete(_ context.Context, endpoint string) error {
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.subs, endpoint)
	return nil
}

func (f *fakeRegistry) Disable(_ context.Context, endpoint string) error {
	f.disabled[endpoint] = true
	return nil
}

func (f *fakeRegistry) FindByEndpoint(_ context.Context, endpoint string) (*push.Subscription, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	sub, ok := f.subs[endpoint]
	if !ok || f.disabled[endpoint] {
		return nil, nil
	}
	return &sub, nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(_ context.Context, sub push.Subscription, _ []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sub.Endpoint)
	return nil
}

// --------------------------------------------------------------------------
// Harness
// --------------------------------------------------------------------------

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var sampleTiming = prayer.Timing{
	Fajr: "05:55", Sunrise: "07:00", Dhuhr: "13:15",
	Asr: "16:30", Maghrib: "19:20", Isha: "20:32",
}

func newServer(t *testing.T, provider handler.TimingsProvider, registry handler.SubscriptionStore, transport handler.PushTransport) *httptest.Server {
	t.Helper()
	cfg := &config.Config{RateLimitEnabled: false, CacheEnabled: true}
	h := handler.New(nil, cache.New(true), cfg, provider, registry, transport, quiet)
	srv := httptest.NewServer(api.NewRouter(h, cfg))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]interface{}
	if resp.StatusCode != http.StatusNotModified {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp, body
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func errorCode(body map[string]interface{}) string {
	if e, ok := body["error"].(map[string]interface{}); ok {
		code, _ := e["code"].(string)
		return code
	}
	return ""
}

// --------------------------------------------------------------------------
// Timings
// --------------------------------------------------------------------------

func TestGetTimings(t *testing.T) {
	provider := &fakeProvider{today: esolat.Today{
		Timing: sampleTiming,
		Hijri:  &ramadan.Snapshot{Year: 1447, Month: 9, Day: 12, Label: "12 Ramadan 1447"},
	}}
	srv := newServer(t, provider, newFakeRegistry(), nil)

	resp, body := get(t, srv, "/api/v1/timings/wly01")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	assert.Equal(t, "WLY01", body["zone"])
	assert.Equal(t, "Kuala Lumpur", body["city"])

	times := body["times"].(map[string]interface{})
	assert.Equal(t, "05:55", times["fajr"])
	assert.Equal(t, "20:32", times["isha"])

	display := body["display"].(map[string]interface{})
	assert.Equal(t, "1:15 PM", display["dhuhr"])

	// Second request is served from cache.
	resp, _ = get(t, srv, "/api/v1/timings/WLY01")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))

	// Conditional request with the ETag gets a 304.
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/timings/WLY01", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	condResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer condResp.Body.Close()
	assert.Equal(t, http.StatusNotModified, condResp.StatusCode)
}

func TestGetTimingsUnknownZone(t *testing.T) {
	srv := newServer(t, &fakeProvider{}, newFakeRegistry(), nil)

	resp, body := get(t, srv, "/api/v1/timings/XXX99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_ZONE", errorCode(body))
}

func TestGetTimingsUpstreamFailures(t *testing.T) {
	srv := newServer(t, &fakeProvider{todayErr: esolat.ErrUnavailable}, newFakeRegistry(), nil)
	resp, body := get(t, srv, "/api/v1/timings/WLY01")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", errorCode(body))

	srv = newServer(t, &fakeProvider{todayErr: esolat.ErrInvalidPayload}, newFakeRegistry(), nil)
	resp, body = get(t, srv, "/api/v1/timings/WLY01")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_INVALID", errorCode(body))
}

// --------------------------------------------------------------------------
// Ramadan status
// --------------------------------------------------------------------------

func TestGetRamadanStatusDuringRamadan(t *testing.T) {
	eid := clock.StartOfDay(time.Now()).AddDate(0, 0, 18)
	c := clock.ToCivil(eid)

	provider := &fakeProvider{
		today: esolat.Today{
			Timing: sampleTiming,
			Hijri:  &ramadan.Snapshot{Year: 1447, Month: 9, Day: 12, Label: "12 Ramadan 1447"},
		},
		entries: []ramadan.Entry{
			{Civil: clock.Midnight(c.Year, c.Month, c.Day), HijriYear: 1447, HijriMonth: 10, HijriDay: 1},
		},
	}
	srv := newServer(t, provider, newFakeRegistry(), nil)

	resp, body := get(t, srv, "/api/v1/ramadan?zone=WLY01")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["known"])
	assert.Equal(t, true, body["isRamadan"])
	assert.Equal(t, float64(12), body["daysElapsed"])
	assert.Equal(t, clock.DateKey(eid), body["boundary"])
}

func TestGetRamadanStatusUnknownWithoutSnapshot(t *testing.T) {
	provider := &fakeProvider{today: esolat.Today{Timing: sampleTiming}}
	srv := newServer(t, provider, newFakeRegistry(), nil)

	resp, body := get(t, srv, "/api/v1/ramadan")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "WLY01", body["zone"]) // default zone
	assert.Equal(t, false, body["known"])
	assert.Equal(t, false, body["isRamadan"])
}

func TestGetRamadanStatusSurvivesCalendarOutage(t *testing.T) {
	provider := &fakeProvider{
		today: esolat.Today{
			Timing: sampleTiming,
			Hijri:  &ramadan.Snapshot{Year: 1447, Month: 8, Day: 20, Label: "20 Sya'ban 1447"},
		},
		calErr: esolat.ErrUnavailable,
	}
	srv := newServer(t, provider, newFakeRegistry(), nil)

	resp, body := get(t, srv, "/api/v1/ramadan?zone=WLY01")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["known"])
	assert.Equal(t, false, body["isRamadan"])
	assert.NotContains(t, body, "boundary")
}

// --------------------------------------------------------------------------
// Zones
// --------------------------------------------------------------------------

func TestGetZones(t *testing.T) {
	srv := newServer(t, &fakeProvider{}, newFakeRegistry(), nil)

	resp, body := get(t, srv, "/api/v1/zones")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.GreaterOrEqual(t, body["count"].(float64), float64(50))

	zones := body["zones"].([]interface{})
	found := false
	for _, z := range zones {
		if z.(map[string]interface{})["zone"] == "WLY01" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResolveZone(t *testing.T) {
	srv := newServer(t, &fakeProvider{}, newFakeRegistry(), nil)

	// Explicit zone wins regardless of coordinates.
	resp, body := get(t, srv, "/api/v1/zones/resolve?zone=wly01&lat=5.99&lng=116.08")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "WLY01", body["zone"])
	assert.Equal(t, "explicit", body["source"])

	// Nearest by great-circle distance.
	resp, body = get(t, srv, "/api/v1/zones/resolve?lat=5.99&lng=116.08")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SBH07", body["zone"])
	assert.Equal(t, "nearest", body["source"])

	resp, body = get(t, srv, "/api/v1/zones/resolve?zone=XXX99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_ZONE", errorCode(body))

	resp, body = get(t, srv, "/api/v1/zones/resolve?lat=5.99")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_COORDINATES", errorCode(body))

	resp, body = get(t, srv, "/api/v1/zones/resolve?lat=abc&lng=def")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_COORDINATES", errorCode(body))
}

// --------------------------------------------------------------------------
// Push registration
// --------------------------------------------------------------------------

func TestSubscribe(t *testing.T) {
	registry := newFakeRegistry()
	srv := newServer(t, &fakeProvider{}, registry, nil)

	resp, body := post(t, srv, "/api/v1/push/subscribe", `{
		"endpoint": "https://push.example/abc",
		"keys": {"p256dh": "pk", "auth": "ak"},
		"zone": "sbh07",
		"city": "Kota Kinabalu"
	}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "subscribed", body["status"])
	assert.Equal(t, "SBH07", body["zone"])

	saved := registry.subs["https://push.example/abc"]
	assert.Equal(t, "pk", saved.P256dh)
	assert.Equal(t, "SBH07", saved.Zone)
	assert.Equal(t, "Kota Kinabalu", saved.City)
}

func TestSubscribeFlatKeysAndDefaultZone(t *testing.T) {
	registry := newFakeRegistry()
	srv := newServer(t, &fakeProvider{}, registry, nil)

	resp, body := post(t, srv, "/api/v1/push/subscribe", `{
		"endpoint": "https://push.example/flat",
		"p256dh": "pk",
		"auth": "ak"
	}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "WLY01", body["zone"])
	assert.Equal(t, "WLY01", registry.subs["https://push.example/flat"].Zone)
}

func TestSubscribeValidation(t *testing.T) {
	srv := newServer(t, &fakeProvider{}, newFakeRegistry(), nil)

	resp, body := post(t, srv, "/api/v1/push/subscribe", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(body))

	resp, body = post(t, srv, "/api/v1/push/subscribe", `{"endpoint": "https://push.example/x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FIELDS", errorCode(body))

	resp, body = post(t, srv, "/api/v1/push/subscribe", `{
		"endpoint": "https://push.example/x",
		"keys": {"p256dh": "pk", "auth": "ak"},
		"zone": "NOPE1"
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_ZONE", errorCode(body))
}

func TestSubscribeStoreFailure(t *testing.T) {
	registry := newFakeRegistry()
	registry.failWith = errors.New("db down")
	srv := newServer(t, &fakeProvider{}, registry, nil)

	resp, body := post(t, srv, "/api/v1/push/subscribe", `{
		"endpoint": "https://push.example/x",
		"keys": {"p256dh": "pk", "auth": "ak"}
	}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "STORE_ERROR", errorCode(body))
}

func TestUnsubscribe(t *testing.T) {
	registry := newFakeRegistry()
	registry.subs["https://push.example/abc"] = push.Subscription{Endpoint: "https://push.example/abc"}
	srv := newServer(t, &fakeProvider{}, registry, nil)

	resp, body := post(t, srv, "/api/v1/push/unsubscribe", `{"endpoint": "https://push.example/abc"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "unsubscribed", body["status"])
	assert.NotContains(t, registry.subs, "https://push.example/abc")

	resp, body = post(t, srv, "/api/v1/push/unsubscribe", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_ENDPOINT", errorCode(body))
}

func TestSendTest(t *testing.T) {
	registry := newFakeRegistry()
	registry.subs["https://push.example/abc"] = push.Subscription{
		Endpoint: "https://push.example/abc", P256dh: "pk", Auth: "ak", Zone: "WLY01",
	}
	sender := &fakeSender{}
	srv := newServer(t, &fakeProvider{}, registry, sender)

	resp, body := post(t, srv, "/api/v1/push/test", `{"endpoint": "https://push.example/abc"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sent", body["status"])
	assert.Equal(t, []string{"https://push.example/abc"}, sender.sent)

	resp, body = post(t, srv, "/api/v1/push/test", `{"endpoint": "https://push.example/unknown"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_SUBSCRIBED", errorCode(body))
}

func TestSendTestWithoutTransport(t *testing.T) {
	srv := newServer(t, &fakeProvider{}, newFakeRegistry(), nil)

	resp, body := post(t, srv, "/api/v1/push/test", `{"endpoint": "https://push.example/abc"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "PUSH_DISABLED", errorCode(body))
}

func TestSendTestGoneEndpointIsDisabled(t *testing.T) {
	registry := newFakeRegistry()
	registry.subs["https://push.example/dead"] = push.Subscription{Endpoint: "https://push.example/dead"}
	sender := &fakeSender{err: push.ErrEndpointGone}
	srv := newServer(t, &fakeProvider{}, registry, sender)

	resp, body := post(t, srv, "/api/v1/push/test", `{"endpoint": "https://push.example/dead"}`)
	assert.Equal(t, http.StatusGone, resp.StatusCode)
	assert.Equal(t, "ENDPOINT_GONE", errorCode(body))
	assert.True(t, registry.disabled["https://push.example/dead"])
}

func TestSendTestTransientFailure(t *testing.T) {
	registry := newFakeRegistry()
	registry.subs["https://push.example/flaky"] = push.Subscription{Endpoint: "https://push.example/flaky"}
	sender := &fakeSender{err: errors.New("503")}
	srv := newServer(t, &fakeProvider{}, registry, sender)

	resp, body := post(t, srv, "/api/v1/push/test", `{"endpoint": "https://push.example/flaky"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "PUSH_FAILED", errorCode(body))
	assert.False(t, registry.disabled["https://push.example/flaky"])
}
