package push

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sienz16/ramadan-ku/internal/esolat"
	"github.com/Sienz16/ramadan-ku/internal/prayer"
)

// --------------------------------------------------------------------------
// Fakes
// --------------------------------------------------------------------------

type fakeStore struct {
	mu       sync.Mutex
	subs     map[string][]Subscription // zone -> subscriptions
	ledger   map[string]bool           // endpoint|key
	disabled map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		subs:     make(map[string][]Subscription),
		ledger:   make(map[string]bool),
		disabled: make(map[string]bool),
	}
}

func (f *fakeStore) ActiveZones(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zones []string
	for z := range f.subs {
		zones = append(zones, z)
	}
	return zones, nil
}

func (f *fakeStore) EnabledByZone(_ context.Context, zone string) ([]Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var enabled []Subscription
	for _, sub := range f.subs[zone] {
		if !f.disabled[sub.Endpoint] {
			enabled = append(enabled, sub)
		}
	}
	return enabled, nil
}

func (f *fakeStore) Disable(_ context.Context, endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled[endpoint] = true
	return nil
}

func (f *fakeStore) MarkDeliveryIfNew(_ context.Context, endpoint, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := endpoint + "|" + key
	if f.ledger[id] {
		return false, nil
	}
	f.ledger[id] = true
	return true, nil
}

type fakeTimings struct {
	byZone map[string]esolat.Today
	errs   map[string]error
}

func (f *fakeTimings) Today(_ context.Context, zone string) (esolat.Today, error) {
	if err := f.errs[zone]; err != nil {
		return esolat.Today{}, err
	}
	return f.byZone[zone], nil
}

type fakeTransport struct {
	mu   sync.Mutex
	sent []string // endpoints in send order
	fail map[string]error
}

func (f *fakeTransport) Send(_ context.Context, sub Subscription, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[sub.Endpoint]; err != nil {
		return err
	}
	f.sent = append(f.sent, sub.Endpoint)
	return nil
}

func (f *fakeTransport) sentEndpoints() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

// --------------------------------------------------------------------------
// Tests
// --------------------------------------------------------------------------

var dhuhrTiming = prayer.Timing{
	Fajr: "05:55", Sunrise: "07:00", Dhuhr: "13:15",
	Asr: "16:30", Maghrib: "19:20", Isha: "20:32",
}

// 13:15 local = 05:15 UTC.
var dhuhrInstant = time.Date(2026, 3, 1, 5, 15, 0, 0, time.UTC)

func TestRunOnceSendsOncePerSubscription(t *testing.T) {
	store := newFakeStore()
	store.subs["WLY01"] = []Subscription{
		{Endpoint: "https://push/a", Zone: "WLY01"},
		{Endpoint: "https://push/b", Zone: "WLY01"},
	}
	timings := &fakeTimings{byZone: map[string]esolat.Today{"WLY01": {Timing: dhuhrTiming}}}
	transport := &fakeTransport{}

	d := NewDispatcher(store, timings, transport, 2, nil)
	stats := d.RunOnce(context.Background(), dhuhrInstant)

	assert.Equal(t, 1, stats.Due)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 0, stats.Skipped)
	assert.ElementsMatch(t, []string{"https://push/a", "https://push/b"}, transport.sentEndpoints())
}

func TestRunOnceSecondTickSameMinuteSkips(t *testing.T) {
	store := newFakeStore()
	store.subs["WLY01"] = []Subscription{{Endpoint: "https://push/a", Zone: "WLY01"}}
	timings := &fakeTimings{byZone: map[string]esolat.Today{"WLY01": {Timing: dhuhrTiming}}}
	transport := &fakeTransport{}

	d := NewDispatcher(store, timings, transport, 1, nil)
	first := d.RunOnce(context.Background(), dhuhrInstant)
	second := d.RunOnce(context.Background(), dhuhrInstant.Add(10*time.Second))

	assert.Equal(t, 1, first.Sent)
	assert.Equal(t, 0, second.Sent)
	assert.Equal(t, 1, second.Skipped)
	assert.Len(t, transport.sentEndpoints(), 1)
}

func TestRunOnceNoEventDue(t *testing.T) {
	store := newFakeStore()
	store.subs["WLY01"] = []Subscription{{Endpoint: "https://push/a", Zone: "WLY01"}}
	timings := &fakeTimings{byZone: map[string]esolat.Today{"WLY01": {Timing: dhuhrTiming}}}
	transport := &fakeTransport{}

	d := NewDispatcher(store, timings, transport, 1, nil)
	stats := d.RunOnce(context.Background(), dhuhrInstant.Add(time.Minute))

	assert.Equal(t, 0, stats.Due)
	assert.Empty(t, transport.sentEndpoints())
	assert.Empty(t, store.ledger)
}

func TestRunOnceZoneFailureIsIsolated(t *testing.T) {
	store := newFakeStore()
	store.subs["WLY01"] = []Subscription{{Endpoint: "https://push/a", Zone: "WLY01"}}
	store.subs["SBH07"] = []Subscription{{Endpoint: "https://push/b", Zone: "SBH07"}}
	timings := &fakeTimings{
		byZone: map[string]esolat.Today{"SBH07": {Timing: dhuhrTiming}},
		errs:   map[string]error{"WLY01": esolat.ErrUnavailable},
	}
	transport := &fakeTransport{}

	d := NewDispatcher(store, timings, transport, 1, nil)
	stats := d.RunOnce(context.Background(), dhuhrInstant)

	assert.Equal(t, 1, stats.Sent)
	assert.Len(t, stats.Errors, 1)
	assert.Equal(t, []string{"https://push/b"}, transport.sentEndpoints())
}

func TestRunOnceGoneEndpointIsDisabled(t *testing.T) {
	store := newFakeStore()
	store.subs["WLY01"] = []Subscription{
		{Endpoint: "https://push/dead", Zone: "WLY01"},
		{Endpoint: "https://push/live", Zone: "WLY01"},
	}
	timings := &fakeTimings{byZone: map[string]esolat.Today{"WLY01": {Timing: dhuhrTiming}}}
	transport := &fakeTransport{fail: map[string]error{"https://push/dead": ErrEndpointGone}}

	d := NewDispatcher(store, timings, transport, 1, nil)
	stats := d.RunOnce(context.Background(), dhuhrInstant)

	assert.Equal(t, 1, stats.Sent)
	assert.True(t, store.disabled["https://push/dead"])
	assert.False(t, store.disabled["https://push/live"])
}

func TestRunOnceTransientFailureIsNotRetried(t *testing.T) {
	store := newFakeStore()
	store.subs["WLY01"] = []Subscription{{Endpoint: "https://push/flaky", Zone: "WLY01"}}
	timings := &fakeTimings{byZone: map[string]esolat.Today{"WLY01": {Timing: dhuhrTiming}}}
	transport := &fakeTransport{fail: map[string]error{"https://push/flaky": errors.New("503")}}

	d := NewDispatcher(store, timings, transport, 1, nil)
	first := d.RunOnce(context.Background(), dhuhrInstant)

	assert.Equal(t, 0, first.Sent)
	assert.False(t, store.disabled["https://push/flaky"])

	// The failed send was still claimed; a later tick in the same minute
	// must not attempt it again.
	transport.fail = nil
	second := d.RunOnce(context.Background(), dhuhrInstant.Add(20*time.Second))

	require.Equal(t, 0, second.Sent)
	assert.Equal(t, 1, second.Skipped)
	assert.Empty(t, transport.sentEndpoints())
}

func TestRunOnceOverlappingRunsSendOnce(t *testing.T) {
	store := newFakeStore()
	store.subs["WLY01"] = []Subscription{{Endpoint: "https://push/a", Zone: "WLY01"}}
	timings := &fakeTimings{byZone: map[string]esolat.Today{"WLY01": {Timing: dhuhrTiming}}}
	transport := &fakeTransport{}

	d := NewDispatcher(store, timings, transport, 2, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.RunOnce(context.Background(), dhuhrInstant)
		}()
	}
	wg.Wait()

	assert.Len(t, transport.sentEndpoints(), 1)
}
