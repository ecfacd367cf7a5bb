package tfl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tube-route-service/internal/ports"
)

type fakeJourneyCache struct {
	mu   sync.Mutex
	data map[string]int
	puts int
}

func newFakeJourneyCache() *fakeJourneyCache {
	return &fakeJourneyCache{data: map[string]int{}}
}

func (f *fakeJourneyCache) GetMany(ctx context.Context, origin string, destinations []string) (map[string]ports.JourneyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := map[string]ports.JourneyResult{}
	for _, d := range destinations {
		if minutes, ok := f.data[origin+"|"+d]; ok {
			out[d] = ports.JourneyResult{DurationMinutes: minutes}
		}
	}
	return out, nil
}

func (f *fakeJourneyCache) PutMany(ctx context.Context, origin string, results map[string]ports.JourneyResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for d, r := range results {
		f.data[origin+"|"+d] = r.DurationMinutes
		f.puts++
	}
	return nil
}

func newTestProvider(t *testing.T, baseURL string, journeyCache ports.JourneyCache) *JourneyProvider {
	t.Helper()

	p, err := NewJourneyProvider("", "20260902", "0900", journeyCache, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	p.baseURL = baseURL
	return p
}

func TestGetJourneyTimeMeansAndRounds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/journey/journeyresults/1000011/to/1000173" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("date") != "20260902" || q.Get("time") != "0900" || q.Get("mode") != "tube" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		// Mean of 10, 11, 13 is 11.33..., rounding to 11.
		fmt.Fprint(w, `{"journeys":[{"duration":10},{"duration":11},{"duration":13}]}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)

	r, err := p.GetJourneyTime(context.Background(), "1000011", "1000173")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DurationMinutes != 11 {
		t.Fatalf("duration = %d, want 11", r.DurationMinutes)
	}
	if calls != 1 {
		t.Fatalf("api calls = %d, want 1", calls)
	}
}

func TestGetJourneyTimeCachesBothDirections(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"journeys":[{"duration":7}]}`)
	}))
	defer srv.Close()

	cache := newFakeJourneyCache()
	p := newTestProvider(t, srv.URL, cache)

	if _, err := p.GetJourneyTime(context.Background(), "1", "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("api calls = %d, want 1", calls)
	}

	// The reverse direction must be answered from the cache.
	r, err := p.GetJourneyTime(context.Background(), "2", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DurationMinutes != 7 {
		t.Fatalf("duration = %d, want 7", r.DurationMinutes)
	}
	if calls != 1 {
		t.Fatalf("api calls = %d after cached reverse lookup, want 1", calls)
	}
	if cache.puts != 2 {
		t.Fatalf("cache writes = %d, want 2 (both directions)", cache.puts)
	}
}

func TestGetJourneyTimeSameStationIsZero(t *testing.T) {
	p := newTestProvider(t, "http://unreachable.invalid", nil)

	r, err := p.GetJourneyTime(context.Background(), "1", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DurationMinutes != 0 {
		t.Fatalf("duration = %d, want 0", r.DurationMinutes)
	}
}

func TestGetJourneyTimeNoJourneys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"journeys":[]}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)

	if _, err := p.GetJourneyTime(context.Background(), "1", "2"); err == nil {
		t.Fatal("expected error when the planner proposes no journeys")
	}
}

func TestDoWithRetryRecoversFromServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"journeys":[{"duration":5}]}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)

	r, err := p.GetJourneyTime(context.Background(), "1", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DurationMinutes != 5 {
		t.Fatalf("duration = %d, want 5", r.DurationMinutes)
	}
	if calls != 3 {
		t.Fatalf("api calls = %d, want 3", calls)
	}
}

func TestDoWithRetryGivesUpOnClientErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)

	if _, err := p.GetJourneyTime(context.Background(), "1", "2"); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if calls != 1 {
		t.Fatalf("api calls = %d, want 1 (404 is not retried)", calls)
	}
}

func TestResolveStationIDFirstMatchWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/StopPoint/Search/Baker Street" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"total": 2,
			"matches": [
				{"name": "Baker Street Underground Station", "icsId": "1000011"},
				{"name": "Baker Street (other)", "icsId": "1000999"}
			]
		}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)

	id, err := p.ResolveStationID(context.Background(), "  Baker   Street ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "1000011" {
		t.Fatalf("id = %q, want 1000011", id)
	}
}

func TestResolveStationIDUnknownStation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total": 0, "matches": []}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)

	if _, err := p.ResolveStationID(context.Background(), "Atlantis"); err == nil {
		t.Fatal("expected error for a station with no matches")
	}
}

func TestSearchStopPointsDropsMatchesWithoutID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"total": 2,
			"matches": [
				{"name": "With ID", "icsId": "1000011"},
				{"name": "Without ID", "icsId": ""}
			]
		}`)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, nil)

	matches, err := p.SearchStopPoints(context.Background(), "With")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("match count = %d, want 1", len(matches))
	}
	if matches[0].ICSID != "1000011" {
		t.Fatalf("id = %q, want 1000011", matches[0].ICSID)
	}
}

func TestNextTravelDate(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		// Monday -> Wednesday the same week.
		{now: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), want: "20260902"},
		// Wednesday -> the following Wednesday, never today.
		{now: time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), want: "20260909"},
		// Saturday -> next week's Wednesday.
		{now: time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC), want: "20260909"},
	}

	for _, tt := range tests {
		if got := NextTravelDate(tt.now); got != tt.want {
			t.Errorf("NextTravelDate(%s) = %q, want %q", tt.now.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestNewJourneyProviderValidatesDateAndTime(t *testing.T) {
	if _, err := NewJourneyProvider("", "2026-09-02", "0900", nil, nil); err == nil {
		t.Fatal("expected error for non-yyyyMMdd date")
	}
	if _, err := NewJourneyProvider("", "20260902", "9am", nil, nil); err == nil {
		t.Fatal("expected error for non-HHmm time")
	}

	p, err := NewJourneyProvider("", "", "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.travelTime != "0900" {
		t.Fatalf("default travel time = %q, want 0900", p.travelTime)
	}
	if p.travelDate == "" {
		t.Fatal("default travel date is empty")
	}
}
