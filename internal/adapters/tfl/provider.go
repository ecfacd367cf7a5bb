package tfl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"tube-route-service/internal/platform/obs"
	"tube-route-service/internal/ports"
)

// JourneyProvider implements JourneyTimeProvider using the Transport
// for London unified API.
//
// It coordinates:
//   - Station name resolution via stop-point search with a persistent
//     id cache
//   - Persistent journey-duration caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type JourneyProvider struct {
	session      *http.Client
	appKey       string
	baseURL      string
	mode         string
	travelDate   string // yyyyMMdd, journey planner query date
	travelTime   string // HHmm, journey planner query time
	journeyCache ports.JourneyCache
	idCache      ports.StationIDCache
}

// NewJourneyProvider builds a provider querying journeys for the given
// travel date (yyyyMMdd) and time (HHmm). An empty date defaults to
// the next Wednesday, a typical mid-week timetable; an empty time
// defaults to 09:00. The app key may be empty for anonymous access.
func NewJourneyProvider(
	appKey string,
	travelDate string,
	travelTime string,
	journeyCache ports.JourneyCache,
	idCache ports.StationIDCache,
) (*JourneyProvider, error) {
	if travelDate == "" {
		travelDate = NextTravelDate(time.Now())
	}
	if _, err := time.Parse("20060102", travelDate); err != nil {
		return nil, fmt.Errorf("tfl provider: travel date %q is not yyyyMMdd: %w", travelDate, err)
	}

	if travelTime == "" {
		travelTime = "0900"
	}
	if _, err := time.Parse("1504", travelTime); err != nil {
		return nil, fmt.Errorf("tfl provider: travel time %q is not HHmm: %w", travelTime, err)
	}

	return &JourneyProvider{
		session:      &http.Client{Timeout: 15 * time.Second},
		appKey:       appKey,
		baseURL:      "https://api.tfl.gov.uk",
		mode:         "tube",
		travelDate:   travelDate,
		travelTime:   travelTime,
		journeyCache: journeyCache,
		idCache:      idCache,
	}, nil
}

// NextTravelDate returns the date of the next Wednesday after now in
// yyyyMMdd format. Journey times are queried against a fixed mid-week
// day so matrices built on different days stay comparable.
func NextTravelDate(now time.Time) string {
	const travelDay = time.Wednesday
	days := (int(travelDay) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days).Format("20060102")
}

type journeyResponse struct {
	Journeys []struct {
		Duration float64 `json:"duration"`
	} `json:"journeys"`
}

// GetJourneyTime returns the mean duration in minutes across the
// journeys the planner proposes between two stations, rounded to the
// nearest minute. Journey times are treated as symmetric, so a fetched
// duration is cached in both directions.
func (p *JourneyProvider) GetJourneyTime(
	ctx context.Context,
	fromID string,
	toID string,
) (_ ports.JourneyResult, err error) {
	defer obs.Time(ctx, "tfl.GetJourneyTime")(&err)

	if fromID == "" || toID == "" {
		return ports.JourneyResult{}, errors.New("get journey time: station ids must be non-empty")
	}
	if fromID == toID {
		return ports.JourneyResult{DurationMinutes: 0}, nil
	}

	if p.journeyCache != nil {
		hits, err := p.journeyCache.GetMany(ctx, fromID, []string{toID})
		if err != nil {
			return ports.JourneyResult{}, fmt.Errorf("get journey time: journey cache: %w", err)
		}
		if r, ok := hits[toID]; ok {
			return r, nil
		}
	}

	result, err := p.fetchJourneyTime(ctx, fromID, toID)
	if err != nil {
		return ports.JourneyResult{}, err
	}

	if p.journeyCache != nil {
		put := map[string]ports.JourneyResult{toID: result}
		if err := p.journeyCache.PutMany(ctx, fromID, put); err != nil {
			log.Printf("journey cache write failed: %v", err)
		}
		reverse := map[string]ports.JourneyResult{fromID: result}
		if err := p.journeyCache.PutMany(ctx, toID, reverse); err != nil {
			log.Printf("journey cache write failed: %v", err)
		}
	}

	return result, nil
}

func (p *JourneyProvider) fetchJourneyTime(ctx context.Context, fromID, toID string) (ports.JourneyResult, error) {
	endpoint := fmt.Sprintf(
		"%s/journey/journeyresults/%s/to/%s?date=%s&time=%s&mode=%s&alternativeWalking=false",
		p.baseURL,
		url.PathEscape(fromID), url.PathEscape(toID),
		p.travelDate, p.travelTime, p.mode,
	)

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, endpoint)
	})
	if err != nil {
		return ports.JourneyResult{}, fmt.Errorf("journey request %q -> %q: %w", fromID, toID, err)
	}
	defer resp.Body.Close()

	var decoded journeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.JourneyResult{}, fmt.Errorf("decode journey response: %w", err)
	}

	if len(decoded.Journeys) == 0 {
		return ports.JourneyResult{}, fmt.Errorf("journey planner returned no journeys for %q -> %q", fromID, toID)
	}

	// Mean duration across the proposed journeys, rounded to whole
	// minutes for the matrix.
	total := 0.0
	for _, j := range decoded.Journeys {
		total += j.Duration
	}
	mean := total / float64(len(decoded.Journeys))

	return ports.JourneyResult{DurationMinutes: int(math.Round(mean))}, nil
}
