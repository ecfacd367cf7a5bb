package tfl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// One stop-point search result with a usable ICS id.
type StopPointMatch struct {
	Name  string
	ICSID string
}

type stopPointResponse struct {
	Total   int `json:"total"`
	Matches []struct {
		Name  string `json:"name"`
		ICSID string `json:"icsId"`
	} `json:"matches"`
}

// SearchStopPoints queries the TfL stop-point search for tube stations
// matching name. Matches without an ICS id are dropped; ambiguity is
// left to the caller to resolve.
func (p *JourneyProvider) SearchStopPoints(ctx context.Context, name string) ([]StopPointMatch, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return nil, errors.New("search stop points: name must be non-empty")
	}

	endpoint := fmt.Sprintf("%s/StopPoint/Search/%s?modes=%s", p.baseURL, url.PathEscape(name), p.mode)

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, endpoint)
	})
	if err != nil {
		return nil, fmt.Errorf("stop point search %q: %w", name, err)
	}
	defer resp.Body.Close()

	var decoded stopPointResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode stop point response: %w", err)
	}

	matches := make([]StopPointMatch, 0, len(decoded.Matches))
	for _, m := range decoded.Matches {
		if m.ICSID == "" {
			continue
		}
		matches = append(matches, StopPointMatch{Name: m.Name, ICSID: m.ICSID})
	}

	return matches, nil
}

// ResolveStationID maps a station name to its ICS id, preferring the
// persistent id cache over a search round trip. On ambiguity the first
// match wins; interactive disambiguation belongs to callers that want
// it.
func (p *JourneyProvider) ResolveStationID(ctx context.Context, name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", errors.New("resolve station id: name must be non-empty")
	}

	if p.idCache != nil {
		hits, err := p.idCache.GetMany(ctx, []string{name})
		if err != nil {
			return "", fmt.Errorf("resolve station id: id cache: %w", err)
		}
		if id, ok := hits[name]; ok {
			return id, nil
		}
	}

	matches, err := p.SearchStopPoints(ctx, name)
	if err != nil {
		return "", fmt.Errorf("resolve station id: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("resolve station id: station %q does not exist", name)
	}

	id := matches[0].ICSID

	if p.idCache != nil {
		if err := p.idCache.PutMany(ctx, map[string]string{name: id}); err != nil {
			log.Printf("station id cache write failed: %v", err)
		}
	}

	return id, nil
}
