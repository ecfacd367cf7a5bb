package tfl

import (
	"context"
	"fmt"

	"tube-route-service/internal/ports"
)

type MockPair struct {
	From, To string
	Minutes  int
}

// In-memory JourneyTimeProvider for tests and offline runs. Pairs are
// stored directionally; register both directions for symmetric data.
type MockJourneyProvider struct {
	m map[string]ports.JourneyResult
}

func NewMockJourneyProvider(pairs []MockPair) *MockJourneyProvider {
	m := make(map[string]ports.JourneyResult, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = ports.JourneyResult{DurationMinutes: p.Minutes}
	}
	return &MockJourneyProvider{m: m}
}

func (p *MockJourneyProvider) GetJourneyTime(ctx context.Context, fromID, toID string) (ports.JourneyResult, error) {
	r, ok := p.m[fromID+"|"+toID]
	if !ok {
		return ports.JourneyResult{}, fmt.Errorf("missing pair %q -> %q", fromID, toID)
	}

	return r, nil
}
