package ports

import "context"

// Travel time between two stations in whole minutes.
type JourneyResult struct {
	DurationMinutes int
}

// Contract for retrieving journey durations between stations by ICS
// id. Implementations own all retry and resilience logic; the search
// core never sees a transient failure.
type JourneyTimeProvider interface {
	// Return the estimated journey duration between two stations.
	GetJourneyTime(ctx context.Context, fromID string, toID string) (JourneyResult, error)
}
