package ports

import "context"

// Persistent cache of pairwise journey durations keyed by station id.
// Keys are expected to be consistent (already normalized) by the
// caller.
type JourneyCache interface {
	// Fetch cached durations for one origin and multiple destinations.
	// Missing pairs are simply absent from the result.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]JourneyResult, error)
	// Store durations for a single origin.
	PutMany(ctx context.Context, origin string, results map[string]JourneyResult) error
}

// Persistent cache mapping station names to resolved ICS ids, so
// repeated runs skip the stop-point search round trip.
type StationIDCache interface {
	GetMany(ctx context.Context, names []string) (map[string]string, error)
	PutMany(ctx context.Context, ids map[string]string) error
}
