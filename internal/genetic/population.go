package genetic

import (
	"fmt"
	"math/rand"

	"tube-route-service/internal/domain"
)

// NewPopulation builds generation zero: size routes, each visiting the
// non-start stations in an independent uniformly random order after
// the fixed start. All randomness comes from the supplied rng; there
// is no hidden process-wide random state.
//
// At least three stations are required (start plus two others) so the
// crossover and mutation index ranges are well-formed.
func NewPopulation(stations []*domain.Station, start *domain.Station, size int, rng *rand.Rand) ([]*domain.Route, error) {
	if len(stations) < 3 {
		return nil, fmt.Errorf("new population: need at least 3 stations, got %d", len(stations))
	}

	rest := make([]*domain.Station, 0, len(stations)-1)
	found := false
	for _, s := range stations {
		if s == start {
			found = true
			continue
		}
		rest = append(rest, s)
	}
	if !found {
		return nil, fmt.Errorf("new population: start station %q is not in the station set", start.Name)
	}

	population := make([]*domain.Route, 0, size)
	for i := 0; i < size; i++ {
		path := make([]*domain.Station, 0, len(stations))
		path = append(path, start)
		for _, j := range rng.Perm(len(rest)) {
			path = append(path, rest[j])
		}

		route, err := domain.NewRoute(path)
		if err != nil {
			return nil, fmt.Errorf("new population: %w", err)
		}
		population = append(population, route)
	}

	return population, nil
}
