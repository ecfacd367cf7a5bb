package genetic

import (
	"math/rand"

	"tube-route-service/internal/domain"
)

// Mutate rolls once against rate and either returns the route
// untouched or builds a new route with two distinct non-start
// positions swapped. Position 0 (the fixed start) is never eligible.
// The original route is never edited in place.
func Mutate(route *domain.Route, rate float64, rng *rand.Rand) (*domain.Route, error) {
	if rng.Float64() > rate {
		return route, nil
	}

	n := len(route.Path)
	i := 1 + rng.Intn(n-1)
	j := 1 + rng.Intn(n-1)
	for j == i {
		j = 1 + rng.Intn(n-1)
	}

	return swapStations(route, i, j)
}

func swapStations(route *domain.Route, i, j int) (*domain.Route, error) {
	path := make([]*domain.Station, len(route.Path))
	copy(path, route.Path)
	path[i], path[j] = path[j], path[i]
	return domain.NewRoute(path)
}
