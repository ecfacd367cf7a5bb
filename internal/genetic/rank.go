package genetic

import (
	"fmt"
	"sort"

	"tube-route-service/internal/domain"
)

// One ranked route paired with its selection weights. Fitness is the
// reciprocal of the route duration, so quicker routes are fitter; CDF
// is the cumulative normalized fitness in ranked order, used for
// fitness-proportionate parent selection.
type SelectionEntry struct {
	Route      *domain.Route
	Fitness    float64
	CumFitness float64
	CDF        float64
}

// Derived per-population artifact aligned with the ranked order.
// Rebuilt every generation, never persisted.
type SelectionTable []SelectionEntry

// Rank sorts the population ascending by duration (stable on ties) and
// derives the selection table. The input slice is left untouched.
func Rank(population []*domain.Route) ([]*domain.Route, SelectionTable, error) {
	if len(population) == 0 {
		return nil, nil, fmt.Errorf("rank: population is empty")
	}

	ranked := make([]*domain.Route, len(population))
	copy(ranked, population)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Duration < ranked[j].Duration
	})

	total := 0.0
	for _, r := range ranked {
		if r.Duration <= 0 {
			return nil, nil, fmt.Errorf("rank: route duration must be positive for fitness, got %d", r.Duration)
		}
		total += 1.0 / float64(r.Duration)
	}

	table := make(SelectionTable, len(ranked))
	cum := 0.0
	for i, r := range ranked {
		fitness := 1.0 / float64(r.Duration)
		cum += fitness
		table[i] = SelectionEntry{
			Route:      r,
			Fitness:    fitness,
			CumFitness: cum,
			CDF:        cum / total,
		}
	}

	return ranked, table, nil
}
