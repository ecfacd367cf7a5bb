package genetic

import (
	"math/rand"

	"tube-route-service/internal/domain"
)

// A breeding pair drawn from the ranked population.
type Pair struct {
	Mother *domain.Route
	Father *domain.Route
}

// Bound on father redraws when mother and father resolve to the same
// route. A tiny or fully converged population can keep reselecting the
// same candidate; after this many attempts the duplicate is accepted
// rather than reported, since it only matters on degenerate inputs.
const maxParentRedraws = 100

// SelectPairs draws count (mother, father) pairs by
// fitness-proportionate sampling. Per pair it consumes exactly one
// uniform draw for the mother, one for the father, plus one per father
// redraw, a fixed order that keeps runs reproducible under a seed.
func SelectPairs(table SelectionTable, count int, rng *rand.Rand) []Pair {
	pairs := make([]Pair, 0, count)
	for i := 0; i < count; i++ {
		mother := table.pick(rng.Float64())
		father := table.pick(rng.Float64())
		for retry := 0; father == mother && retry < maxParentRedraws; retry++ {
			father = table.pick(rng.Float64())
		}
		pairs = append(pairs, Pair{Mother: mother, Father: father})
	}
	return pairs
}

// pick returns the first ranked route whose CDF is at least u. The
// last entry absorbs any floating-point shortfall in the cumulative
// sum, so a draw just above the final CDF still selects it.
func (t SelectionTable) pick(u float64) *domain.Route {
	for i := range t {
		if t[i].CDF >= u {
			return t[i].Route
		}
	}
	return t[len(t)-1].Route
}
