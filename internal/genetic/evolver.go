package genetic

import (
	"fmt"
	"math/rand"

	"tube-route-service/internal/domain"
)

// Per-generation duration summary across the ranked population.
type GenerationStats struct {
	Best   int
	Mean   float64
	StdDev float64
}

// Terminal output of a run: the per-generation best-duration history,
// the per-generation (mean, stddev) history, and the final ranked
// population with its selection table. Index 0 of both histories is
// generation zero (the initial population).
type Result struct {
	BestByGeneration []int
	Stats            []GenerationStats
	FinalPopulation  []*domain.Route
	FinalTable       SelectionTable
	// Evolution steps actually run; less than Params.Generations only
	// when StagnationLimit stopped the run early.
	Generations int
}

// Best returns the quickest route of the final generation.
func (r *Result) Best() *domain.Route {
	return r.FinalPopulation[0]
}

// Run executes the full generational search: build and rank generation
// zero, then for each step rank, carry elites, breed, mutate and
// re-rank. Random draws are consumed in a fixed serial order within
// each step (all selection draws, then per-pair crossover cuts, then
// per-member mutation rolls) so identical seeds and inputs reproduce
// identical histories bit for bit.
func Run(stations []*domain.Station, start *domain.Station, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(p.Seed))

	population, err := NewPopulation(stations, start, p.PopulationSize, rng)
	if err != nil {
		return nil, err
	}
	ranked, table, err := Rank(population)
	if err != nil {
		return nil, err
	}

	res := &Result{
		BestByGeneration: make([]int, 0, p.Generations+1),
		Stats:            make([]GenerationStats, 0, p.Generations+1),
	}
	res.record(ranked)

	stale := 0
	for g := 1; g <= p.Generations; g++ {
		working, err := evolveOnce(ranked, table, p, rng)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", g, err)
		}

		ranked, table, err = Rank(working)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", g, err)
		}
		res.record(ranked)

		if p.StagnationLimit > 0 {
			n := len(res.BestByGeneration)
			if res.BestByGeneration[n-1] < res.BestByGeneration[n-2] {
				stale = 0
			} else {
				stale++
			}
			if stale >= p.StagnationLimit {
				break
			}
		}
	}

	res.FinalPopulation = ranked
	res.FinalTable = table
	res.Generations = len(res.BestByGeneration) - 1
	return res, nil
}

// evolveOnce produces the next unranked working set from a ranked
// population. Elites are referenced, not copied, across the boundary.
// Mutation then runs over the whole working set, elites included
// unless ProtectElites is set, so a carried elite can be perturbed
// into a worse route in the same step.
func evolveOnce(ranked []*domain.Route, table SelectionTable, p Params, rng *rand.Rand) ([]*domain.Route, error) {
	working := make([]*domain.Route, 0, p.PopulationSize)
	working = append(working, ranked[:p.EliteSize]...)

	pairs := SelectPairs(table, p.PopulationSize-p.EliteSize, rng)
	for _, pair := range pairs {
		child, err := Crossover(pair.Mother, pair.Father, rng)
		if err != nil {
			return nil, err
		}
		working = append(working, child)
	}

	for i := range working {
		if p.ProtectElites && i < p.EliteSize {
			continue
		}
		mutated, err := Mutate(working[i], p.MutationRate, rng)
		if err != nil {
			return nil, err
		}
		working[i] = mutated
	}

	return working, nil
}

func (r *Result) record(ranked []*domain.Route) {
	stats := summarize(ranked)
	r.BestByGeneration = append(r.BestByGeneration, stats.Best)
	r.Stats = append(r.Stats, stats)
}
