package genetic

import (
	"fmt"
	"math/rand"

	"tube-route-service/internal/domain"
)

// Crossover breeds one child from a mother and father route using a
// positional splice. The start station and the stops outside the
// spliced segment come from the mother; every station inside the
// segment keeps the absolute index it has in the father's full path.
//
// Two distinct cut indices are drawn from [1, n), position 0 being the
// fixed start and never cut, with the second redrawn until distinct.
// The half-open segment father.Path[lo:hi) is removed from a copy of
// the mother's path and re-inserted station by station at the father's
// indices, each insertion evaluated against the child's length at that
// step. The shifting-insertion rule is deliberate; this is not the
// classic order crossover.
func Crossover(mother, father *domain.Route, rng *rand.Rand) (*domain.Route, error) {
	n := len(father.Path)
	cutA := 1 + rng.Intn(n-1)
	cutB := 1 + rng.Intn(n-1)
	for cutB == cutA {
		cutB = 1 + rng.Intn(n-1)
	}

	lo, hi := cutA, cutB
	if lo > hi {
		lo, hi = hi, lo
	}

	child, err := spliceChild(mother, father, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}
	return child, nil
}

func spliceChild(mother, father *domain.Route, lo, hi int) (*domain.Route, error) {
	segment := father.Path[lo:hi]
	inSegment := make(map[*domain.Station]struct{}, len(segment))
	for _, s := range segment {
		inSegment[s] = struct{}{}
	}

	// Mother's contribution: her ordering minus the father's segment,
	// matched by identity regardless of position.
	path := make([]*domain.Station, 0, len(mother.Path))
	for _, s := range mother.Path {
		if _, ok := inSegment[s]; !ok {
			path = append(path, s)
		}
	}

	// Father's contribution: paths are permutations, so the full-path
	// index of segment[i] is lo+i. An index past the current child
	// length appends.
	for i, s := range segment {
		at := lo + i
		if at >= len(path) {
			path = append(path, s)
			continue
		}
		path = append(path[:at], append([]*domain.Station{s}, path[at:]...)...)
	}

	return domain.NewRoute(path)
}
