package services

import (
	"context"
	"fmt"
	"sync"

	"tube-route-service/internal/domain"
	"tube-route-service/internal/ports"
)

type pairwiseResult struct {
	from    int
	to      int
	minutes int
	err     error
}

// BuildJourneyMatrix produces the complete pairwise journey-time
// matrix for the station set. Journey times are assumed symmetric, so
// only the strict upper triangle is fetched from the provider; it is
// then mirrored into a hollow symmetric matrix of whole minutes.
//
// Pair fetches run with bounded concurrency to keep external API load
// sane; the search core itself never performs I/O, so concurrency here
// has no effect on reproducibility.
func BuildJourneyMatrix(
	ctx context.Context,
	stations []*domain.Station,
	provider ports.JourneyTimeProvider,
) ([][]int, error) {
	n := len(stations)
	if n < 2 {
		return nil, fmt.Errorf("build journey matrix: need at least 2 stations, got %d", n)
	}

	type pair struct{ from, to int }
	pairs := make([]pair, 0, n*(n-1)/2)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, pair{from: i, to: j})
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	resultsCh := make(chan pairwiseResult, len(pairs))
	var wg sync.WaitGroup

	for _, p := range pairs {
		wg.Add(1)
		go func(from, to int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			r, err := provider.GetJourneyTime(ctx, stations[from].ID, stations[to].ID)
			if err != nil {
				resultsCh <- pairwiseResult{
					from: from,
					to:   to,
					err: fmt.Errorf(
						"build journey matrix: get journey time %q -> %q: %w",
						stations[from].Name, stations[to].Name, err,
					),
				}
				cancel()
				return
			}

			resultsCh <- pairwiseResult{from: from, to: to, minutes: r.DurationMinutes}
		}(p.from, p.to)
	}

	wg.Wait()
	close(resultsCh)

	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
	}

	var pairwiseErr error
	for res := range resultsCh {
		if res.err != nil {
			if pairwiseErr == nil {
				pairwiseErr = res.err
			}
			continue
		}
		matrix[res.from][res.to] = res.minutes
		matrix[res.to][res.from] = res.minutes
	}
	if pairwiseErr != nil {
		return nil, pairwiseErr
	}

	return matrix, nil
}
