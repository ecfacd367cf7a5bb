package services

import (
	"context"
	"errors"
	"fmt"

	"tube-route-service/internal/domain"
	"tube-route-service/internal/genetic"
	"tube-route-service/internal/platform/obs"
	"tube-route-service/internal/ports"
)

// ErrUnknownStart reports an optimize request naming a start station
// outside the stored station set.
var ErrUnknownStart = errors.New("start station is not in the station set")

type OptimizeRequest struct {
	// ICS id or exact name of the start station; matched against the
	// repository's station set.
	Start  string
	Params genetic.Params
}

// OptimizeRoute loads the station set, materializes the journey-time
// matrix through the provider (and whatever caches sit behind it), and
// runs the genetic search from the requested start station. All I/O
// happens before the search starts; the core itself is pure
// computation.
func OptimizeRoute(
	ctx context.Context,
	req OptimizeRequest,
	repo ports.StationRepository,
	provider ports.JourneyTimeProvider,
) (_ *genetic.Result, err error) {
	defer obs.Time(ctx, "services.OptimizeRoute")(&err)

	if err := req.Params.Validate(); err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	stations, err := repo.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("optimize route: list stations: %w", err)
	}
	if len(stations) < 3 {
		return nil, fmt.Errorf("optimize route: need at least 3 stations, got %d", len(stations))
	}

	start, err := findStart(stations, req.Start)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	matrix, err := BuildJourneyMatrix(ctx, stations, provider)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}
	if err := domain.AssignJourneyTimes(stations, matrix); err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	result, err := genetic.Run(stations, start, req.Params)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	return result, nil
}

func findStart(stations []*domain.Station, key string) (*domain.Station, error) {
	if key == "" {
		return nil, errors.New("start station is required")
	}

	for _, s := range stations {
		if s.ID == key || s.Name == key {
			return s, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownStart, key)
}
