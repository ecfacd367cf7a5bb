package ports

import (
	"context"

	"tube-route-service/internal/domain"
)

// Port: a boundary for retrieving the station set from a data source.
type StationRepository interface {
	// Retrieve all stations available for route optimization, without
	// journey times assigned.
	ListStations(ctx context.Context) ([]*domain.Station, error)
}
