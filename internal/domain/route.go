package domain

// Represents one candidate ordering of all stations, starting from the
// fixed start station and visiting every other station exactly once.
// Duration is derived from the path at construction time and never
// updated afterwards: crossover and mutation always build a new Route
// rather than editing an existing one, so a Route can be shared freely
// between generations.
type Route struct {
	Path     []*Station
	Duration int
}

// NewRoute computes the total journey duration by summing the pairwise
// durations along consecutive stops. A missing pairwise duration means
// the journey-time matrix handed to AssignJourneyTimes was incomplete,
// which is an upstream data contract breach, not a search failure.
func NewRoute(path []*Station) (*Route, error) {
	duration := 0
	for i := 0; i < len(path)-1; i++ {
		minutes, ok := path[i].TimeTo[path[i+1].ID]
		if !ok {
			return nil, &MissingDurationError{From: path[i].Name, To: path[i+1].Name}
		}
		duration += minutes
	}

	return &Route{Path: path, Duration: duration}, nil
}
