package genetic

import (
	"gonum.org/v1/gonum/stat"

	"tube-route-service/internal/domain"
)

func summarize(ranked []*domain.Route) GenerationStats {
	durations := make([]float64, len(ranked))
	for i, r := range ranked {
		durations[i] = float64(r.Duration)
	}

	return GenerationStats{
		Best:   ranked[0].Duration,
		Mean:   stat.Mean(durations, nil),
		StdDev: stat.PopStdDev(durations, nil),
	}
}

// Homogeneity reports chi-squared per degree of freedom of the final
// selection table's CDF against the straight line expected from a
// population of identical durations. The closer to zero, the more
// homogeneous the final generation; large values mean the search ended
// with a spread-out population and could benefit from more
// generations.
func Homogeneity(table SelectionTable) float64 {
	n := len(table)
	if n < 2 {
		return 0
	}

	chi := 0.0
	for i := 1; i < n; i++ {
		expected := float64(i) / float64(n-1)
		diff := table[i].CDF - expected
		chi += diff * diff / (float64(i) / float64(n))
	}

	ndf := float64(n - 3)
	if ndf <= 0 {
		return chi
	}
	return chi / ndf
}
