package dto

// Zero is a legal elite size and mutation rate, so those two fields
// are pointers: nil means "use the API default".
type OptimizeRequest struct {
	Start           string   `json:"start"`
	Generations     int      `json:"generations"`
	PopulationSize  int      `json:"population_size"`
	EliteSize       *int     `json:"elite_size"`
	MutationRate    *float64 `json:"mutation_rate"`
	RandomSeed      int64    `json:"random_seed"`
	ProtectElites   bool     `json:"protect_elites"`
	StagnationLimit int      `json:"stagnation_limit"`
}

type GenerationStatsResponse struct {
	Generation  int     `json:"generation"`
	BestMinutes int     `json:"best_minutes"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
}

type RankedRouteResponse struct {
	Path            []string `json:"path"`
	DurationMinutes int      `json:"duration_minutes"`
	Fitness         float64  `json:"fitness"`
	CDF             float64  `json:"cdf"`
}

type OptimizeResponse struct {
	BestPath            []string                  `json:"best_path"`
	BestDurationMinutes int                       `json:"best_duration_minutes"`
	Generations         int                       `json:"generations"`
	BestByGeneration    []int                     `json:"best_by_generation"`
	Stats               []GenerationStatsResponse `json:"stats"`
	FinalPopulation     []RankedRouteResponse     `json:"final_population"`
	Homogeneity         float64                   `json:"homogeneity"`
}
