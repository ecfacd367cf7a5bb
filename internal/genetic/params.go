package genetic

import "fmt"

// Run parameters for a genetic search. Validated once up front; a run
// never starts with a violated constraint and never substitutes a
// default for an invalid value.
type Params struct {
	// Number of evolution steps after generation zero.
	Generations int
	// Routes per generation.
	PopulationSize int
	// Top-ranked routes carried verbatim into the next generation.
	EliteSize int
	// Probability in [0,1] that any working-set member is perturbed.
	MutationRate float64
	// Seed for the run's random source; identical seeds and inputs
	// reproduce identical histories.
	Seed int64
	// ProtectElites shields carried-over elites from mutation. By
	// default an elite can be perturbed in the same step it was
	// preserved.
	ProtectElites bool
	// StagnationLimit stops the run early after this many consecutive
	// generations without a best-duration improvement. Zero disables
	// early stopping.
	StagnationLimit int
}

// InvalidParamsError reports the first violated run-parameter
// constraint. Fatal before any generation runs.
type InvalidParamsError struct {
	Param  string
	Reason string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

func (p Params) Validate() error {
	if p.Generations <= 0 {
		return &InvalidParamsError{Param: "generations", Reason: fmt.Sprintf("must be > 0, got %d", p.Generations)}
	}
	if p.PopulationSize < 2 {
		return &InvalidParamsError{Param: "population_size", Reason: fmt.Sprintf("must be >= 2, got %d", p.PopulationSize)}
	}
	if p.EliteSize < 0 || p.EliteSize >= p.PopulationSize {
		return &InvalidParamsError{
			Param:  "elite_size",
			Reason: fmt.Sprintf("must be in [0, population_size), got %d with population_size=%d", p.EliteSize, p.PopulationSize),
		}
	}
	if p.MutationRate < 0 || p.MutationRate > 1 {
		return &InvalidParamsError{Param: "mutation_rate", Reason: fmt.Sprintf("must be in [0,1], got %g", p.MutationRate)}
	}
	if p.Seed < 0 {
		return &InvalidParamsError{Param: "random_seed", Reason: fmt.Sprintf("must be >= 0, got %d", p.Seed)}
	}
	if p.StagnationLimit < 0 {
		return &InvalidParamsError{Param: "stagnation_limit", Reason: fmt.Sprintf("must be >= 0, got %d", p.StagnationLimit)}
	}
	return nil
}
