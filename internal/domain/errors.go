package domain

import "fmt"

// MissingDurationError reports a station pair with no journey duration
// in the pairwise table. It is fatal to a run: the core never retries
// or substitutes a default.
type MissingDurationError struct {
	From string
	To   string
}

func (e *MissingDurationError) Error() string {
	return fmt.Sprintf("no journey duration from %q to %q", e.From, e.To)
}
