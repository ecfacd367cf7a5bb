package domain

import "fmt"

// Represents a London Underground station together with the journey
// durations (whole minutes) to every other station in the working set.
// TimeTo is keyed by the other station's ICS id and is complete once
// AssignJourneyTimes has run: every other station present, symmetric
// across the set, self-duration implicit zero (not stored).
//
// Stations are built once and shared read-only by every route in every
// generation; nothing mutates them after assignment.
type Station struct {
	Name   string
	ID     string
	TimeTo map[string]int
}

func NewStation(name, id string) *Station {
	return &Station{Name: name, ID: id}
}

// AssignJourneyTimes wires matrix[i][j] as the journey duration from
// stations[i] to stations[j]. The matrix must be square with the same
// dimension as the station set, hollow (zero diagonal), symmetric and
// non-negative; anything else signals a broken upstream data contract.
func AssignJourneyTimes(stations []*Station, matrix [][]int) error {
	n := len(stations)
	if len(matrix) != n {
		return fmt.Errorf("assign journey times: matrix has %d rows for %d stations", len(matrix), n)
	}

	for i, row := range matrix {
		if len(row) != n {
			return fmt.Errorf("assign journey times: row %d has %d columns for %d stations", i, len(row), n)
		}
		if row[i] != 0 {
			return fmt.Errorf("assign journey times: non-zero self duration %d for %q", row[i], stations[i].Name)
		}

		for j, minutes := range row {
			if minutes < 0 {
				return fmt.Errorf(
					"assign journey times: negative duration %d from %q to %q",
					minutes, stations[i].Name, stations[j].Name,
				)
			}
			if matrix[j][i] != minutes {
				return fmt.Errorf(
					"assign journey times: asymmetric durations between %q and %q (%d vs %d)",
					stations[i].Name, stations[j].Name, minutes, matrix[j][i],
				)
			}
		}
	}

	for i, s := range stations {
		timeTo := make(map[string]int, n-1)
		for j, other := range stations {
			if i == j {
				continue
			}
			timeTo[other.ID] = matrix[i][j]
		}
		s.TimeTo = timeTo
	}

	return nil
}
