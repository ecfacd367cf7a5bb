package domain

import (
	"errors"
	"testing"
)

func buildStations(t *testing.T, names []string, matrix [][]int) []*Station {
	t.Helper()

	stations := make([]*Station, len(names))
	for i, name := range names {
		stations[i] = NewStation(name, "940GZZLU"+name)
	}
	if err := AssignJourneyTimes(stations, matrix); err != nil {
		t.Fatalf("assign journey times: %v", err)
	}
	return stations
}

func TestNewRouteSumsDurations(t *testing.T) {
	stations := buildStations(t, []string{"A", "B", "C"}, [][]int{
		{0, 5, 10},
		{5, 0, 3},
		{10, 3, 0},
	})

	route, err := NewRoute([]*Station{stations[0], stations[1], stations[2]})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Duration != 8 {
		t.Fatalf("duration = %d, want 8", route.Duration)
	}

	route, err = NewRoute([]*Station{stations[0], stations[2], stations[1]})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Duration != 13 {
		t.Fatalf("duration = %d, want 13", route.Duration)
	}
}

func TestNewRouteMissingDuration(t *testing.T) {
	a := NewStation("A", "940GZZLUA")
	b := NewStation("B", "940GZZLUB")
	a.TimeTo = map[string]int{}

	_, err := NewRoute([]*Station{a, b})
	if err == nil {
		t.Fatal("expected error for missing pairwise duration")
	}

	var missing *MissingDurationError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDurationError, got %T: %v", err, err)
	}
	if missing.From != "A" || missing.To != "B" {
		t.Fatalf("error pair = %q -> %q, want A -> B", missing.From, missing.To)
	}
}

func TestAssignJourneyTimesValidation(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]int
	}{
		{
			name:   "wrong row count",
			matrix: [][]int{{0, 1}, {1, 0}},
		},
		{
			name: "wrong column count",
			matrix: [][]int{
				{0, 1, 2},
				{1, 0},
				{2, 3, 0},
			},
		},
		{
			name: "non-zero diagonal",
			matrix: [][]int{
				{1, 1, 2},
				{1, 0, 3},
				{2, 3, 0},
			},
		},
		{
			name: "negative duration",
			matrix: [][]int{
				{0, -1, 2},
				{-1, 0, 3},
				{2, 3, 0},
			},
		},
		{
			name: "asymmetric",
			matrix: [][]int{
				{0, 1, 2},
				{9, 0, 3},
				{2, 3, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stations := []*Station{
				NewStation("A", "940GZZLUA"),
				NewStation("B", "940GZZLUB"),
				NewStation("C", "940GZZLUC"),
			}
			if err := AssignJourneyTimes(stations, tt.matrix); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestAssignJourneyTimesPopulatesAllPairs(t *testing.T) {
	stations := buildStations(t, []string{"A", "B", "C"}, [][]int{
		{0, 5, 10},
		{5, 0, 3},
		{10, 3, 0},
	})

	for i, s := range stations {
		if len(s.TimeTo) != len(stations)-1 {
			t.Fatalf("station %q has %d pairs, want %d", s.Name, len(s.TimeTo), len(stations)-1)
		}
		if _, ok := s.TimeTo[s.ID]; ok {
			t.Fatalf("station %q stores a self duration", s.Name)
		}
		for j, other := range stations {
			if i == j {
				continue
			}
			if got := s.TimeTo[other.ID]; got != other.TimeTo[s.ID] {
				t.Fatalf("asymmetric assignment between %q and %q", s.Name, other.Name)
			}
		}
	}
}
