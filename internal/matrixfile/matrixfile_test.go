package matrixfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tube-route-service/internal/domain"
)

func TestFilename(t *testing.T) {
	got := Filename("20260902", "0900", 12)
	want := "20260902_0900_12stationMatrix.csv"
	if got != want {
		t.Fatalf("filename = %q, want %q", got, want)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	stations := []*domain.Station{
		domain.NewStation("Baker Street", "1000011"),
		domain.NewStation("Oxford Circus", "1000173"),
		domain.NewStation("Victoria", "1000248"),
	}
	matrix := [][]int{
		{0, 4, 9},
		{4, 0, 5},
		{9, 5, 0},
	}

	path := filepath.Join(t.TempDir(), Filename("20260902", "0900", len(stations)))
	if err := Write(path, stations, matrix); err != nil {
		t.Fatalf("write: %v", err)
	}

	names, ids, got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	wantNames := []string{"Baker Street", "Oxford Circus", "Victoria"}
	wantIDs := []string{"1000011", "1000173", "1000248"}
	for i := range stations {
		if names[i] != wantNames[i] {
			t.Fatalf("name %d = %q, want %q", i, names[i], wantNames[i])
		}
		if ids[i] != wantIDs[i] {
			t.Fatalf("id %d = %q, want %q", i, ids[i], wantIDs[i])
		}
	}

	for i := range matrix {
		for j := range matrix[i] {
			if got[i][j] != matrix[i][j] {
				t.Fatalf("matrix[%d][%d] = %d, want %d", i, j, got[i][j], matrix[i][j])
			}
		}
	}
}

func TestWriteRejectsMismatchedDimensions(t *testing.T) {
	stations := []*domain.Station{
		domain.NewStation("A", "1"),
		domain.NewStation("B", "2"),
	}

	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := Write(path, stations, [][]int{{0, 1}}); err == nil {
		t.Fatal("expected error for wrong row count")
	}
	if err := Write(path, stations, [][]int{{0, 1}, {1}}); err == nil {
		t.Fatal("expected error for wrong column count")
	}
}

func TestReadRejectsMalformedFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "header only", content: ",1,2\n"},
		{name: "row id mismatch", content: ",1,2\nA,0,3\n"},
		{name: "non numeric cell", content: ",1,2\nA,0,x\nB,3,0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".csv")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			if _, _, _, err := Read(path); err == nil {
				t.Fatal("expected read error, got nil")
			}
		})
	}
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()

	older := filepath.Join(dir, "20260101_0900_3stationMatrix.csv")
	newer := filepath.Join(dir, "20260902_0900_3stationMatrix.csv")
	for _, p := range []string{older, newer} {
		if err := os.WriteFile(p, []byte(",1\nA,0\n"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	// Glob order is lexical; push the older file's mtime ahead to prove
	// selection is by modification time, not name.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(older, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := FindLatest(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != older {
		t.Fatalf("latest = %q, want %q", got, older)
	}
}

func TestFindLatestEmptyDir(t *testing.T) {
	if _, err := FindLatest(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without matrix files")
	}
}
