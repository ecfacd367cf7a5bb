// Package matrixfile reads and writes journey-time matrices as CSV so
// a fetched matrix can be reused across runs without touching the TfL
// API. Layout: header row of station ICS ids (first cell blank), then
// one row per station with the station name in the first column and
// whole-minute durations after it.
package matrixfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tube-route-service/internal/domain"
)

// Filename builds the conventional matrix file name for a travel date
// (yyyyMMdd), time (HHmm) and station count:
// <date>_<time>_<N>stationMatrix.csv.
func Filename(travelDate, travelTime string, stationCount int) string {
	return fmt.Sprintf("%s_%s_%dstationMatrix.csv", travelDate, travelTime, stationCount)
}

// Write stores the matrix for the given stations at path.
func Write(path string, stations []*domain.Station, matrix [][]int) error {
	if len(matrix) != len(stations) {
		return fmt.Errorf("write matrix: %d rows for %d stations", len(matrix), len(stations))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write matrix: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(stations)+1)
	header = append(header, "")
	for _, s := range stations {
		header = append(header, s.ID)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write matrix: header: %w", err)
	}

	for i, s := range stations {
		if len(matrix[i]) != len(stations) {
			return fmt.Errorf("write matrix: row %d has %d columns for %d stations", i, len(matrix[i]), len(stations))
		}

		record := make([]string, 0, len(stations)+1)
		record = append(record, s.Name)
		for _, minutes := range matrix[i] {
			record = append(record, strconv.Itoa(minutes))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write matrix: row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write matrix: flush: %w", err)
	}

	return nil
}

// Read parses a matrix file back into station names, ids and the
// square duration matrix, in file order.
func Read(path string) (names []string, ids []string, matrix [][]int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read matrix: open %q: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read matrix: parse %q: %w", path, err)
	}

	if len(records) < 2 {
		return nil, nil, nil, fmt.Errorf("read matrix: %q has no station rows", path)
	}

	ids = records[0][1:]
	n := len(ids)
	if len(records)-1 != n {
		return nil, nil, nil, fmt.Errorf("read matrix: %q has %d rows for %d id columns", path, len(records)-1, n)
	}

	names = make([]string, 0, n)
	matrix = make([][]int, 0, n)
	for i, record := range records[1:] {
		if len(record) != n+1 {
			return nil, nil, nil, fmt.Errorf("read matrix: row %d has %d fields, want %d", i+1, len(record), n+1)
		}

		names = append(names, record[0])
		row := make([]int, 0, n)
		for j, field := range record[1:] {
			minutes, convErr := strconv.Atoi(field)
			if convErr != nil {
				return nil, nil, nil, fmt.Errorf("read matrix: row %d column %d: %w", i+1, j+1, convErr)
			}
			row = append(row, minutes)
		}
		matrix = append(matrix, row)
	}

	return names, ids, matrix, nil
}

// FindLatest returns the most recently modified matrix CSV in dir, or
// an error when none exists.
func FindLatest(dir string) (string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return "", fmt.Errorf("find latest matrix: glob %q: %w", dir, err)
	}
	if len(files) == 0 {
		return "", errors.New("find latest matrix: no matrix files found in " + dir)
	}

	latest := ""
	var latestMod int64
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return "", fmt.Errorf("find latest matrix: stat %q: %w", f, err)
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = f
			latestMod = info.ModTime().UnixNano()
		}
	}

	return latest, nil
}
