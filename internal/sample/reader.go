// Package sample reads OpenFOAM sample-set output: a root directory whose
// immediate children are time directories, each holding fixed-layout
// "<set>_p_U.xy" tables with columns [position, p, Ux, Uy, Uz].
package sample

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoData indicates the requested sample set does not exist, is empty,
// or could not be read as a well-formed table. A sample is always returned
// whole or not at all.
var ErrNoData = errors.New("sample: no data")

// Sample holds the parallel columns of one sample set. All slices have
// equal length.
type Sample struct {
	Position []float64
	Pressure []float64
	Ux       []float64
	Uy       []float64
	Uz       []float64
}

// Len reports the number of sampled points.
func (s *Sample) Len() int { return len(s.Position) }

// TimeSelector chooses which time directory of the sample tree to read.
type TimeSelector struct {
	latest bool
	name   string
}

// Latest selects the time directory with the largest numeric value.
func Latest() TimeSelector { return TimeSelector{latest: true} }

// At selects the time directory with the exact given name.
func At(name string) TimeSelector { return TimeSelector{name: name} }

var numericName = regexp.MustCompile(`^[0-9.]+$`)

// timeValue orders time directories. A name that parses as a non-negative
// decimal is its own value; anything else orders as 0 but is not excluded.
func timeValue(name string) float64 {
	if !numericName.MatchString(name) {
		return 0
	}
	v, err := strconv.ParseFloat(name, 64)
	if err != nil {
		return 0
	}
	return v
}

// resolveTimeDir picks the time directory under root for the selector.
func resolveTimeDir(root string, sel TimeSelector) (string, error) {
	if !sel.latest {
		dir := filepath.Join(root, sel.name)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return "", ErrNoData
		}
		return dir, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("failed to list sample root %s: %w", root, err)
	}
	best := ""
	bestVal := 0.0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if v := timeValue(e.Name()); best == "" || v > bestVal {
			best = e.Name()
			bestVal = v
		}
	}
	if best == "" {
		return "", ErrNoData
	}
	return filepath.Join(root, best), nil
}

// Read loads the sample set named setName from the sample tree rooted at
// root, using sel to pick the time directory. It returns ErrNoData when
// the set is absent, empty, or malformed.
func Read(root, setName string, sel TimeSelector) (*Sample, error) {
	timeDir, err := resolveTimeDir(root, sel)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(timeDir, setName+"_p_U.xy")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("failed to open sample table %s: %w", path, err)
	}
	defer file.Close()

	s := &Sample{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cols := strings.Fields(line)
		if len(cols) < 5 {
			return nil, ErrNoData
		}
		row := make([]float64, 5)
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(cols[i], 64)
			if err != nil {
				return nil, ErrNoData
			}
			row[i] = v
		}
		s.Position = append(s.Position, row[0])
		s.Pressure = append(s.Pressure, row[1])
		s.Ux = append(s.Ux, row[2])
		s.Uy = append(s.Uy, row[3])
		s.Uz = append(s.Uz, row[4])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sample table %s: %w", path, err)
	}
	if s.Len() == 0 {
		return nil, ErrNoData
	}
	return s, nil
}
