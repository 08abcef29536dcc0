package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseExperimentalFile reads an experimental PIV data file and parses it
// into labeled sections.
func ParseExperimentalFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open experimental file: %w", err)
	}
	defer file.Close()

	ds, err := ParseExperimental(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read experimental file %s: %w", path, err)
	}
	return ds, nil
}

// ParseExperimental scans a stream of annotated measurement data. A line
// beginning with "plot-" opens a new section; data lines under an open
// section contribute a row when their first two whitespace tokens parse as
// numbers. Unparsable rows are skipped silently, blank lines are ignored,
// and the final open section is flushed at end of stream. A stream with no
// section headers yields an empty dataset, not an error.
func ParseExperimental(r io.Reader) (*Dataset, error) {
	ds := NewDataset()
	var current *Section

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, SectionPrefix) {
			ds.add(current)
			current = &Section{Label: ParseLabel(line)}
			continue
		}
		if current == nil {
			continue
		}

		// Tabs are normalized to spaces before tokenizing; extra
		// tokens past the first two are ignored.
		parts := strings.Fields(strings.ReplaceAll(line, "\t", "  "))
		if len(parts) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(parts[0], 64)
		y, errY := strconv.ParseFloat(parts[1], 64)
		if errX != nil || errY != nil {
			continue
		}
		current.Points = append(current.Points, Point{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	ds.add(current)

	return ds, nil
}
