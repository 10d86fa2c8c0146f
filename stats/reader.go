package stats

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReadAll reads all entries from the NDJSON stats file at statsPath.
// Malformed lines are skipped with a warning to stderr.
// Returns an empty slice (not an error) when the file does not exist.
func ReadAll(statsPath string) ([]Entry, error) {
	f, err := os.Open(statsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats: open: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			fmt.Fprintf(os.Stderr, "stats: skipping malformed line %d: %v\n", lineNum, err)
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return entries, fmt.Errorf("stats: read: %w", err)
	}
	return entries, nil
}

// Summarize aggregates entries into a Summary.
func Summarize(entries []Entry) Summary {
	s := Summary{
		ByCommand: map[string]int{
			Fetch:    0,
			Gather:   0,
			Homepage: 0,
			Index:    0,
			Verify:   0,
		},
		ByTier: map[string]int{
			TierReadme:        0,
			TierSourceSummary: 0,
			TierCatalogOnly:   0,
		},
	}

	for _, e := range entries {
		s.TotalRuns++
		s.Projects += e.Projects
		s.Failed += e.Failed
		s.TotalDuration += e.DurationMS
		s.ByCommand[e.Command]++
		s.ByTier[TierReadme] += e.ReadmeAPI + e.ReadmeRaw
		s.ByTier[TierSourceSummary] += e.SourceSummary
		s.ByTier[TierCatalogOnly] += e.CatalogOnly
	}

	if s.Projects > 0 {
		s.SuccessPct = float64(s.Projects-s.Failed) / float64(s.Projects) * 100
	}

	return s
}

// HistoryByDay groups entries by calendar day (UTC) and returns a slice
// sorted in descending order (most recent first).
func HistoryByDay(entries []Entry) []DaySummary {
	byDate := map[string]*DaySummary{}

	for _, e := range entries {
		day := ""
		if len(e.Timestamp) >= 10 {
			day = e.Timestamp[:10] // "YYYY-MM-DD"
		} else {
			day = "unknown"
		}
		d, ok := byDate[day]
		if !ok {
			d = &DaySummary{Date: day}
			byDate[day] = d
		}
		d.RunCount++
		d.Projects += e.Projects
		d.Failed += e.Failed
	}

	days := make([]DaySummary, 0, len(byDate))
	for _, d := range byDate {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}
