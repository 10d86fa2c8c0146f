package stats

import "path/filepath"

// CommandType represents the type of awesomedocs command that was executed.
type CommandType = string

const (
	Fetch    CommandType = "fetch"
	Gather   CommandType = "gather"
	Homepage CommandType = "homepage"
	Index    CommandType = "index"
	Verify   CommandType = "verify"
)

// Tier names for the documentation source a project page was built from.
const (
	TierReadme        = "readme"
	TierSourceSummary = "source"
	TierCatalogOnly   = "catalog"
)

// StatsFileName is the name of the NDJSON stats file inside .awesomedocs/.
const StatsFileName = "stats.json"

// LockFileName is the name of the lock file used for safe concurrent writes.
const LockFileName = "stats.json.lock"

// Entry represents a single recorded pipeline run.
type Entry struct {
	Timestamp     string `json:"timestamp"` // RFC3339 UTC
	RunID         string `json:"run_id"`
	Command       string `json:"command"` // fetch | gather | homepage | index | verify
	Projects      int    `json:"projects"`
	Categories    int    `json:"categories"`
	ReadmeAPI     int    `json:"readme_api"`     // READMEs fetched via the GitHub API
	ReadmeRaw     int    `json:"readme_raw"`     // READMEs fetched from raw content
	SourceSummary int    `json:"source_summary"` // pages built from source analysis
	CatalogOnly   int    `json:"catalog_only"`   // placeholder pages from catalog metadata
	Failed        int    `json:"failed"`
	DurationMS    int64  `json:"duration_ms"`
}

// Summary is the aggregated view of all recorded entries.
type Summary struct {
	TotalRuns     int            `json:"total_runs"`
	Projects      int            `json:"projects"`
	Failed        int            `json:"failed"`
	SuccessPct    float64        `json:"success_pct"`
	TotalDuration int64          `json:"total_duration_ms"`
	ByCommand     map[string]int `json:"by_command"`
	ByTier        map[string]int `json:"by_tier"`
}

// DaySummary holds per-day aggregated stats for the --history view.
type DaySummary struct {
	Date     string `json:"date"`
	RunCount int    `json:"run_count"`
	Projects int    `json:"projects"`
	Failed   int    `json:"failed"`
}

// StatsPath returns the absolute path of the stats NDJSON file.
func StatsPath(statsDir string) string {
	return filepath.Join(statsDir, StatsFileName)
}

// LockPath returns the absolute path of the stats lock file.
func LockPath(statsDir string) string {
	return filepath.Join(statsDir, LockFileName)
}
