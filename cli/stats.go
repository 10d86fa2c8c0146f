package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/awesomedocs/config"
	"github.com/yoanbernabeu/awesomedocs/stats"
)

var (
	statsJSON    bool
	statsHistory bool
	statsLimit   int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated pipeline run statistics",
	Long: `Display a summary of recorded pipeline runs.

Every command records an entry locally in .awesomedocs/stats.json. This
command aggregates those entries: run counts per command, how many pages
came from fetched READMEs versus source summaries versus catalog-only
placeholders, and the overall success rate.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVarP(&statsJSON, "json", "j", false, "Output results in JSON format")
	statsCmd.Flags().BoolVar(&statsHistory, "history", false, "Show per-day history breakdown")
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "l", 30, "Max days shown with --history")
}

func runStats(cmd *cobra.Command, args []string) error {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	statsPath := stats.StatsPath(config.Dir(projectRoot))
	entries, err := stats.ReadAll(statsPath)
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No stats recorded yet.")
		fmt.Println("Run fetch, gather, homepage or index to start tracking pipeline runs.")
		return nil
	}

	summary := stats.Summarize(entries)

	if statsJSON {
		return outputStatsJSON(summary, entries)
	}
	return outputStatsHuman(summary, entries)
}

// outputStatsJSON renders the summary (and optional history) as JSON.
func outputStatsJSON(summary stats.Summary, entries []stats.Entry) error {
	if !statsHistory {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	days := stats.HistoryByDay(entries)
	if statsLimit > 0 && len(days) > statsLimit {
		days = days[:statsLimit]
	}

	out := struct {
		Summary stats.Summary      `json:"summary"`
		History []stats.DaySummary `json:"history"`
	}{
		Summary: summary,
		History: days,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// outputStatsHuman renders the summary using lipgloss styles.
func outputStatsHuman(summary stats.Summary, entries []stats.Entry) error {
	// Styles
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	content := headerStyle.Render("awesomedocs stats — Pipeline Report") + "\n\n"

	content += labelStyle.Render("Total runs") + valueStyle.Render(fmt.Sprintf("%d", summary.TotalRuns)) + "\n"
	content += labelStyle.Render("Projects processed") + valueStyle.Render(formatInt(summary.Projects)) + "\n"
	content += labelStyle.Render("Failed") + valueStyle.Render(formatInt(summary.Failed)) + "\n"
	content += labelStyle.Render("Success rate") + valueStyle.Render(fmt.Sprintf("%.1f%%", summary.SuccessPct)) + "\n"
	content += labelStyle.Render("Total duration") +
		valueStyle.Render(fmt.Sprintf("%.1fs", float64(summary.TotalDuration)/1000)) + "\n"

	// Command and tier breakdowns
	content += "\n"
	cmdLine := "By command:  "
	for _, k := range []string{stats.Fetch, stats.Gather, stats.Homepage, stats.Index, stats.Verify} {
		if v := summary.ByCommand[k]; v > 0 {
			cmdLine += fmt.Sprintf("%s %d · ", k, v)
		}
	}
	content += dimStyle.Render(trimSuffix(cmdLine, " · ")) + "\n"

	tierLine := "By tier:     "
	for _, k := range []string{stats.TierReadme, stats.TierSourceSummary, stats.TierCatalogOnly} {
		if v := summary.ByTier[k]; v > 0 {
			tierLine += fmt.Sprintf("%s %d · ", k, v)
		}
	}
	content += dimStyle.Render(trimSuffix(tierLine, " · ")) + "\n"

	fmt.Println(boxStyle.Render(content))

	if statsHistory {
		printHistoryTable(entries, dimStyle, valueStyle)
	}

	return nil
}

func printHistoryTable(entries []stats.Entry, dimStyle, valueStyle lipgloss.Style) {
	days := stats.HistoryByDay(entries)
	if statsLimit > 0 && len(days) > statsLimit {
		days = days[:statsLimit]
	}

	colDate := lipgloss.NewStyle().Width(14)
	colNum := lipgloss.NewStyle().Width(10)
	colProjects := lipgloss.NewStyle().Width(12)
	colFailed := lipgloss.NewStyle().Width(10)

	header := dimStyle.Render(
		colDate.Render("Date") +
			colNum.Render("Runs") +
			colProjects.Render("Projects") +
			colFailed.Render("Failed"),
	)
	sep := dimStyle.Render(fmt.Sprintf("%-14s %-10s %-12s %-10s", "──────────────", "─────────", "───────────", "─────────"))
	fmt.Println(header)
	fmt.Println(sep)

	for _, d := range days {
		row := colDate.Render(d.Date) +
			colNum.Render(fmt.Sprintf("%d", d.RunCount)) +
			colProjects.Render(formatInt(d.Projects)) +
			colFailed.Render(fmt.Sprintf("%d", d.Failed))
		fmt.Println(valueStyle.Render(row))
	}
}

func formatInt(n int) string {
	if n == 0 {
		return "0"
	}
	s := fmt.Sprintf("%d", n)
	result := ""
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}

func trimSuffix(s, suffix string) string {
	if len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}
