package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/awesomedocs/config"
	"github.com/yoanbernabeu/awesomedocs/site"
	"github.com/yoanbernabeu/awesomedocs/stats"
)

var (
	gatherOutputDir string
	gatherJSONPath  string
	gatherDryRun    bool
)

var gatherCmd = &cobra.Command{
	Use:   "gather",
	Short: "Rescan generated pages and report their metadata",
	Long: `Recursively scan the output directory, re-parse the frontmatter of
every generated page and report the inventory grouped by category.
Pages without valid frontmatter are counted and skipped. With --json
the full inventory is also written to a file for downstream tooling.`,
	RunE: runGather,
}

func init() {
	rootCmd.AddCommand(gatherCmd)
	gatherCmd.Flags().StringVarP(&gatherOutputDir, "output-dir", "o", "", "Directory holding the generated pages (default from config)")
	gatherCmd.Flags().StringVar(&gatherJSONPath, "json", "", "Write the inventory as JSON to this path")
	gatherCmd.Flags().BoolVar(&gatherDryRun, "dry-run", false, "Report only, never write the JSON inventory")
}

func runGather(cmd *cobra.Command, args []string) error {
	start := time.Now()

	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outputDir := gatherOutputDir
	if outputDir == "" {
		outputDir = cfg.Output
	}

	inv, err := site.Gather(outputDir)
	if err != nil {
		return err
	}

	fmt.Printf("Gathered %d pages in %d categories (%d scanned, %d parse errors)\n",
		inv.Total(), len(inv.Categories()), inv.FilesScanned, inv.ParseErrors)
	for _, category := range inv.Categories() {
		fmt.Printf("  %-30s %d\n", category, len(inv.Entries(category)))
	}

	if gatherJSONPath != "" {
		if err := writeInventoryJSON(inv, gatherJSONPath); err != nil {
			return err
		}
	}

	recordRun(projectRoot, stats.Entry{
		Command:    stats.Gather,
		Projects:   inv.Total(),
		Categories: len(inv.Categories()),
		Failed:     inv.ParseErrors,
		DurationMS: time.Since(start).Milliseconds(),
	})
	return nil
}

func writeInventoryJSON(inv *site.Inventory, path string) error {
	out := struct {
		Total       int                     `json:"total"`
		Categories  []string                `json:"categories"`
		ParseErrors int                     `json:"parse_errors"`
		ByCategory  map[string][]site.Entry `json:"by_category"`
	}{
		Total:       inv.Total(),
		Categories:  inv.Categories(),
		ParseErrors: inv.ParseErrors,
		ByCategory:  inv.ByCategory(),
	}

	if gatherDryRun {
		slog.Info("[dry-run] would write inventory", "path", path, "entries", out.Total)
		return nil
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	slog.Info("wrote inventory", "path", path, "entries", out.Total)
	return nil
}
