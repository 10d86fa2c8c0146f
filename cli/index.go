package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/awesomedocs/config"
	"github.com/yoanbernabeu/awesomedocs/site"
	"github.com/yoanbernabeu/awesomedocs/stats"
)

var (
	indexOutputDir string
	indexSiteDir   string
	indexHomepage  string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the search index from the generated pages",
	Long: `Build the site search index: one document per generated page plus
the homepage, with Markdown structure stripped down to searchable text.
The index is written to <site-dir>/search/search_index.json.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVarP(&indexOutputDir, "output-dir", "o", "", "Directory holding the generated pages (default from config)")
	indexCmd.Flags().StringVar(&indexSiteDir, "site-dir", "", "Built-site directory the index is written into (default from config)")
	indexCmd.Flags().StringVar(&indexHomepage, "homepage", "", "Homepage file to index at location \"\" (default from config)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outputDir := indexOutputDir
	if outputDir == "" {
		outputDir = cfg.Output
	}
	siteDir := indexSiteDir
	if siteDir == "" {
		siteDir = cfg.SiteDir
	}
	homepage := indexHomepage
	if homepage == "" {
		homepage = cfg.Homepage
	}

	idx, err := site.BuildSearchIndex(outputDir, homepage)
	if err != nil {
		return err
	}

	path := filepath.Join(siteDir, "search", "search_index.json")
	if err := site.WriteSearchIndex(idx, path); err != nil {
		return err
	}
	fmt.Printf("Search index written to %s (%d documents)\n", path, len(idx.Docs))

	recordRun(projectRoot, stats.Entry{
		Command:    stats.Index,
		Projects:   len(idx.Docs),
		DurationMS: time.Since(start).Milliseconds(),
	})
	return nil
}
