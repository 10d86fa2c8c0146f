package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/awesomedocs/catalog"
	"github.com/yoanbernabeu/awesomedocs/config"
	"github.com/yoanbernabeu/awesomedocs/fetch"
	"github.com/yoanbernabeu/awesomedocs/site"
	"github.com/yoanbernabeu/awesomedocs/stats"
)

var (
	fetchReadme    string
	fetchOutputDir string
	fetchToken     string
	fetchSkipCache bool
	fetchDryRun    bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch documentation for every project in the catalog",
	Long: `Parse the awesome-list README and write one documentation page per
project.

Each project's README is fetched from the GitHub API (with retry on rate
limits) and falls back to raw.githubusercontent.com. When no README can
be found, a conventionally named Python entry point is analyzed to
synthesize a summary page; failing that, a placeholder is written from
the catalog metadata alone. Individual project failures never abort the
run.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchReadme, "readme", "", "Path of the awesome-list README (default from config)")
	fetchCmd.Flags().StringVarP(&fetchOutputDir, "output-dir", "o", "", "Directory to write pages to (default from config)")
	fetchCmd.Flags().StringVar(&fetchToken, "github-token", "", "GitHub API token (default $GITHUB_TOKEN)")
	fetchCmd.Flags().BoolVar(&fetchSkipCache, "skip-cache", false, "Disable the per-run README cache")
	fetchCmd.Flags().BoolVar(&fetchDryRun, "dry-run", false, "Log what would be written without touching the filesystem")
}

func runFetch(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	source := fetchReadme
	if source == "" {
		source = cfg.Source
	}
	outputDir := fetchOutputDir
	if outputDir == "" {
		outputDir = cfg.Output
	}
	token := fetchToken
	if token == "" {
		token = cfg.Token()
	}

	cat, err := catalog.ParseFile(source)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d projects in %d categories\n", cat.Total(), len(cat.Categories()))

	writer := &site.Writer{Root: outputDir, DryRun: fetchDryRun}
	if err := writer.Scaffold(cat.Categories()); err != nil {
		return err
	}

	resolver := fetch.NewResolver(
		fetch.NewClient(ctx, token),
		fetch.NewRetrier(),
		fetch.NewRawFetcher(),
		!fetchSkipCache,
	)

	var counts struct {
		readmeAPI, readmeRaw, source, catalogOnly, failed int
	}
	for _, category := range cat.Categories() {
		for _, project := range cat.Projects(category) {
			page := resolver.Resolve(ctx, project)
			switch page.Tier {
			case fetch.TierReadme:
				if page.Via == fetch.ViaRaw {
					counts.readmeRaw++
				} else {
					counts.readmeAPI++
				}
			case fetch.TierSource:
				counts.source++
			default:
				counts.catalogOnly++
			}

			meta := site.Frontmatter{
				Title:       project.Title,
				URL:         project.URL,
				Category:    project.Category,
				Description: page.Description,
			}
			if err := writer.WritePage(meta, page.Body); err != nil {
				fmt.Printf("  ! %s: %v\n", project.Title, err)
				counts.failed++
			}
		}
	}

	fmt.Println()
	fmt.Printf("Done: %d pages written (%d via API, %d via raw, %d from source, %d catalog-only), %d failed\n",
		cat.Total()-counts.failed, counts.readmeAPI, counts.readmeRaw,
		counts.source, counts.catalogOnly, counts.failed)

	recordRun(projectRoot, stats.Entry{
		Command:       stats.Fetch,
		Projects:      cat.Total(),
		Categories:    len(cat.Categories()),
		ReadmeAPI:     counts.readmeAPI,
		ReadmeRaw:     counts.readmeRaw,
		SourceSummary: counts.source,
		CatalogOnly:   counts.catalogOnly,
		Failed:        counts.failed,
		DurationMS:    time.Since(start).Milliseconds(),
	})
	return nil
}

// recordRun appends a stats entry, best-effort. Stats failures never
// fail the command.
func recordRun(projectRoot string, e stats.Entry) {
	e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	e.RunID = uuid.NewString()

	statsDir := config.Dir(projectRoot)
	if err := ensureStatsDir(statsDir); err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = stats.NewRecorder(statsDir).Record(ctx, e)
}
