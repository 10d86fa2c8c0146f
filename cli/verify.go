package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/awesomedocs/config"
	"github.com/yoanbernabeu/awesomedocs/verify"
)

var (
	verifyOutputDir string
	verifyIndexPath string
	verifyMinDocs   int
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the generated site against its invariants",
}

var verifyFrontmatterCmd = &cobra.Command{
	Use:   "frontmatter",
	Short: "Check that every generated page carries complete frontmatter",
	RunE:  runVerifyFrontmatter,
}

var verifySearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Check the built search index",
	RunE:  runVerifySearch,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.AddCommand(verifyFrontmatterCmd)
	verifyCmd.AddCommand(verifySearchCmd)

	verifyFrontmatterCmd.Flags().StringVarP(&verifyOutputDir, "output-dir", "o", "", "Directory holding the generated pages (default from config)")
	verifySearchCmd.Flags().StringVar(&verifyIndexPath, "index", "", "Path of search_index.json (default <site-dir>/search/search_index.json)")
	verifySearchCmd.Flags().IntVar(&verifyMinDocs, "min-docs", verify.DefaultMinSearchDocs, "Minimum plausible document count")
}

func runVerifyFrontmatter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir := verifyOutputDir
	if outputDir == "" {
		outputDir = cfg.Output
	}

	report, err := verify.Frontmatter(outputDir)
	if err != nil {
		return err
	}
	return printReport(report, fmt.Sprintf("%d pages", report.Checked))
}

func runVerifySearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	indexPath := verifyIndexPath
	if indexPath == "" {
		indexPath = filepath.Join(cfg.SiteDir, "search", "search_index.json")
	}

	report, err := verify.SearchIndex(indexPath, verifyMinDocs)
	if err != nil {
		return err
	}
	return printReport(report, fmt.Sprintf("%d documents", report.Checked))
}

func loadConfig() (config.Config, error) {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(projectRoot)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func printReport(report *verify.Report, what string) error {
	if report.OK() {
		fmt.Printf("OK: %s checked, no problems found\n", what)
		return nil
	}
	for _, p := range report.Problems {
		fmt.Printf("  %s: %s\n", p.Path, p.Message)
	}
	return fmt.Errorf("%d problem(s) found across %s", len(report.Problems), what)
}
