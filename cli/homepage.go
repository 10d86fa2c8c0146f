package cli

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yoanbernabeu/awesomedocs/config"
	"github.com/yoanbernabeu/awesomedocs/site"
	"github.com/yoanbernabeu/awesomedocs/stats"
)

var (
	homepageOutputDir string
	homepageOut       string
	homepageDryRun    bool
	homepageWatch     bool
)

// watchDebounce coalesces filesystem event bursts into one regeneration.
const watchDebounce = 500 * time.Millisecond

var homepageCmd = &cobra.Command{
	Use:   "homepage",
	Short: "Regenerate the homepage card grid from gathered pages",
	Long: `Rebuild the homepage from the frontmatter of the generated pages:
a header with totals, one card-grid section per category and a category
overview list. With --watch the output directory is monitored and the
homepage is regenerated whenever a page changes.`,
	RunE: runHomepage,
}

func init() {
	rootCmd.AddCommand(homepageCmd)
	homepageCmd.Flags().StringVarP(&homepageOutputDir, "output-dir", "o", "", "Directory holding the generated pages (default from config)")
	homepageCmd.Flags().StringVar(&homepageOut, "out", "", "Homepage file to write (default from config)")
	homepageCmd.Flags().BoolVar(&homepageDryRun, "dry-run", false, "Print the homepage to stdout instead of writing it")
	homepageCmd.Flags().BoolVarP(&homepageWatch, "watch", "w", false, "Regenerate whenever the output directory changes")
}

func runHomepage(cmd *cobra.Command, args []string) error {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outputDir := homepageOutputDir
	if outputDir == "" {
		outputDir = cfg.Output
	}
	out := homepageOut
	if out == "" {
		out = cfg.Homepage
	}

	if err := generateHomepage(projectRoot, outputDir, out); err != nil {
		return err
	}
	if !homepageWatch {
		return nil
	}
	return watchHomepage(projectRoot, outputDir, out)
}

func generateHomepage(projectRoot, outputDir, out string) error {
	start := time.Now()

	inv, err := site.Gather(outputDir)
	if err != nil {
		return err
	}
	content, err := site.Homepage(inv)
	if err != nil {
		return err
	}

	if homepageDryRun {
		fmt.Print(content)
	} else {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("failed to create homepage directory: %w", err)
		}
		if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write homepage: %w", err)
		}
		fmt.Printf("Homepage written to %s (%d projects, %d categories)\n",
			out, inv.Total(), len(inv.Categories()))
	}

	recordRun(projectRoot, stats.Entry{
		Command:    stats.Homepage,
		Projects:   inv.Total(),
		Categories: len(inv.Categories()),
		DurationMS: time.Since(start).Milliseconds(),
	})
	return nil
}

// watchHomepage blocks, regenerating the homepage on every change burst
// in the output tree, until interrupted.
func watchHomepage(projectRoot, outputDir, out string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, outputDir); err != nil {
		return err
	}
	slog.Info("watching for changes", "dir", outputDir)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	var debounce *time.Timer
	regen := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New category directories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case regen <- struct{}{}:
				default:
				}
			})

		case <-regen:
			if err := generateHomepage(projectRoot, outputDir, out); err != nil {
				slog.Error("regeneration failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)

		case <-sigs:
			slog.Info("stopping watcher")
			return nil
		}
	}
}

func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}
