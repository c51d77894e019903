package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"makedoc2rst/config"
	"makedoc2rst/internal/adapter/fs"
	"makedoc2rst/internal/adapter/memstore"
	"makedoc2rst/internal/adapter/store"
	"makedoc2rst/internal/port"
	"makedoc2rst/internal/usecase"
)

var (
	batchOutputDir string
	batchForce     bool
	batchNoCache   bool
	batchPrune     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [path]",
	Short: "Convert every C source file under a directory",
	Long: `Convert every matching source file under path. Relative paths are
mirrored under the output directory with the extension swapped.
Unchanged files are skipped using the manifest in .makedoc/manifest.db.

Examples:
  makedoc2rst batch .                     # Convert the current directory into ./rst
  makedoc2rst batch libc -o docs/libc     # Choose the output directory
  makedoc2rst batch libc --force          # Reconvert everything`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutputDir, "output", "o", "", "output directory (default from config, relative to path)")
	batchCmd.Flags().BoolVar(&batchForce, "force", false, "reconvert files even when unchanged")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "do not read or write the manifest")
	batchCmd.Flags().BoolVar(&batchPrune, "prune", false, "remove output for sources that no longer exist")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	outDir := batchOutputDir
	if outDir == "" {
		outDir = cfg.Batch.OutputDir
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(path, outDir)
	}

	manifest, closeManifest, err := openManifest(path, cfg, !batchNoCache && cfg.Batch.Cache)
	if err != nil {
		return err
	}
	defer closeManifest()

	converter, err := newConverter(cfg, cfg.Profile())
	if err != nil {
		return err
	}
	walker := fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes)
	batchUC := usecase.NewBatchUseCase(converter, walker, fs.OS{}, fs.OS{}, manifest, logger)

	fmt.Printf("Scanning %s...\n", path)

	result, err := batchUC.Run(path, usecase.BatchOptions{
		OutputDir: outDir,
		OutputExt: cfg.Batch.OutputExt,
		Force:     batchForce,
		Prune:     batchPrune || cfg.Batch.Prune,
		Progress:  newProgress("Converting"),
	})
	if err != nil {
		return fmt.Errorf("batch conversion failed: %w", err)
	}

	if bolt, ok := manifest.(*store.BoltStore); ok {
		if err := bolt.Migrate(cfg); err != nil {
			return fmt.Errorf("failed to update schema info: %w", err)
		}
	}

	fmt.Printf("\nConversion complete (run %s):\n", result.RunID)
	fmt.Printf("  Files converted: %d\n", result.FilesConverted)
	fmt.Printf("  Files skipped:   %d (unchanged)\n", result.FilesSkipped)
	fmt.Printf("  Without docs:    %d\n", result.FilesWithoutDocs)
	fmt.Printf("  Files removed:   %d\n", result.FilesRemoved)
	if len(result.Diagnostics) > 0 {
		fmt.Printf("  Diagnostics:     %d\n", len(result.Diagnostics))
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nOutput written to: %s\n", outDir)
	return nil
}

// openManifest opens the on-disk manifest under root, clearing it when the
// schema or conversion settings changed. With useCache false an in-memory
// manifest is returned and nothing is persisted.
func openManifest(root string, cfg *config.Config, useCache bool) (port.ManifestStore, func(), error) {
	if !useCache {
		st := memstore.NewMemoryStore()
		return st, func() { st.Close() }, nil
	}

	if err := config.EnsureStateDir(root); err != nil {
		return nil, nil, fmt.Errorf("failed to create .makedoc directory: %w", err)
	}

	st, err := store.NewBoltStore(config.ManifestDBPath(root))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open manifest: %w", err)
	}

	migrationResult, err := st.CheckMigration(cfg)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to check migration: %w", err)
	}

	if migrationResult.NeedsRebuild {
		fmt.Printf("Manifest rebuild required: %s\n", migrationResult.Reason)
		removed, err := usecase.DiscardOutputs(st, fs.OS{})
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("failed to remove previous output: %w", err)
		}
		if removed > 0 {
			fmt.Printf("Removed %d previously generated files\n", removed)
		}
		if err := st.Clear(); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("failed to clear manifest: %w", err)
		}
	} else if migrationResult.NeedsMigration {
		fmt.Printf("Running schema migration: %s\n", migrationResult.Reason)
		if err := st.Migrate(cfg); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return st, func() { st.Close() }, nil
}

// newProgress returns a batch progress callback drawing a bar with an ETA.
// The bar is created on the first call, once the total is known. Batch runs
// report progress from a single goroutine.
func newProgress(label string) func(processed, total int, current string) {
	var bar *progressbar.ProgressBar
	var started time.Time

	return func(processed, total int, current string) {
		if bar == nil {
			started = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]"+label+"[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}

		bar.Set(processed)

		rate := float64(processed) / time.Since(started).Seconds()
		if processed > 0 && rate > 0 {
			eta := time.Duration(float64(total-processed)/rate) * time.Second
			bar.Describe(fmt.Sprintf("[cyan]%s[reset] ETA: %s", label, formatDuration(eta)))
		}
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
