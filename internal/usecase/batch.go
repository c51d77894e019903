package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"makedoc2rst/internal/adapter/logging"
	"makedoc2rst/internal/domain"
	"makedoc2rst/internal/port"
)

// BatchUseCase converts every source file under a directory, skipping the
// ones the manifest says are already up to date.
type BatchUseCase struct {
	converter *ConvertUseCase
	walker    port.FileWalker
	reader    port.FileReader
	writer    port.FileWriter
	manifest  port.ManifestStore
	logger    port.Logger
	newRunID  func() string
	now       func() time.Time
}

// NewBatchUseCase creates a new batch use case.
func NewBatchUseCase(
	converter *ConvertUseCase,
	walker port.FileWalker,
	reader port.FileReader,
	writer port.FileWriter,
	manifest port.ManifestStore,
	logger port.Logger,
) *BatchUseCase {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &BatchUseCase{
		converter: converter,
		walker:    walker,
		reader:    reader,
		writer:    writer,
		manifest:  manifest,
		logger:    logger,
		newRunID:  uuid.NewString,
		now:       time.Now,
	}
}

// BatchOptions controls a batch run.
type BatchOptions struct {
	OutputDir string
	OutputExt string
	Force     bool
	Prune     bool
	// Progress is called after each file with the number processed so far.
	Progress func(processed, total int, current string)
}

// BatchResult contains the results of a batch run.
type BatchResult struct {
	RunID            string
	FilesConverted   int
	FilesSkipped     int
	FilesWithoutDocs int
	FilesRemoved     int
	Diagnostics      []domain.Diagnostic
	Errors           []string
}

// Run converts the files under root.
func (u *BatchUseCase) Run(root string, opts BatchOptions) (*BatchResult, error) {
	if opts.OutputExt == "" {
		opts.OutputExt = ".rst"
	}
	result := &BatchResult{RunID: u.newRunID()}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	u.logger.Info("batch.started", "run_id", result.RunID, "root", root, "files", len(files))

	seen := make(map[string]bool, len(files))
	for i, file := range files {
		seen[file.RelPath] = true

		if err := u.convertFile(file, opts, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.RelPath, err))
			u.logger.Error("batch.file_failed", "run_id", result.RunID, "source", file.RelPath, "error", err)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(files), file.RelPath)
		}
	}

	if opts.Prune {
		if err := u.prune(seen, result); err != nil {
			return nil, fmt.Errorf("failed to prune manifest: %w", err)
		}
	}

	u.logger.Info("batch.finished",
		"run_id", result.RunID,
		"converted", result.FilesConverted,
		"skipped", result.FilesSkipped,
		"no_docs", result.FilesWithoutDocs,
		"removed", result.FilesRemoved,
		"errors", len(result.Errors),
	)

	return result, nil
}

func (u *BatchUseCase) convertFile(file port.FileInfo, opts BatchOptions, result *BatchResult) error {
	content, err := u.reader.ReadFile(file.Path)
	if err != nil {
		return wrapReadError(file.Path, err)
	}

	hash := contentHash(content)
	outPath := OutputPath(opts.OutputDir, file.RelPath, opts.OutputExt)

	existing, known, err := u.manifest.GetEntry(file.RelPath)
	if err != nil {
		return fmt.Errorf("failed to read manifest entry: %w", err)
	}
	if known && !opts.Force && u.upToDate(existing, hash, outPath) {
		result.FilesSkipped++
		return nil
	}

	conv := u.converter.Convert(file.RelPath, content)
	result.Diagnostics = append(result.Diagnostics, conv.Diagnostics...)

	entry := domain.ManifestEntry{
		SourcePath:  file.RelPath,
		ContentHash: hash,
		RunID:       result.RunID,
		ConvertedAt: u.now().UTC(),
	}

	if !conv.Found {
		// The block may have been deleted since the last run.
		if u.removeStale(outPath) {
			result.FilesRemoved++
		}
		if known && existing.OutputPath != "" && existing.OutputPath != outPath && u.removeStale(existing.OutputPath) {
			result.FilesRemoved++
		}
		entry.Status = domain.StatusNoDocumentation
		result.FilesWithoutDocs++
		if err := u.manifest.PutEntry(entry); err != nil {
			return fmt.Errorf("failed to store manifest entry: %w", err)
		}
		return nil
	}

	if err := u.writer.WriteFile(outPath, conv.Output); err != nil {
		return wrapWriteError(outPath, err)
	}
	if known && existing.OutputPath != "" && existing.OutputPath != outPath {
		u.removeStale(existing.OutputPath)
	}

	entry.OutputPath = outPath
	entry.Status = domain.StatusConverted
	if err := u.manifest.PutEntry(entry); err != nil {
		return fmt.Errorf("failed to store manifest entry: %w", err)
	}

	u.logger.Debug("batch.file_converted", "run_id", result.RunID, "source", file.RelPath, "output", outPath)
	result.FilesConverted++
	return nil
}

func (u *BatchUseCase) upToDate(entry domain.ManifestEntry, hash, outPath string) bool {
	if entry.ContentHash != hash {
		return false
	}
	switch entry.Status {
	case domain.StatusNoDocumentation:
		return true
	case domain.StatusConverted:
		return entry.OutputPath == outPath && u.writer.Exists(outPath)
	}
	return false
}

// prune drops manifest entries, and their outputs, for sources that are gone.
func (u *BatchUseCase) prune(seen map[string]bool, result *BatchResult) error {
	entries, err := u.manifest.ListEntries()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if seen[entry.SourcePath] {
			continue
		}
		if entry.OutputPath != "" {
			if err := u.writer.Remove(entry.OutputPath); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to remove %s: %v", entry.OutputPath, err))
				continue
			}
		}
		if err := u.manifest.DeleteEntry(entry.SourcePath); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", entry.SourcePath, err))
			continue
		}
		result.FilesRemoved++
	}
	return nil
}

// DiscardOutputs removes every output recorded in manifest and reports how
// many entries had one. Call it before clearing a manifest so files written
// under an old output directory or extension are not orphaned.
func DiscardOutputs(manifest port.ManifestStore, writer port.FileWriter) (int, error) {
	entries, err := manifest.ListEntries()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, entry := range entries {
		if entry.OutputPath == "" {
			continue
		}
		if err := writer.Remove(entry.OutputPath); err != nil {
			return removed, wrapWriteError(entry.OutputPath, err)
		}
		removed++
	}
	return removed, nil
}

func (u *BatchUseCase) removeStale(output string) bool {
	if !u.writer.Exists(output) {
		return false
	}
	if err := u.writer.Remove(output); err != nil {
		u.logger.Warn("batch.remove_failed", "output", output, "error", err)
		return false
	}
	return true
}

// OutputPath maps a slash-separated source path under outDir, swapping its
// extension for ext.
func OutputPath(outDir, relPath, ext string) string {
	rel := strings.TrimSuffix(relPath, path.Ext(relPath)) + ext
	return filepath.Join(outDir, filepath.FromSlash(rel))
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
