package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/remitworks/remit-extract/constants"
	"github.com/remitworks/remit-extract/internal/store"
)

type FileResult struct {
	Path       string
	OutputPath string
	Method     string
	Err        string
}

type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Skipped   uint32
	Failed    uint32
}

// Batch runs Stage 1 over a directory: one transcript file per extractable
// document. A failing document is recorded and the batch continues.
type Batch struct {
	tx      TextExtractor
	journal *store.Journal
	log     *slog.Logger
}

func NewBatch(tx TextExtractor, journal *store.Journal, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{tx: tx, journal: journal, log: logger}
}

// Run extracts text from every regular file in srcDir and writes non-empty
// results to outDir as <stem>.txt. Unsupported extensions are skipped, not
// errors. Returns per-file results plus aggregate stats.
func (b *Batch) Run(ctx context.Context, srcDir, outDir string) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(srcDir) == "" {
		return nil, DirStats{}, errors.New("source directory is required")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, DirStats{}, fmt.Errorf("create output dir: %w", err)
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, DirStats{}, fmt.Errorf("read source dir: %w", err)
	}

	var results []FileResult
	var stats DirStats

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stats.Scanned++
		path := filepath.Join(srcDir, entry.Name())

		ext := constants.NormalizeExt(filepath.Ext(path))
		format := constants.MapExtToFormat(ext)
		if format == "" || format == constants.TXT {
			stats.Skipped++
			b.log.Debug("extract.file.skipped", "path", path, "ext", ext)
			continue
		}
		stats.Matched++

		jobID, _ := b.journal.Start(ctx, path, constants.StageText)

		res, err := b.tx.Extract(ctx, path)
		if err != nil {
			_ = b.journal.FinishFailure(ctx, jobID, err.Error())
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			b.log.Error("extract.file.failed", "path", path, "error", err)
			continue
		}
		if strings.TrimSpace(res.Text) == "" {
			_ = b.journal.FinishSuccess(ctx, jobID, "")
			results = append(results, FileResult{Path: path, Method: res.Method})
			stats.Skipped++
			b.log.Warn("extract.file.empty", "path", path, "method", res.Method)
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		outPath := filepath.Join(outDir, stem+".txt")
		if err := os.WriteFile(outPath, []byte(res.Text), 0o644); err != nil {
			_ = b.journal.FinishFailure(ctx, jobID, err.Error())
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			continue
		}

		_ = b.journal.FinishSuccess(ctx, jobID, outPath)
		results = append(results, FileResult{Path: path, OutputPath: outPath, Method: res.Method})
		stats.Succeeded++
		b.log.Info("extract.file.ok",
			"path", path,
			"out", outPath,
			"method", res.Method,
			"pages", res.Pages,
			"bytes", len(res.Text),
			"duration_ms", res.Duration.Milliseconds(),
		)
	}

	return results, stats, nil
}
