package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/remitworks/remit-extract/internal/common"
	"github.com/remitworks/remit-extract/internal/extract"
	"github.com/remitworks/remit-extract/internal/llm/openai"
	"github.com/remitworks/remit-extract/internal/pipeline"
	"github.com/remitworks/remit-extract/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		in      = flag.String("in", "", "directory of source documents (required)")
		textDir = flag.String("text", "", "transcript directory (default <in>/../transcripts)")
		out     = flag.String("out", "", "JSON output directory (default <in>/../json)")
		journal = flag.String("journal", "", "job journal sqlite path (default from JOURNAL_PATH; empty disables)")
	)
	flag.Parse()

	if *in == "" {
		printError("Error: --in is required\n")
		os.Exit(1)
	}
	parent := filepath.Dir(*in)
	if *textDir == "" {
		*textDir = filepath.Join(parent, "transcripts")
	}
	if *out == "" {
		*out = filepath.Join(parent, "json")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	journalPath := *journal
	if journalPath == "" {
		journalPath = cfg.Journal.Path
	}
	var jrnl *store.Journal
	if journalPath != "" {
		var err error
		jrnl, err = store.Open(ctx, journalPath, logger)
		if err != nil {
			logger.Error("failed to open job journal", "path", journalPath, "error", err)
			os.Exit(1)
		}
		defer func() { _ = jrnl.Close() }()
	}

	// Stage 1: documents -> transcripts
	extractor := extract.NewExtractor(extract.Config{
		TessdataDir:   cfg.Extract.TessdataDir,
		TesseractLang: cfg.Extract.TesseractLang,
	}, logger)

	logger.Info("starting text extraction", "in", *in, "out", *textDir)
	fileResults, stats, err := extract.NewBatch(extractor, jrnl, logger).Run(ctx, *in, *textDir)
	if err != nil {
		logger.Error("text extraction failed", "error", err)
		os.Exit(1)
	}
	logger.Info("text extraction complete",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)

	// Stage 2: transcripts -> structured JSON
	completer := openai.NewClient(openai.Config{
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	normalizer := pipeline.NewNormalizer(completer, logger)
	results, err := pipeline.NewBatch(normalizer, jrnl, logger).Run(ctx, *textDir, *out)
	if err != nil {
		logger.Error("structured extraction failed", "error", err)
		os.Exit(1)
	}

	succeeded, failed := 0, 0
	for _, r := range results {
		if m, ok := r.(map[string]any); ok {
			if _, isErr := m["error"]; isErr {
				failed++
				continue
			}
		}
		succeeded++
	}

	logger.Info("batch processing complete",
		"documents", stats.Matched,
		"transcripts", len(fileResults),
		"json_succeeded", succeeded,
		"json_failed", failed,
		"output_dir", *out,
	)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Documents scanned: %d\n", stats.Scanned)
	fmt.Printf("- Transcripts written: %d\n", stats.Succeeded)
	fmt.Printf("- JSON succeeded: %d\n", succeeded)
	fmt.Printf("- JSON failed: %d\n", failed)
	fmt.Printf("- Output: %s\n", *out)
}
