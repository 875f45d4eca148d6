package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/remitworks/remit-extract/internal/common"
	"github.com/remitworks/remit-extract/internal/extract"
	"github.com/remitworks/remit-extract/internal/store"
)

func main() {
	var (
		in      = flag.String("in", "", "directory of source documents (required)")
		out     = flag.String("out", "", "transcript output directory (required)")
		journal = flag.String("journal", "", "job journal sqlite path (empty disables)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *in == "" || *out == "" {
		logger.Error("usage", "cmd", "runextract --in <docs-dir> --out <text-dir>")
		os.Exit(2)
	}

	ctx := context.Background()
	cfg := common.LoadConfig()

	var jrnl *store.Journal
	if *journal != "" {
		var err error
		jrnl, err = store.Open(ctx, *journal, logger)
		if err != nil {
			logger.Error("open journal", "error", err)
			os.Exit(1)
		}
		defer func() { _ = jrnl.Close() }()
	}

	extractor := extract.NewExtractor(extract.Config{
		TessdataDir:   cfg.Extract.TessdataDir,
		TesseractLang: cfg.Extract.TesseractLang,
	}, logger)

	results, stats, err := extract.NewBatch(extractor, jrnl, logger).Run(ctx, *in, *out)
	if err != nil {
		logger.Error("text extraction failed", "error", err)
		os.Exit(1)
	}

	for _, r := range results {
		if r.Err != "" {
			logger.Warn("file failed", "path", r.Path, "error", r.Err)
		}
	}
	logger.Info("text extraction OK",
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
}
