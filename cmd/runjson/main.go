package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/remitworks/remit-extract/internal/common"
	"github.com/remitworks/remit-extract/internal/llm/openai"
	"github.com/remitworks/remit-extract/internal/pipeline"
	"github.com/remitworks/remit-extract/internal/store"
)

func main() {
	var (
		in      = flag.String("in", "", "directory of transcript .txt files (required)")
		out     = flag.String("out", "", "JSON output directory (required)")
		journal = flag.String("journal", "", "job journal sqlite path (empty disables)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *in == "" || *out == "" {
		logger.Error("usage", "cmd", "runjson --in <text-dir> --out <json-dir>")
		os.Exit(2)
	}

	ctx := context.Background()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

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

	completer := openai.NewClient(openai.Config{
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	normalizer := pipeline.NewNormalizer(completer, logger)
	results, err := pipeline.NewBatch(normalizer, jrnl, logger).Run(ctx, *in, *out)
	if err != nil {
		logger.Error("structured extraction failed", "error", err)
		os.Exit(1)
	}

	succeeded, failed := 0, 0
	for name, r := range results {
		if m, ok := r.(map[string]any); ok {
			if msg, isErr := m["error"]; isErr {
				logger.Warn("document failed", "file", name, "error", msg)
				failed++
				continue
			}
		}
		succeeded++
	}
	logger.Info("structured extraction OK", "succeeded", succeeded, "failed", failed, "output_dir", *out)
}
