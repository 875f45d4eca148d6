package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/remitworks/remit-extract/constants"
	"github.com/remitworks/remit-extract/internal/store"
)

// Batch runs Stage 2 over a directory of transcripts. One document's failure
// becomes an error marker in the result map; the batch always continues.
type Batch struct {
	normalizer *Normalizer
	journal    *store.Journal
	log        *slog.Logger
}

func NewBatch(n *Normalizer, journal *store.Journal, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{normalizer: n, journal: journal, log: logger}
}

// Run processes every *.txt file in srcDir and writes one <stem>.json per
// success into outDir. The returned map is keyed by transcript filename and
// holds either the envelope or {"error": "<message>"}.
//
// A document's JSON file is only written after its full pipeline succeeded.
func (b *Batch) Run(ctx context.Context, srcDir, outDir string) (map[string]any, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths, err := filepath.Glob(filepath.Join(srcDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	sort.Strings(paths)

	results := make(map[string]any, len(paths))
	if len(paths) == 0 {
		b.log.Warn("structured.no_transcripts", "dir", srcDir)
		return results, nil
	}

	for _, path := range paths {
		name := filepath.Base(path)
		b.log.Info("structured.file.start", "file", name)

		jobID, _ := b.journal.Start(ctx, path, constants.StageJSON)

		text, err := os.ReadFile(path)
		if err != nil {
			_ = b.journal.FinishFailure(ctx, jobID, err.Error())
			results[name] = errorMarker(err)
			b.log.Error("structured.file.read_failed", "file", name, "error", err)
			continue
		}

		envelope, err := b.normalizer.ProcessTranscript(ctx, string(text))
		if err != nil {
			_ = b.journal.FinishFailure(ctx, jobID, err.Error())
			results[name] = errorMarker(err)
			b.log.Error("structured.file.failed", "file", name, "error", err)
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		outPath := filepath.Join(outDir, stem+".json")
		if err := writeJSON(outPath, envelope); err != nil {
			_ = b.journal.FinishFailure(ctx, jobID, err.Error())
			results[name] = errorMarker(err)
			b.log.Error("structured.file.write_failed", "file", name, "error", err)
			continue
		}

		_ = b.journal.FinishSuccess(ctx, jobID, outPath)
		results[name] = envelope
		b.log.Info("structured.file.ok", "file", name, "out", outPath)
	}

	return results, nil
}

func errorMarker(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}

// writeJSON persists pretty-printed UTF-8 JSON. HTML escaping is off and map
// keys serialize sorted, so re-runs with a deterministic model are
// byte-identical.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
