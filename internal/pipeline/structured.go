package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/remitworks/remit-extract/internal/llm"
	"github.com/remitworks/remit-extract/internal/records"
)

// Normalizer turns one OCR transcript into the validated, repaired envelope:
// filtered person records plus the agency summary with the manually computed
// gross-pay total.
type Normalizer struct {
	completer llm.Completer
	log       *slog.Logger
}

func NewNormalizer(completer llm.Completer, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{completer: completer, log: logger}
}

// ProcessTranscript runs the full per-document algorithm. The returned map is
// the envelope to persist: a "records" list and one agency-named summary
// object carrying "Manual Total Gross Pays".
func (n *Normalizer) ProcessTranscript(ctx context.Context, transcript string) (map[string]any, error) {
	prompt := llm.BuildExtractionPrompt(records.RequiredFields, transcript)

	raw, err := n.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model completion: %w", err)
	}

	content := llm.StripCodeFence(raw)

	var entities map[string]any
	if err := json.Unmarshal([]byte(content), &entities); err != nil {
		n.log.Error("normalize.parse_failed", "error", err, "content_len", len(content))
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	if err := llm.ValidateEnvelope([]byte(content)); err != nil {
		return nil, fmt.Errorf("invalid response structure: %w", err)
	}

	agencyBlock, _ := entities["Agency Name"].(map[string]any)
	agencyKey := ""
	for k := range agencyBlock {
		agencyKey = k
	}
	if records.NormalizeKey(agencyKey) == "others" {
		return nil, fmt.Errorf("agency name was extracted as %q, which is not allowed", agencyKey)
	}

	rawRecords, _ := entities["records"].([]any)
	clean := make([]any, 0, len(rawRecords))
	for _, r := range rawRecords {
		rec, ok := r.(map[string]any)
		if !ok {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(records.AsString(rec["Person Name"])))
		if name == "other" || name == "others" {
			continue
		}
		if records.AsString(rec["Agency"]) == "" {
			rec["Agency"] = agencyKey
		}
		clean = append(clean, rec)
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("no person records extracted")
	}

	total := records.SumGrossPays(clean)

	first := clean[0].(map[string]any)
	realAgency := strings.TrimSpace(records.AsString(first["Agency"]))
	if realAgency == "" {
		return nil, fmt.Errorf("missing agency name in record")
	}

	summary, ok := agencyBlock[agencyKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("agency summary for %q is not an object", agencyKey)
	}
	summary["Manual Total Gross Pays"] = total

	out := map[string]any{
		"records":  clean,
		realAgency: summary,
	}

	n.log.Info("normalize.ok",
		"agency", realAgency,
		"records", len(clean),
		"manual_total_gross", total,
	)
	return out, nil
}
