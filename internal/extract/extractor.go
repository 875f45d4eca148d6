package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/remitworks/remit-extract/constants"
)

type Config struct {
	TessdataDir   string // tesseract data dir; empty uses the system default
	TesseractLang string // default "eng"
}

// Extractor dispatches on file extension to the matching extraction routine.
// Unsupported extensions yield an empty result, not an error.
type Extractor struct {
	cfg Config
	ocr OCRClient
	log *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	return &Extractor{
		cfg: cfg,
		ocr: &tesseractClient{tessdataDir: cfg.TessdataDir, lang: cfg.TesseractLang},
		log: logger,
	}
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.log.Debug("starting text extraction", "path", path, "ext", ext)

	switch constants.MapExtToFormat(ext) {
	case constants.IMAGE:
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.PDF:
		res, err := e.extractPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.SHEET:
		res, err := e.extractSheet(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	default:
		// Not a documented input format: skip, don't fail the file.
		return TextExtractionResult{Duration: time.Since(start)}, nil
	}
}
