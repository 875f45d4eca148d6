package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/remitworks/remit-extract/constants"
)

// extractPDF pulls the text layer page by page. Pages with no extractable
// text (pure scans) are skipped; OCR of rasterized PDFs is out of scope.
func (e *Extractor) extractPDF(_ context.Context, path string) (TextExtractionResult, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return TextExtractionResult{SourceType: constants.PDF}, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	var warns []string
	pages := 0
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		txt, err := p.GetPlainText(nil)
		if err != nil {
			warns = append(warns, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		if strings.TrimSpace(txt) == "" {
			continue
		}
		b.WriteString(txt)
		b.WriteString("\n")
		pages++
	}

	return TextExtractionResult{
		Text:       b.String(),
		Pages:      pages,
		SourceType: constants.PDF,
		Method:     "pdf-text",
		Warnings:   warns,
	}, nil
}
