package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/remitworks/remit-extract/constants"
)

// extractSheet reads every sheet of a workbook and renders each as a
// fixed-width text table; sheets are concatenated with newline separators so
// the transcript reads like the printed document.
func (e *Extractor) extractSheet(_ context.Context, path string) (TextExtractionResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return TextExtractionResult{SourceType: constants.SHEET}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.log.Warn("close workbook", "path", path, "error", cerr)
		}
	}()

	var parts []string
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return TextExtractionResult{SourceType: constants.SHEET}, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if rendered := renderTable(rows); rendered != "" {
			parts = append(parts, rendered)
		}
	}

	return TextExtractionResult{
		Text:       strings.Join(parts, "\n"),
		Pages:      len(sheets),
		SourceType: constants.SHEET,
		Method:     "sheet-text",
	}, nil
}

// renderTable pads every column to its widest cell and right-aligns values,
// one text line per row.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		var line []string
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			line = append(line, fmt.Sprintf("%*s", widths[i], cell))
		}
		b.WriteString(strings.TrimRight(strings.Join(line, "  "), " "))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
