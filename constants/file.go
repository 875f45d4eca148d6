package constants

import "strings"

// FileFormats holds the document formats the pipeline recognizes.
var FileFormats = []string{"IMAGE", "PDF", "SHEET", "TXT"}

const (
	IMAGE = "IMAGE"
	PDF   = "PDF"
	SHEET = "SHEET"
	TXT   = "TXT"
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its document format.
// Returns "" for anything the pipeline does not handle.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "png", "jpg", "jpeg":
		return IMAGE
	case "pdf":
		return PDF
	case "xls", "xlsx":
		return SHEET
	case "txt":
		return TXT
	default:
		return ""
	}
}
