package constants

import "strings"

// Format is the coarse file family, used to pick an extraction strategy.
type Format string

const (
	PDF      Format = "PDF"
	IMAGE    Format = "IMAGE"
	TEXT     Format = "TEXT"
	MARKDOWN Format = "MARKDOWN"
	DOCX     Format = "DOCX"
	ODT      Format = "ODT"
	HTML     Format = "HTML"
)

// AllowedExtensions holds the file extensions the conversion API accepts.
var AllowedExtensions = map[string]struct{}{
	"pdf":      {},
	"txt":      {},
	"text":     {},
	"md":       {},
	"markdown": {},
	"docx":     {},
	"odt":      {},
	"html":     {},
	"htm":      {},
	"jpg":      {},
	"jpeg":     {},
	"png":      {},
	"tiff":     {},
	"tif":      {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a (possibly dotted) extension to a Format.
// Returns "" for unrecognized extensions.
func MapExtToFormat(ext string) Format {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "tiff", "tif":
		return IMAGE
	case "txt", "text":
		return TEXT
	case "md", "markdown":
		return MARKDOWN
	case "docx":
		return DOCX
	case "odt":
		return ODT
	case "html", "htm":
		return HTML
	default:
		return ""
	}
}
