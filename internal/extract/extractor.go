// Package extract turns uploaded document bytes into markdown text.
//
// PDFs get a two-tier strategy: a direct pdftotext pass first, then an OCR
// fallback (pdftoppm + tesseract per page) when the direct pass yields too
// little text to trust. The fallback trigger is content-based, not
// filename-based; the threshold is configurable because it is a heuristic.
// Other formats go straight to their converter: docx/odt via ZIP+XML,
// html via sanitize + html-to-markdown, txt/md with normalization only,
// images via direct OCR.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/docmdio/docmd/constants"
	"github.com/docmdio/docmd/internal/common"
)

// Config configures the extractor. Zero values get sensible defaults.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng+ind"
	TessdataDir   string
	DPI           int // rasterization DPI for scanned PDFs, default 300
	MaxPages      int // 0 = no limit

	// MinTextChars is the non-whitespace character count below which a
	// direct PDF extraction is considered empty and OCR kicks in.
	MinTextChars int
}

type Extractor struct {
	cfg    Config
	runner Runner
	html   *htmlConverter
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng+ind"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.MinTextChars <= 0 {
		cfg.MinTextChars = 20
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, html: newHTMLConverter(), logger: logger}
}

// Extract picks a strategy based on the declared file extension.
func (e *Extractor) Extract(ctx context.Context, doc Document) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(doc.Filename))
	format := constants.MapExtToFormat(ext)
	if format == "" {
		return Result{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}

	e.logger.Debug("extract.start", "filename", doc.Filename, "format", format, "bytes", len(doc.Data))

	res, err := e.dispatch(ctx, format, doc)
	res.Format = format
	res.Duration = time.Since(start)
	if err != nil {
		if isUnsupported(err) {
			return res, err
		}
		return res, fmt.Errorf("%w: %v", common.ErrExtraction, err)
	}

	e.logger.Debug("extract.done",
		"filename", doc.Filename,
		"method", res.Method,
		"pages", res.Pages,
		"used_ocr", res.UsedOCR,
		"chars", len(res.Markdown),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) dispatch(ctx context.Context, format constants.Format, doc Document) (Result, error) {
	switch format {
	case constants.TEXT, constants.MARKDOWN:
		return extractPlainText(doc.Data)
	case constants.DOCX:
		return extractDocx(doc.Data)
	case constants.ODT:
		return extractODT(doc.Data)
	case constants.HTML:
		return e.html.convert(doc.Data)
	case constants.PDF, constants.IMAGE:
		// External tools want a path; stage the payload in a scratch file
		// that is removed on every exit path.
		path, cleanup, err := e.stage(doc)
		if err != nil {
			return Result{}, err
		}
		defer cleanup()
		if format == constants.PDF {
			return e.extractPDF(ctx, path)
		}
		res, err := e.extractImage(ctx, path)
		return res, err
	default:
		return Result{}, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, format)
	}
}

// stage writes the payload to a temp file keeping the original extension.
func (e *Extractor) stage(doc Document) (string, func(), error) {
	dir, err := os.MkdirTemp("", "docmd-in-*")
	if err != nil {
		return "", nil, fmt.Errorf("scratch dir: %w", err)
	}
	cleanup := func() {
		if rerr := os.RemoveAll(dir); rerr != nil {
			e.logger.Warn("extract.cleanup_failed", "dir", dir, "error", rerr)
		}
	}
	path := filepath.Join(dir, "doc."+constants.NormalizeExt(filepath.Ext(doc.Filename)))
	if err := os.WriteFile(path, doc.Data, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("stage payload: %w", err)
	}
	return path, cleanup, nil
}

func isUnsupported(err error) bool {
	return errors.Is(err, common.ErrUnsupportedFormat)
}
