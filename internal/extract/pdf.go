package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/avast/retry-go"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ocrBanner is prepended to OCR-derived markdown so consumers can tell the
// content came from rasterized pages.
const ocrBanner = "*Text extracted using OCR*"

// pageBreak separates per-page sections in OCR markdown.
const pageBreak = "\n\n---\n\n"

// extractPDF runs the two-tier PDF strategy: direct text first, OCR fallback
// when the direct pass yields too little to trust.
func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	pages, hasImages := e.inspectPDF(path)

	text, warns, err := e.pdfToText(ctx, path)
	if err != nil {
		// A broken direct pass is not fatal: scanned PDFs with exotic
		// structure can still rasterize fine.
		warns = append(warns, fmt.Sprintf("pdftotext: %v", err))
		text = ""
	}
	text = Normalize(text)

	quality := measureQuality(text, pages, hasImages)
	if !quality.NeedsOCR(e.cfg.MinTextChars) {
		return Result{
			Markdown: text,
			Method:   "pdf-text",
			Pages:    pages,
			Warnings: warns,
		}, nil
	}

	e.logger.Info("pdf.ocr_fallback",
		"text_chars", quality.TextChars,
		"min_text_chars", e.cfg.MinTextChars,
		"chars_per_page", quality.CharsPerPage,
		"has_image_streams", quality.HasImageStreams,
	)

	md, ocrPages, ocrWarns, err := e.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		return Result{Warnings: warns}, err
	}
	return Result{
		Markdown: md,
		Method:   "pdf-ocr",
		Pages:    ocrPages,
		UsedOCR:  true,
		Warnings: warns,
	}, nil
}

// inspectPDF reads PDF structure to count pages and detect image XObjects.
// Best effort: a malformed xref yields zero pages and no image evidence,
// leaving the character threshold as the only fallback trigger.
func (e *Extractor) inspectPDF(path string) (pages int, hasImages bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		e.logger.Debug("pdf.inspect_failed", "path", path, "error", err)
		return 0, false
	}
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		if len(pdfcpu.ImageObjNrs(pctx, pageNr)) > 0 {
			hasImages = true
			break
		}
	}
	return pctx.PageCount, hasImages
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, warnings []string, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", []string{string(errb)}, err
	}
	return string(out), nil, nil
}

// pdfToOCR rasterizes every page and runs OCR per page. One page failing is
// recorded as an empty page; only a render failure aborts the document.
func (e *Extractor) pdfToOCR(ctx context.Context, path string) (md string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "docmd-pp-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func() {
		if rerr := os.RemoveAll(tmpDir); rerr != nil {
			e.logger.Warn("pdf.ocr_cleanup_failed", "dir", tmpDir, "error", rerr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, fmt.Errorf("render pages: %w", err)
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...; pdftoppm
	// zero-pads the page number so lexicographic order is page order)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	sections := make([]string, 0, len(matches))
	var warns []string
	nonEmpty := 0
	for i, img := range matches {
		txt, w, err := e.tesseractPage(ctx, img)
		warns = append(warns, w...)
		if err != nil {
			warns = append(warns, fmt.Sprintf("page %d: %v", i+1, err))
			txt = ""
		}
		txt = Normalize(txt)
		if txt != "" {
			nonEmpty++
			sections = append(sections, fmt.Sprintf("## Page %d\n\n%s", i+1, txt))
		} else {
			sections = append(sections, fmt.Sprintf("## Page %d", i+1))
		}
	}
	if nonEmpty == 0 {
		// Total OCR failure is an explicit empty extraction, not a crash.
		return "", len(matches), warns, nil
	}
	md = ocrBanner + "\n\n" + strings.Join(sections, pageBreak)
	return md, len(matches), warns, nil
}

// tesseractPage OCRs one rendered page, retrying once on transient failure.
func (e *Extractor) tesseractPage(ctx context.Context, img string) (string, []string, error) {
	var txt string
	var warns []string
	err := retry.Do(
		func() error {
			t, w, err := e.tesseractOCR(ctx, img)
			if err != nil {
				return err
			}
			txt, warns = t, w
			return nil
		},
		retry.Attempts(2),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	return txt, warns, err
}
