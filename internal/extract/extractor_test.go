package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docmdio/docmd/internal/common"
)

type runnerFunc func(name string, args []string) ([]byte, []byte, error)

func (f runnerFunc) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	return f(name, args)
}

func newTestExtractor(run runnerFunc) *Extractor {
	e := NewExtractor(Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.runner = run
	return e
}

// renderPages simulates pdftoppm by creating n page images at the prefix
// pdftoppm was invoked with.
func renderPages(t *testing.T, args []string, n int) {
	t.Helper()
	prefix := args[len(args)-1]
	for i := 1; i <= n; i++ {
		if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), []byte("png"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExtractPDFDirectText(t *testing.T) {
	directText := "Invoice 2024-001\nTotal amount due: 150.00\nPayment due within 30 days."
	var toppmCalls int
	e := newTestExtractor(func(name string, args []string) ([]byte, []byte, error) {
		switch name {
		case "pdftotext":
			return []byte(directText), nil, nil
		case "pdftoppm":
			toppmCalls++
			return nil, nil, nil
		default:
			t.Fatalf("unexpected command %q", name)
			return nil, nil, nil
		}
	})

	res, err := e.Extract(context.Background(), Document{Filename: "invoice.pdf", Data: []byte("%PDF-1.4")})
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != "pdf-text" {
		t.Errorf("Method = %q, want pdf-text", res.Method)
	}
	if res.UsedOCR {
		t.Error("UsedOCR = true for a text PDF")
	}
	if toppmCalls != 0 {
		t.Errorf("pdftoppm ran %d times for a text PDF", toppmCalls)
	}
	if !strings.Contains(res.Markdown, "Invoice 2024-001") {
		t.Errorf("markdown lost content: %q", res.Markdown)
	}
}

func TestExtractPDFOCRFallback(t *testing.T) {
	e := newTestExtractor(nil)
	e.runner = runnerFunc(func(name string, args []string) ([]byte, []byte, error) {
		switch name {
		case "pdftotext":
			return nil, nil, nil // no embedded text
		case "pdftoppm":
			renderPages(t, args, 3)
			return nil, nil, nil
		case "tesseract":
			page := filepath.Base(args[0])
			return []byte("text from " + page), nil, nil
		default:
			t.Fatalf("unexpected command %q", name)
			return nil, nil, nil
		}
	})

	res, err := e.Extract(context.Background(), Document{Filename: "scan.pdf", Data: []byte("%PDF-1.4")})
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != "pdf-ocr" || !res.UsedOCR {
		t.Errorf("Method = %q UsedOCR = %v, want pdf-ocr/true", res.Method, res.UsedOCR)
	}
	if res.Pages != 3 {
		t.Errorf("Pages = %d, want 3", res.Pages)
	}
	if !strings.HasPrefix(res.Markdown, ocrBanner) {
		t.Errorf("markdown missing OCR banner: %q", res.Markdown)
	}
	for i := 1; i <= 3; i++ {
		want := fmt.Sprintf("## Page %d\n\ntext from page-%d.png", i, i)
		if !strings.Contains(res.Markdown, want) {
			t.Errorf("markdown missing section %q:\n%s", want, res.Markdown)
		}
	}
	// Page order must follow page numbers.
	if strings.Index(res.Markdown, "## Page 1") > strings.Index(res.Markdown, "## Page 2") {
		t.Error("pages out of order")
	}
	if strings.Count(res.Markdown, pageBreak) != 2 {
		t.Errorf("want 2 page breaks, markdown:\n%s", res.Markdown)
	}
}

func TestExtractPDFPartialPageFailure(t *testing.T) {
	e := newTestExtractor(nil)
	e.runner = runnerFunc(func(name string, args []string) ([]byte, []byte, error) {
		switch name {
		case "pdftotext":
			return nil, nil, nil
		case "pdftoppm":
			renderPages(t, args, 2)
			return nil, nil, nil
		case "tesseract":
			if strings.HasSuffix(args[0], "page-1.png") {
				return nil, []byte("engine crashed"), errors.New("exit status 1")
			}
			return []byte("second page text"), nil, nil
		default:
			return nil, nil, nil
		}
	})

	res, err := e.Extract(context.Background(), Document{Filename: "scan.pdf", Data: []byte("%PDF-1.4")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Markdown, "## Page 2\n\nsecond page text") {
		t.Errorf("surviving page missing:\n%s", res.Markdown)
	}
	// The failed page keeps its marker with no body.
	if !strings.Contains(res.Markdown, "## Page 1") {
		t.Errorf("failed page marker missing:\n%s", res.Markdown)
	}
	var found bool
	for _, w := range res.Warnings {
		if strings.Contains(w, "page 1") {
			found = true
		}
	}
	if !found {
		t.Errorf("no warning for failed page, warnings: %v", res.Warnings)
	}
}

func TestExtractPDFAllPagesFail(t *testing.T) {
	e := newTestExtractor(nil)
	e.runner = runnerFunc(func(name string, args []string) ([]byte, []byte, error) {
		switch name {
		case "pdftotext":
			return nil, nil, nil
		case "pdftoppm":
			renderPages(t, args, 2)
			return nil, nil, nil
		case "tesseract":
			return nil, nil, errors.New("exit status 1")
		default:
			return nil, nil, nil
		}
	})

	res, err := e.Extract(context.Background(), Document{Filename: "scan.pdf", Data: []byte("%PDF-1.4")})
	if err != nil {
		t.Fatalf("total OCR failure should not be an error, got %v", err)
	}
	if res.Markdown != "" {
		t.Errorf("Markdown = %q, want empty", res.Markdown)
	}
	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2", res.Pages)
	}
}

func TestExtractImage(t *testing.T) {
	e := newTestExtractor(func(name string, args []string) ([]byte, []byte, error) {
		if name != "tesseract" {
			t.Fatalf("unexpected command %q", name)
		}
		return []byte("RECEIPT\nTOTAL 42.00"), nil, nil
	})

	res, err := e.Extract(context.Background(), Document{Filename: "receipt.png", Data: []byte("fake png")})
	if err != nil {
		t.Fatal(err)
	}
	if res.Method != "image-ocr" || !res.UsedOCR || res.Pages != 1 {
		t.Errorf("got method=%q usedOCR=%v pages=%d", res.Method, res.UsedOCR, res.Pages)
	}
	if !strings.Contains(res.Markdown, "TOTAL 42.00") {
		t.Errorf("markdown = %q", res.Markdown)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := newTestExtractor(func(name string, args []string) ([]byte, []byte, error) {
		t.Fatalf("no command should run, got %q", name)
		return nil, nil, nil
	})

	_, err := e.Extract(context.Background(), Document{Filename: "payload.exe", Data: []byte{0x4d, 0x5a}})
	if !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractWrapsToolFailures(t *testing.T) {
	e := newTestExtractor(func(name string, args []string) ([]byte, []byte, error) {
		return nil, []byte("boom"), errors.New("exit status 127")
	})

	_, err := e.Extract(context.Background(), Document{Filename: "scan.pdf", Data: []byte("%PDF-1.4")})
	if !errors.Is(err, common.ErrExtraction) {
		t.Fatalf("err = %v, want ErrExtraction", err)
	}
}
