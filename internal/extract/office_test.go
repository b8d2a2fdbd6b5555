package extract

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDocx(t *testing.T) {
	document := `<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Annual Report</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Revenue grew this year.</w:t></w:r></w:p>` +
		`<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Details</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>More text.</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildZip(t, map[string]string{"word/document.xml": document})

	res, err := extractDocx(data)
	if err != nil {
		t.Fatal(err)
	}
	want := "# Annual Report\n\nRevenue grew this year.\n\n## Details\n\nMore text."
	if res.Markdown != want {
		t.Errorf("markdown:\n%q\nwant:\n%q", res.Markdown, want)
	}
	if res.Title != "Annual Report" {
		t.Errorf("Title = %q, want Annual Report", res.Title)
	}
	if res.Method != "native" {
		t.Errorf("Method = %q, want native", res.Method)
	}
}

func TestExtractDocxEmptyParagraphsSkipped(t *testing.T) {
	document := `<w:document xmlns:w="urn:x"><w:body>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>Only paragraph.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>  </w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildZip(t, map[string]string{"word/document.xml": document})

	res, err := extractDocx(data)
	if err != nil {
		t.Fatal(err)
	}
	if res.Markdown != "Only paragraph." {
		t.Errorf("markdown = %q", res.Markdown)
	}
	if res.Title != "" {
		t.Errorf("Title = %q, want empty", res.Title)
	}
}

func TestExtractDocxMissingDocumentXML(t *testing.T) {
	data := buildZip(t, map[string]string{"word/other.xml": "<x/>"})
	if _, err := extractDocx(data); err == nil {
		t.Fatal("expected an error for a docx without word/document.xml")
	}
}

func TestExtractDocxNotAZip(t *testing.T) {
	if _, err := extractDocx([]byte("this is not a zip archive")); err == nil {
		t.Fatal("expected an error for a non-zip payload")
	}
}

func TestExtractODT(t *testing.T) {
	content := `<?xml version="1.0"?>` +
		`<office:document-content xmlns:office="urn:o" xmlns:text="urn:t"><office:body><office:text>` +
		`<text:h text:outline-level="2">Findings</text:h>` +
		`<text:p>First paragraph.</text:p>` +
		`<text:h>Untitled Level</text:h>` +
		`<text:p>Second paragraph.</text:p>` +
		`</office:text></office:body></office:document-content>`
	data := buildZip(t, map[string]string{"content.xml": content})

	res, err := extractODT(data)
	if err != nil {
		t.Fatal(err)
	}
	want := "## Findings\n\nFirst paragraph.\n\n# Untitled Level\n\nSecond paragraph."
	if res.Markdown != want {
		t.Errorf("markdown:\n%q\nwant:\n%q", res.Markdown, want)
	}
	if res.Title != "Findings" {
		t.Errorf("Title = %q, want Findings", res.Title)
	}
}
