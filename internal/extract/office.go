package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// extractDocx parses a .docx payload by reading word/document.xml from the
// ZIP archive and rendering paragraphs and headings as markdown.
func extractDocx(data []byte) (Result, error) {
	doc, err := readZipEntry(data, "word/document.xml")
	if err != nil {
		return Result{}, err
	}

	decoder := xml.NewDecoder(bytes.NewReader(doc))
	var md strings.Builder
	var title string
	var currentText strings.Builder
	var inParagraph bool
	var paragraphStyle string

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "p":
				inParagraph = true
				currentText.Reset()
				paragraphStyle = ""
			case t.Name.Local == "pStyle" && inParagraph:
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						paragraphStyle = attr.Value
					}
				}
			}

		case xml.CharData:
			if inParagraph {
				currentText.Write(t)
			}

		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}
				level := docxHeadingLevel(paragraphStyle)
				if level > 0 && title == "" {
					title = text
				}
				writeBlock(&md, level, text)
			}
		}
	}

	return Result{
		Markdown: strings.TrimSpace(md.String()),
		Title:    title,
		Method:   "native",
		Pages:    1,
	}, nil
}

// extractODT parses an .odt payload by reading content.xml from the ZIP
// archive.
func extractODT(data []byte) (Result, error) {
	content, err := readZipEntry(data, "content.xml")
	if err != nil {
		return Result{}, err
	}

	decoder := xml.NewDecoder(bytes.NewReader(content))
	var md strings.Builder
	var title string
	var currentText strings.Builder
	var inHeading bool
	var headingLevel int
	var inParagraph bool

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "h": // <text:h>
				inHeading = true
				currentText.Reset()
				headingLevel = 1
				for _, attr := range t.Attr {
					if attr.Name.Local == "outline-level" {
						if n, err := strconv.Atoi(attr.Value); err == nil {
							headingLevel = n
						}
					}
				}
			case "p": // <text:p>
				inParagraph = true
				currentText.Reset()
			}

		case xml.CharData:
			if inHeading || inParagraph {
				currentText.Write(t)
			}

		case xml.EndElement:
			switch {
			case t.Name.Local == "h" && inHeading:
				inHeading = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}
				if title == "" {
					title = text
				}
				writeBlock(&md, headingLevel, text)

			case t.Name.Local == "p" && inParagraph:
				inParagraph = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}
				writeBlock(&md, 0, text)
			}
		}
	}

	return Result{
		Markdown: strings.TrimSpace(md.String()),
		Title:    title,
		Method:   "native",
		Pages:    1,
	}, nil
}

func readZipEntry(data []byte, name string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// writeBlock appends a heading (level 1-6) or a paragraph (level 0).
func writeBlock(md *strings.Builder, level int, text string) {
	if md.Len() > 0 {
		md.WriteString("\n\n")
	}
	if level > 0 {
		if level > 6 {
			level = 6
		}
		md.WriteString(strings.Repeat("#", level))
		md.WriteByte(' ')
	}
	md.WriteString(text)
}

// docxHeadingLevel extracts the heading level from a paragraph style name.
// e.g. "Heading1" → 1, "Heading2" → 2, "Title" → 1, etc.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)

	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}

	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}
