package extract

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// htmlConverter converts sanitized HTML into markdown.
type htmlConverter struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

func newHTMLConverter() *htmlConverter {
	return &htmlConverter{
		policy: bluemonday.UGCPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// convert sanitizes the uploaded HTML (scripts, event handlers, hidden
// trickery) before rendering it to markdown.
func (h *htmlConverter) convert(data []byte) (Result, error) {
	clean := h.policy.SanitizeBytes(data)
	md, err := h.conv.ConvertString(string(clean))
	if err != nil {
		return Result{}, fmt.Errorf("convert html: %w", err)
	}
	md = Normalize(md)
	return Result{
		Markdown: md,
		Title:    firstMarkdownHeading(md),
		Method:   "native",
		Pages:    1,
	}, nil
}

// firstMarkdownHeading returns the text of the first ATX heading, if any.
func firstMarkdownHeading(md string) string {
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}
