package converter

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"html2md/internal/converter/sanitizer"
)

// htmlConverter converts HTML documents to markdown.
// Implements a two-stage process:
// 1. Sanitize HTML to remove dangerous elements (XSS prevention)
// 2. Convert sanitized HTML to markdown
type htmlConverter struct {
	sanitizer *sanitizer.HTMLSanitizer
	converter *md.Converter
}

// NewHTMLConverter creates a new HTML to markdown converter.
// The converter automatically sanitizes HTML before conversion.
func NewHTMLConverter() MarkdownConverter {
	return &htmlConverter{
		sanitizer: sanitizer.NewHTMLSanitizer(),
		converter: md.NewConverter("", true, nil),
	}
}

// ToMarkdown converts each document in turn, honoring context cancellation
// between documents. Returns one result per input, in input order.
func (c *htmlConverter) ToMarkdown(ctx context.Context, docs []Document) ([]Result, error) {
	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		markdown, err := c.convert(doc.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", doc.Name, err)
		}

		results = append(results, Result{
			Name:     doc.Name,
			MimeType: "text/markdown",
			Format:   "markdown",
			Data:     markdown,
		})
	}
	return results, nil
}

func (c *htmlConverter) convert(input []byte) (string, error) {
	// Stage 1: Sanitize HTML (remove dangerous tags/attributes)
	sanitized, err := c.sanitizer.Sanitize(string(input))
	if err != nil {
		return "", fmt.Errorf("failed to sanitize HTML: %w", err)
	}

	// Stage 2: Convert sanitized HTML to Markdown
	markdown, err := c.converter.ConvertString(sanitized)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return markdown, nil
}
