// Package converter defines the Markdown Converter capability and its HTML
// implementation.
package converter

import "context"

// Document is a named conversion input: the fetched body together with the
// name derived from the target host and the content type the upstream
// declared for it.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// Result is one converted record. Data carries the Markdown text; callers
// of the pipeline rely only on the first element's Data.
type Result struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Format   string `json:"format"`
	Data     string `json:"data"`
}

// MarkdownConverter converts named documents to Markdown, one result per
// input in input order. Implementations may misbehave and return a nil or
// empty slice without an error; callers must treat that as a failed
// conversion rather than index into it.
type MarkdownConverter interface {
	ToMarkdown(ctx context.Context, docs []Document) ([]Result, error)
}
