package converter

import (
	"context"
	"strings"
	"testing"
)

func TestHTMLConverterToMarkdown(t *testing.T) {
	conv := NewHTMLConverter()

	docs := []Document{{
		Name:        "example.com.html",
		ContentType: "text/html",
		Data:        []byte("<h1>Test</h1><p>Content</p>"),
	}}

	results, err := conv.ToMarkdown(context.Background(), docs)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	r := results[0]
	if r.Name != "example.com.html" {
		t.Errorf("Name = %q", r.Name)
	}
	if r.MimeType != "text/markdown" {
		t.Errorf("MimeType = %q", r.MimeType)
	}
	if r.Format != "markdown" {
		t.Errorf("Format = %q", r.Format)
	}
	if !strings.Contains(r.Data, "# Test") {
		t.Errorf("Data = %q, want a level-1 heading", r.Data)
	}
	if !strings.Contains(r.Data, "Content") {
		t.Errorf("Data = %q, want paragraph text", r.Data)
	}
}

func TestHTMLConverterStripsScripts(t *testing.T) {
	conv := NewHTMLConverter()

	docs := []Document{{
		Name: "evil.html",
		Data: []byte(`<p>safe</p><script>alert("xss")</script><a href="javascript:alert(1)">click</a>`),
	}}

	results, err := conv.ToMarkdown(context.Background(), docs)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	if strings.Contains(results[0].Data, "alert") {
		t.Errorf("Data = %q, script content survived sanitization", results[0].Data)
	}
	if !strings.Contains(results[0].Data, "safe") {
		t.Errorf("Data = %q, safe content was lost", results[0].Data)
	}
}

func TestHTMLConverterHonorsCancellation(t *testing.T) {
	conv := NewHTMLConverter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.ToMarkdown(ctx, []Document{{Name: "a.html", Data: []byte("<p>hi</p>")}})
	if err == nil {
		t.Fatal("ToMarkdown() succeeded with canceled context")
	}
}

func TestHTMLConverterOrderAndCount(t *testing.T) {
	conv := NewHTMLConverter()

	docs := []Document{
		{Name: "one.html", Data: []byte("<p>first</p>")},
		{Name: "two.html", Data: []byte("<p>second</p>")},
	}

	results, err := conv.ToMarkdown(context.Background(), docs)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "one.html" || results[1].Name != "two.html" {
		t.Errorf("results out of input order: %q, %q", results[0].Name, results[1].Name)
	}
	if !strings.Contains(results[0].Data, "first") {
		t.Errorf("results[0].Data = %q", results[0].Data)
	}
}
