package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"html2md/internal/converter"
	"html2md/internal/fetch"
	"html2md/internal/gating"
	"html2md/internal/httputil"
	"html2md/internal/service"
)

type stubFetcher struct {
	resp  *fetch.Response
	err   error
	calls int
}

func (s *stubFetcher) Fetch(ctx context.Context, rawURL string) (*fetch.Response, error) {
	s.calls++
	return s.resp, s.err
}

type stubConverter struct {
	results []converter.Result
	err     error
}

func (s *stubConverter) ToMarkdown(ctx context.Context, docs []converter.Document) ([]converter.Result, error) {
	return s.results, s.err
}

func newTestHandler(t *testing.T, fetcher fetch.Fetcher, conv converter.MarkdownConverter) *HTMLHandler {
	t.Helper()
	policy, err := gating.LoadPolicy()
	if err != nil {
		t.Fatalf("LoadPolicy() error = %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewConversionService(fetcher, conv, policy, logger)
	return NewHTMLHandler(svc, logger)
}

func doConvert(t *testing.T, h *HTMLHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h.Convert(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) httputil.ErrorBody {
	t.Helper()
	var body httputil.ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v (body %q)", err, rr.Body.String())
	}
	return body
}

func TestConvertEndToEndSuccess(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", "text/html")
	fetcher := &stubFetcher{resp: &fetch.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     header,
		Body:       []byte("<h1>Test</h1><p>Content</p>"),
	}}
	conv := &stubConverter{results: []converter.Result{{Data: "# Test\n\nContent"}}}
	h := newTestHandler(t, fetcher, conv)

	rr := doConvert(t, h, "/html?url=https://example.com")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rr.Code, rr.Body.String())
	}
	if got := rr.Body.String(); got != "# Test\n\nContent" {
		t.Errorf("body = %q, want %q", got, "# Test\n\nContent")
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/plain; charset=UTF-8" {
		t.Errorf("Content-Type = %q, want %q", ct, "text/plain; charset=UTF-8")
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "public, max-age=3600, s-maxage=86400" {
		t.Errorf("Cache-Control = %q, want %q", cc, "public, max-age=3600, s-maxage=86400")
	}
}

func TestConvertEndToEndUpstream404(t *testing.T) {
	header := http.Header{}
	header.Set("Content-Type", "text/html")
	fetcher := &stubFetcher{resp: &fetch.Response{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Header:     header,
		Body:       []byte("missing"),
	}}
	h := newTestHandler(t, fetcher, &stubConverter{})

	rr := doConvert(t, h, "/html?url=https://example.com/notfound")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Status != http.StatusNotFound {
		t.Errorf("body status = %d, want 404", body.Status)
	}
	if !strings.Contains(body.Error, "Failed to fetch") || !strings.Contains(body.Error, "Not Found") {
		t.Errorf("error = %q, want it to mention the fetch failure and status text", body.Error)
	}
}

func TestConvertEndToEndInvalidScheme(t *testing.T) {
	fetcher := &stubFetcher{}
	h := newTestHandler(t, fetcher, &stubConverter{})

	rr := doConvert(t, h, "/html?url=ftp://example.com")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Error != "Invalid URL format. Must be a valid HTTP or HTTPS URL" {
		t.Errorf("error = %q", body.Error)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, want 0", fetcher.calls)
	}
}

func TestConvertEndToEndMissingParameter(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{}, &stubConverter{})

	rr := doConvert(t, h, "/html")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Error != "URL parameter is required" {
		t.Errorf("error = %q, want %q", body.Error, "URL parameter is required")
	}
	if body.Status != http.StatusBadRequest {
		t.Errorf("body status = %d, want 400", body.Status)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(t, &stubFetcher{}, &stubConverter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.HealthCheck(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}
