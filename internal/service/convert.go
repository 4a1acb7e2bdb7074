// Package service implements the conversion pipeline: validate the target
// URL, fetch it, gate the content, convert it to Markdown. Each stage either
// passes a value forward or produces a terminal APIError; the first failure
// wins and nothing is retried.
package service

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"html2md/internal/config"
	"html2md/internal/converter"
	"html2md/internal/domain"
	"html2md/internal/fetch"
	"html2md/internal/gating"
	"html2md/internal/metrics"
)

// Converter is the pipeline surface the HTTP handler depends on.
type Converter interface {
	Convert(ctx context.Context, rawURL string) (string, *domain.APIError)
}

// ConvertRequest carries the raw query input through validation.
type ConvertRequest struct {
	URL string
}

// Validate checks presence and a sane length bound before parsing.
func (r ConvertRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL,
			validation.Required,
			validation.Length(1, config.MaxURLLength),
		),
	)
}

// ConversionService orchestrates the Fetcher and MarkdownConverter
// collaborators. Stateless; safe for concurrent use.
type ConversionService struct {
	fetcher   fetch.Fetcher
	converter converter.MarkdownConverter
	policy    *gating.Policy
	logger    *slog.Logger
}

// NewConversionService creates the pipeline service.
func NewConversionService(fetcher fetch.Fetcher, conv converter.MarkdownConverter, policy *gating.Policy, logger *slog.Logger) *ConversionService {
	return &ConversionService{
		fetcher:   fetcher,
		converter: conv,
		policy:    policy,
		logger:    logger,
	}
}

// Convert runs the full pipeline for one target URL and returns the
// Markdown text, or the APIError describing the first stage that failed.
func (s *ConversionService) Convert(ctx context.Context, rawURL string) (string, *domain.APIError) {
	start := time.Now()
	markdown, apiErr := s.convert(ctx, rawURL)
	metrics.ConversionDuration.Observe(time.Since(start).Seconds())
	if apiErr != nil {
		metrics.ConversionsTotal.WithLabelValues(string(apiErr.Kind)).Inc()
		s.logger.Info("conversion failed",
			"kind", apiErr.Kind,
			"status", apiErr.Status,
			"error", apiErr.Message,
		)
		return "", apiErr
	}
	metrics.ConversionsTotal.WithLabelValues("success").Inc()
	return markdown, nil
}

func (s *ConversionService) convert(ctx context.Context, rawURL string) (string, *domain.APIError) {
	req := ConvertRequest{URL: rawURL}
	if err := req.Validate(); err != nil {
		if rawURL == "" {
			return "", domain.ErrMissingParameter()
		}
		return "", domain.ErrInvalidURL()
	}

	target, err := url.Parse(rawURL)
	if err != nil || target.Host == "" || (target.Scheme != "http" && target.Scheme != "https") {
		return "", domain.ErrInvalidURL()
	}

	resp, err := s.fetcher.Fetch(ctx, target.String())
	if err != nil {
		if fetch.IsTimeout(err) {
			s.logger.Warn("fetch aborted", "url", rawURL, "error", err)
			return "", domain.ErrTimeout()
		}
		s.logger.Error("fetch failed", "url", rawURL, "error", err)
		return "", domain.ErrUnexpected()
	}

	if !resp.OK() {
		return "", domain.ErrUpstream(rawURL, resp.StatusCode, resp.StatusText())
	}

	if !s.policy.AllowsContentType(resp.ContentType()) {
		return "", domain.ErrUnsupportedContentType()
	}

	metrics.FetchedBytes.Observe(float64(len(resp.Body)))
	if s.policy.ExceedsMaxSize(len(resp.Body)) {
		return "", domain.ErrPayloadTooLarge()
	}

	doc := converter.Document{
		Name:        target.Hostname() + ".html",
		ContentType: resp.ContentType(),
		Data:        resp.Body,
	}

	results, err := s.converter.ToMarkdown(ctx, []converter.Document{doc})
	if err != nil {
		if fetch.IsTimeout(err) {
			s.logger.Warn("conversion aborted", "url", rawURL, "error", err)
			return "", domain.ErrTimeout()
		}
		s.logger.Error("converter failed", "url", rawURL, "error", err)
		return "", domain.ErrUnexpected()
	}

	// The converter may violate its nominal contract and hand back nothing.
	if len(results) == 0 {
		return "", domain.ErrConversionFailed()
	}

	return results[0].Data, nil
}
