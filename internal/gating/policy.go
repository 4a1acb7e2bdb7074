// Package gating holds the pass/fail checks applied to fetched content
// before conversion. The rules ship as an embedded YAML file so the limits
// live next to their documentation rather than scattered through the code.
package gating

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Policy is the content gate applied between fetch and conversion.
type Policy struct {
	// ContentTypes are substrings; a Content-Type header passes when it
	// contains any of them (so "text/html; charset=utf-8" matches "text/html").
	ContentTypes []string `yaml:"content_types"`
	// MaxContentBytes is the largest decoded body accepted, inclusive.
	MaxContentBytes int `yaml:"max_content_bytes"`
}

// LoadPolicy reads and validates the embedded gate policy.
func LoadPolicy() (*Policy, error) {
	data, err := configFiles.ReadFile("config/gates.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read gate policy: %w", err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gate policy: %w", err)
	}

	if len(policy.ContentTypes) == 0 {
		return nil, fmt.Errorf("gate policy defines no content types")
	}
	if policy.MaxContentBytes <= 0 {
		return nil, fmt.Errorf("gate policy max_content_bytes must be positive, got %d", policy.MaxContentBytes)
	}

	return &policy, nil
}

// AllowsContentType reports whether a Content-Type header value passes the
// gate. An absent or empty header never passes.
func (p *Policy) AllowsContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	ct := strings.ToLower(contentType)
	for _, allowed := range p.ContentTypes {
		if strings.Contains(ct, allowed) {
			return true
		}
	}
	return false
}

// ExceedsMaxSize reports whether a decoded body of n bytes is over the
// limit. A body of exactly MaxContentBytes passes.
func (p *Policy) ExceedsMaxSize(n int) bool {
	return n > p.MaxContentBytes
}
