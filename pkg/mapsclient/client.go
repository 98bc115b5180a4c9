// Package mapsclient provides the main entry point for creating mapping web service clients
package mapsclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/gmaps/internal/client"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// New creates a new client from config. The config is copied; later changes to it
// have no effect on the client.
func New(config *gmaps.Config) (gmaps.Client, error) {
	if config == nil {
		return nil, gmaps.ErrConfigRequired
	}

	if strings.TrimSpace(config.APIKey) == "" {
		return nil, gmaps.ErrAPIKeyRequired
	}

	normalized := *config
	normalized.MapsBaseURL = normalizeBaseURL(config.MapsBaseURL)
	normalized.RoadsBaseURL = normalizeBaseURL(config.RoadsBaseURL)

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithAPIKey creates a new client with default settings and the given API key.
func NewWithAPIKey(apiKey string) (gmaps.Client, error) {
	return New(&gmaps.Config{APIKey: apiKey})
}

// normalizeBaseURL trims a trailing slash and defaults the scheme to https. An empty
// URL stays empty and selects the service default.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
