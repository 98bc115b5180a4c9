package commands

import (
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/gmaps/internal/constants"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
	"github.com/fivetwenty-io/gmaps/pkg/mapsclient"
)

// Global flag keys bound in main.
const (
	keyVerbose = "verbose"
	keyDebug   = "debug"
)

// newClientConfig builds the library configuration from viper.
func newClientConfig() (*gmaps.Config, error) {
	config := loadConfig()

	apiKey, err := resolveAPIKey(config.APIKey)
	if err != nil {
		return nil, err
	}

	limits, err := parseRateLimits(config.RateLimits)
	if err != nil {
		return nil, err
	}

	clientConfig := &gmaps.Config{
		APIKey:       apiKey,
		MapsBaseURL:  config.MapsBaseURL,
		RoadsBaseURL: config.RoadsBaseURL,
		RetryMax:     config.RetryMax,
		RateLimits:   limits,
		Debug:        viper.GetBool(keyDebug),
		Logger:       newLogger(os.Stderr, viper.GetBool(keyVerbose) || viper.GetBool(keyDebug), config.NoColor),
	}

	if config.Timeout != "" {
		clientConfig.HTTPTimeout, err = time.ParseDuration(config.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", config.Timeout, err)
		}
	}

	if config.EventsURL != "" {
		clientConfig.Events = &gmaps.EventsConfig{URL: config.EventsURL, Subject: config.EventsSubj}
	}

	return clientConfig, nil
}

// createClient builds a client from the effective configuration.
func createClient() (gmaps.Client, error) {
	config, err := newClientConfig()
	if err != nil {
		return nil, err
	}

	return mapsclient.New(config)
}

// stdinIsTerminal reports whether the API key can be prompted for.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

// resolveAPIKey returns the configured key, prompting for one when stdin is a
// terminal.
func resolveAPIKey(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	if !stdinIsTerminal() {
		return "", constants.ErrNoAPIKey
	}

	_, _ = fmt.Fprint(os.Stderr, "API key: ")

	key, err := term.ReadPassword(int(syscall.Stdin))

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	apiKey := strings.TrimSpace(string(key))
	if apiKey == "" {
		return "", constants.ErrNoAPIKey
	}

	return apiKey, nil
}
