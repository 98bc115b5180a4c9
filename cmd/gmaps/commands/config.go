package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/gmaps/internal/constants"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// Configuration keys, shared by the config file, GMAPS_* variables and flags.
const (
	keyAPIKey       = "api_key"
	keyOutput       = "output"
	keyNoColor      = "no_color"
	keyMapsBaseURL  = "maps_base_url"
	keyRoadsBaseURL = "roads_base_url"
	keyTimeout      = "timeout"
	keyRetryMax     = "retry_max"
	keyRateLimits   = "rate_limits"
	keyEventsURL    = "events_url"
	keyEventsSubj   = "events_subject"

	configDirName  = ".gmaps"
	configFileName = "config.yml"
	maskedValue    = "***"
	rateLimitKey   = "rate_limit."
)

// Config represents the CLI configuration.
type Config struct {
	APIKey       string            `json:"api_key,omitempty"        yaml:"api_key,omitempty"`
	Output       string            `json:"output"                   yaml:"output"`
	NoColor      bool              `json:"no_color"                 yaml:"no_color"`
	MapsBaseURL  string            `json:"maps_base_url,omitempty"  yaml:"maps_base_url,omitempty"`
	RoadsBaseURL string            `json:"roads_base_url,omitempty" yaml:"roads_base_url,omitempty"`
	Timeout      string            `json:"timeout,omitempty"        yaml:"timeout,omitempty"`
	RetryMax     int               `json:"retry_max,omitempty"      yaml:"retry_max,omitempty"`
	RateLimits   map[string]string `json:"rate_limits,omitempty"    yaml:"rate_limits,omitempty"`
	EventsURL    string            `json:"events_url,omitempty"     yaml:"events_url,omitempty"`
	EventsSubj   string            `json:"events_subject,omitempty" yaml:"events_subject,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the gmaps CLI configuration stored in ~/.gmaps/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration. The API key is masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.APIKey != "" {
				config.APIKey = maskedValue
			}

			switch viper.GetString(keyOutput) {
			case constants.FormatJSON:
				encoder := newJSONEncoder(os.Stdout)

				return encoder.Encode(config)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(config)
			default:
				return displayConfigTable(config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Keys: api_key, output, no_color, maps_base_url,
roads_base_url, timeout, retry_max, events_url, events_subject and
rate_limit.<category> (e.g. rate_limit.roads 10/1s).`,
		Args: cobra.ExactArgs(2), //nolint:mnd // KEY and VALUE
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			value := args[1]
			if args[0] == keyAPIKey {
				value = maskedValue
			}

			return outputConfigUpdateResult("Set", args[0], value)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value, restoring its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := unsetConfigValue(config, args[0])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			return outputConfigUpdateResult("Unset", args[0], "")
		},
	}
}

// loadConfig reads the effective configuration from viper.
func loadConfig() *Config {
	return &Config{
		APIKey:       viper.GetString(keyAPIKey),
		Output:       viper.GetString(keyOutput),
		NoColor:      viper.GetBool(keyNoColor),
		MapsBaseURL:  viper.GetString(keyMapsBaseURL),
		RoadsBaseURL: viper.GetString(keyRoadsBaseURL),
		Timeout:      viper.GetString(keyTimeout),
		RetryMax:     viper.GetInt(keyRetryMax),
		RateLimits:   viper.GetStringMapString(keyRateLimits),
		EventsURL:    viper.GetString(keyEventsURL),
		EventsSubj:   viper.GetString(keyEventsSubj),
	}
}

// setConfigValue validates and applies one key.
func setConfigValue(config *Config, key, value string) error {
	if category, ok := strings.CutPrefix(key, rateLimitKey); ok {
		return setRateLimit(config, category, value)
	}

	switch key {
	case keyAPIKey:
		config.APIKey = value
	case keyOutput:
		switch value {
		case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, value)
		}

		config.Output = value
	case keyNoColor:
		config.NoColor = value == "true" || value == "1"
	case keyMapsBaseURL:
		config.MapsBaseURL = value
	case keyRoadsBaseURL:
		config.RoadsBaseURL = value
	case keyTimeout:
		_, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", value, err)
		}

		config.Timeout = value
	case keyRetryMax:
		retryMax, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retry_max %q: %w", value, err)
		}

		config.RetryMax = retryMax
	case keyEventsURL:
		config.EventsURL = value
	case keyEventsSubj:
		config.EventsSubj = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func setRateLimit(config *Config, name, value string) error {
	category, err := gmaps.ParseCategory(name)
	if err != nil {
		return err
	}

	_, err = parseRateLimit(value)
	if err != nil {
		return err
	}

	if config.RateLimits == nil {
		config.RateLimits = make(map[string]string)
	}

	config.RateLimits[string(category)] = value

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	if name, ok := strings.CutPrefix(key, rateLimitKey); ok {
		category, err := gmaps.ParseCategory(name)
		if err != nil {
			return err
		}

		delete(config.RateLimits, string(category))

		return nil
	}

	switch key {
	case keyAPIKey:
		config.APIKey = ""
	case keyOutput:
		config.Output = constants.FormatTable
	case keyNoColor:
		config.NoColor = false
	case keyMapsBaseURL:
		config.MapsBaseURL = ""
	case keyRoadsBaseURL:
		config.RoadsBaseURL = ""
	case keyTimeout:
		config.Timeout = ""
	case keyRetryMax:
		config.RetryMax = 0
	case keyEventsURL:
		config.EventsURL = ""
	case keyEventsSubj:
		config.EventsSubj = ""
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// configFilePath returns the config file in use, or ~/.gmaps/config.yml.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, configDirName)

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, configFileName), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	return writeConfigFile(configFile, config)
}

func writeConfigFile(configFile string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"API Key", formatConfigValue(config.APIKey)})
	_ = table.Append([]string{"Output", config.Output})
	_ = table.Append([]string{"No Color", strconv.FormatBool(config.NoColor)})
	_ = table.Append([]string{"Maps Base URL", formatConfigValue(config.MapsBaseURL)})
	_ = table.Append([]string{"Roads Base URL", formatConfigValue(config.RoadsBaseURL)})
	_ = table.Append([]string{"Timeout", formatConfigValue(config.Timeout)})
	_ = table.Append([]string{"Retry Max", strconv.Itoa(config.RetryMax)})
	_ = table.Append([]string{"Events URL", formatConfigValue(config.EventsURL)})

	categories := make([]string, 0, len(config.RateLimits))
	for category := range config.RateLimits {
		categories = append(categories, category)
	}

	sort.Strings(categories)

	for _, category := range categories {
		_ = table.Append([]string{"Rate Limit (" + category + ")", config.RateLimits[category]})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return "(default)"
	}

	return value
}

func outputConfigUpdateResult(action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	switch viper.GetString(keyOutput) {
	case constants.FormatJSON:
		encoder := newJSONEncoder(os.Stdout)

		err := encoder.Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode config result as JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		err := yaml.NewEncoder(os.Stdout).Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode config result as YAML: %w", err)
		}

		return nil
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append([]string{"Action", action})
		_ = table.Append([]string{"Key", key})

		if value != "" {
			_ = table.Append([]string{"Value", value})
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}
