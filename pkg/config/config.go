package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/warden/config"
	ConfigFileName    = "warden.yml"
)

// Config holds all warden configuration settings.
type Config struct {
	// BindAddress is the address the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP server port
	Port int `yaml:"port" json:"port"`

	// DefaultSessionTimeoutMinutes is the idle timeout applied when a user
	// has no stored preference
	DefaultSessionTimeoutMinutes int `yaml:"default_session_timeout_minutes" json:"default_session_timeout_minutes"`

	// ChannelBackoffBaseMillis is the base delay for revocation channel
	// reconnects; it doubles per attempt
	ChannelBackoffBaseMillis int `yaml:"channel_backoff_base_millis" json:"channel_backoff_base_millis"`

	// ChannelMaxAttempts caps consecutive reconnect attempts
	ChannelMaxAttempts int `yaml:"channel_max_attempts" json:"channel_max_attempts"`

	// ChannelPingSeconds is the server liveness ping cadence
	ChannelPingSeconds int `yaml:"channel_ping_seconds" json:"channel_ping_seconds"`

	// CatalogPath optionally points at a YAML catalog overlay
	CatalogPath string `yaml:"catalog_path" json:"catalog_path"`

	// TrustedOrigins are origin patterns allowed to open the revocation
	// channel WebSocket
	TrustedOrigins []string `yaml:"trusted_origins" json:"trusted_origins"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source.
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values.
func newDefault() *Config {
	return &Config{
		BindAddress:                  "0.0.0.0",
		Port:                         8080,
		DefaultSessionTimeoutMinutes: 1440,
		ChannelBackoffBaseMillis:     1000,
		ChannelMaxAttempts:           5,
		ChannelPingSeconds:           30,
		TrustedOrigins:               []string{},
		sources:                      make(map[string]string),
	}
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "default_session_timeout_minutes",
		"channel_backoff_base_millis", "channel_max_attempts",
		"channel_ping_seconds", "catalog_path", "trusted_origins",
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("WARDEN_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func (c *Config) applyFileConfig(file *Config) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.DefaultSessionTimeoutMinutes != 0 {
		c.DefaultSessionTimeoutMinutes = file.DefaultSessionTimeoutMinutes
		c.sources["default_session_timeout_minutes"] = "file"
	}
	if file.ChannelBackoffBaseMillis != 0 {
		c.ChannelBackoffBaseMillis = file.ChannelBackoffBaseMillis
		c.sources["channel_backoff_base_millis"] = "file"
	}
	if file.ChannelMaxAttempts != 0 {
		c.ChannelMaxAttempts = file.ChannelMaxAttempts
		c.sources["channel_max_attempts"] = "file"
	}
	if file.ChannelPingSeconds != 0 {
		c.ChannelPingSeconds = file.ChannelPingSeconds
		c.sources["channel_ping_seconds"] = "file"
	}
	if file.CatalogPath != "" {
		c.CatalogPath = file.CatalogPath
		c.sources["catalog_path"] = "file"
	}
	if len(file.TrustedOrigins) > 0 {
		c.TrustedOrigins = file.TrustedOrigins
		c.sources["trusted_origins"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("WARDEN_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("WARDEN_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("WARDEN_DEFAULT_SESSION_TIMEOUT_MINUTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.DefaultSessionTimeoutMinutes = i
			c.sources["default_session_timeout_minutes"] = "environment"
		}
	}
	if val := os.Getenv("WARDEN_CHANNEL_BACKOFF_BASE_MILLIS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ChannelBackoffBaseMillis = i
			c.sources["channel_backoff_base_millis"] = "environment"
		}
	}
	if val := os.Getenv("WARDEN_CHANNEL_MAX_ATTEMPTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ChannelMaxAttempts = i
			c.sources["channel_max_attempts"] = "environment"
		}
	}
	if val := os.Getenv("WARDEN_CHANNEL_PING_SECONDS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ChannelPingSeconds = i
			c.sources["channel_ping_seconds"] = "environment"
		}
	}
	if val := os.Getenv("WARDEN_CATALOG_PATH"); val != "" {
		c.CatalogPath = val
		c.sources["catalog_path"] = "environment"
	}
	if val := os.Getenv("WARDEN_TRUSTED_ORIGINS"); val != "" {
		c.TrustedOrigins = splitAndTrim(val)
		c.sources["trusted_origins"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute.
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Addr returns the listen address as host:port.
func (c *Config) Addr() string {
	return c.BindAddress + ":" + strconv.Itoa(c.Port)
}

// ChannelBackoffBase returns the reconnect base delay as a duration.
func (c *Config) ChannelBackoffBase() time.Duration {
	return time.Duration(c.ChannelBackoffBaseMillis) * time.Millisecond
}

// ChannelPingInterval returns the ping cadence as a duration.
func (c *Config) ChannelPingInterval() time.Duration {
	return time.Duration(c.ChannelPingSeconds) * time.Second
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.DefaultSessionTimeoutMinutes <= 0 {
		return fmt.Errorf("invalid default_session_timeout_minutes: %d", c.DefaultSessionTimeoutMinutes)
	}
	if c.ChannelBackoffBaseMillis <= 0 {
		return fmt.Errorf("invalid channel_backoff_base_millis: %d", c.ChannelBackoffBaseMillis)
	}
	if c.ChannelMaxAttempts <= 0 {
		return fmt.Errorf("invalid channel_max_attempts: %d", c.ChannelMaxAttempts)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources.
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "default_session_timeout_minutes", Value: strconv.Itoa(c.DefaultSessionTimeoutMinutes), Source: c.Source("default_session_timeout_minutes")},
		{Name: "channel_backoff_base_millis", Value: strconv.Itoa(c.ChannelBackoffBaseMillis), Source: c.Source("channel_backoff_base_millis")},
		{Name: "channel_max_attempts", Value: strconv.Itoa(c.ChannelMaxAttempts), Source: c.Source("channel_max_attempts")},
		{Name: "channel_ping_seconds", Value: strconv.Itoa(c.ChannelPingSeconds), Source: c.Source("channel_ping_seconds")},
		{Name: "catalog_path", Value: c.CatalogPath, Source: c.Source("catalog_path")},
		{Name: "trusted_origins", Value: strings.Join(c.TrustedOrigins, ","), Source: c.Source("trusted_origins")},
	}
}

// FormatText returns a text representation of the configuration.
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-36s %-24s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-36s %-24s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-36s %-24s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration.
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
