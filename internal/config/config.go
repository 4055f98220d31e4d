// Package config loads application configuration with Viper. Values come,
// highest priority first, from bound command-line flags, AISTREAM_* environment
// variables, an optional config file (yaml or toml) and built-in defaults.
package config

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/zerocore/aistream/core/client"
)

// Config holds all application configuration values.
type Config struct {
	// Log configures the slogobs observer.
	Log LogConfig `json:"log" mapstructure:"log"`

	// Transport holds the shared HTTP transport timeouts and pool bounds.
	Transport client.TransportConfig `json:"transport" mapstructure:"transport"`

	// Profiles configures where provider profiles are read from.
	Profiles ProfilesConfig `json:"profiles" mapstructure:"profiles"`

	// Chat configures conversations driven by the CLI.
	Chat ChatConfig `json:"chat" mapstructure:"chat"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the minimum level (trace, debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the output format (compact, pretty, json).
	Format string `json:"format" mapstructure:"format"`
}

// ProfilesConfig locates provider profiles.
type ProfilesConfig struct {
	// File is the profiles file path (.yaml, .yml or .toml).
	File string `json:"file" mapstructure:"file"`

	// Selected names the profile to use; empty means the default profile.
	Selected string `json:"selected" mapstructure:"selected"`

	// Watch reloads the profiles file when it changes.
	Watch bool `json:"watch" mapstructure:"watch"`
}

// ChatConfig holds conversation settings.
type ChatConfig struct {
	// SystemPrompt is sent separately from the conversation on every ask.
	SystemPrompt string `json:"system_prompt" mapstructure:"system_prompt"`

	// HistoryLimit bounds the messages sent per ask; zero sends all.
	HistoryLimit int `json:"history_limit" mapstructure:"history_limit"`

	// Stream selects streamed (true) or non-streamed asks.
	Stream bool `json:"stream" mapstructure:"stream"`
}

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "warning", "error"}
	validFormats = []string{"compact", "pretty", "json"}
)

// Validate checks every field and collects all failures.
func (c *Config) Validate() error {
	var errs []string

	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, (&InvalidValueError{Key: "log.level", Value: c.Log.Level, AllowedValues: validLevels}).Error())
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, (&InvalidValueError{Key: "log.format", Value: c.Log.Format, AllowedValues: validFormats}).Error())
	}
	if c.Transport.ConnectTimeout <= 0 {
		errs = append(errs, "transport.connect_timeout must be positive")
	}
	if c.Transport.ReadTimeout <= 0 {
		errs = append(errs, "transport.read_timeout must be positive")
	}
	if c.Transport.WriteTimeout <= 0 {
		errs = append(errs, "transport.write_timeout must be positive")
	}
	if c.Transport.MaxIdleConnsPerHost < 0 || c.Transport.MaxIdleConns < 0 {
		errs = append(errs, "transport pool sizes must not be negative")
	}
	if c.Chat.HistoryLimit < 0 {
		errs = append(errs, "chat.history_limit must not be negative")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// LogAttrs summarises the configuration for a startup log line. Secrets never
// live here, so every field is safe to print.
func (c *Config) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("log.level", c.Log.Level),
		slog.String("log.format", c.Log.Format),
		slog.Duration("transport.connect_timeout", c.Transport.ConnectTimeout),
		slog.Duration("transport.read_timeout", c.Transport.ReadTimeout),
		slog.Duration("transport.write_timeout", c.Transport.WriteTimeout),
		slog.String("profiles.file", c.Profiles.File),
		slog.Int("chat.history_limit", c.Chat.HistoryLimit),
	}
}
