package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zerocore/aistream/core/client"
)

const (
	defaultConfigName = "config"
	envPrefix         = "AISTREAM"
)

// NewViper returns a Viper instance with defaults and AISTREAM_* environment
// overrides configured. Callers may bind flags before passing it to Load.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds each named flag to its configuration key. Flags left at
// their default do not override file or environment values.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, flagName := range keys {
		flag := flags.Lookup(flagName)
		if flag == nil {
			return &Error{Op: "bind", Err: fmt.Errorf("unknown flag %q for key %q", flagName, key)}
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return &Error{Op: "bind", Err: fmt.Errorf("failed to bind flag %q: %w", flagName, err)}
		}
	}
	return nil
}

// Load reads the configuration. With an empty configPath the file is
// searched as config.{yaml,toml,...} in the working directory and
// $HOME/.aistream, and a missing file is not an error. An explicit
// configPath must exist.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.aistream")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, &Error{Op: "read", Err: fmt.Errorf("failed to read config file: %w", err)}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &Error{Op: "unmarshal", Err: fmt.Errorf("failed to unmarshal config: %w", err)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UsedFile returns the config file Viper read, or "" when none was found.
func UsedFile(v *viper.Viper) string {
	return v.ConfigFileUsed()
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	transport := client.DefaultTransportConfig()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "compact")

	v.SetDefault("transport.connect_timeout", transport.ConnectTimeout)
	v.SetDefault("transport.read_timeout", transport.ReadTimeout)
	v.SetDefault("transport.write_timeout", transport.WriteTimeout)
	v.SetDefault("transport.max_idle_conns", transport.MaxIdleConns)
	v.SetDefault("transport.max_idle_conns_per_host", transport.MaxIdleConnsPerHost)
	v.SetDefault("transport.idle_conn_timeout", transport.IdleConnTimeout)

	v.SetDefault("profiles.file", "profiles.yaml")
	v.SetDefault("profiles.selected", "")
	v.SetDefault("profiles.watch", false)

	v.SetDefault("chat.system_prompt", "")
	v.SetDefault("chat.history_limit", 0)
	v.SetDefault("chat.stream", true)
}
