package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/idilsaglam/todo/internal/store"
)

// Config holds application configuration.
type Config struct {
	IDs    IDsConfig
	UI     UIConfig
	Log    LogConfig
	Output OutputConfig
}

// IDsConfig selects the identifier scheme.
type IDsConfig struct {
	Scheme string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string
	Color string // auto | always | never
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// OutputConfig sets the default snapshot format for non-interactive commands.
type OutputConfig struct {
	Format string // text | json | yaml
}

// Load reads and validates configuration. See Read.
func Load(path string) (Config, error) {
	c, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Read reads configuration from file and env without validating it, so
// callers can apply overrides first. Env var overrides use prefix TADA_.
// An explicit path wins over TADA_CONFIG, which wins over ~/.config/tada/config.yaml.
// A missing default file is not an error; a missing explicit file is.
func Read(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("ids.scheme", string(store.SchemeCounter))
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.color", "auto")
	v.SetDefault("log.level", "info")
	v.SetDefault("output.format", "text")

	if path == "" {
		path = os.Getenv("TADA_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tada"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("TADA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate rejects values the rest of the program cannot interpret.
func (c Config) Validate() error {
	if _, err := store.ParseScheme(c.IDs.Scheme); err != nil {
		return fmt.Errorf("ids.scheme: %w", err)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme: want classic, neon or mono, got %q", c.UI.Theme)
	}
	switch strings.ToLower(c.UI.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: want auto, always or never, got %q", c.UI.Color)
	}
	switch strings.ToLower(c.Output.Format) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format: want text, json or yaml, got %q", c.Output.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}
