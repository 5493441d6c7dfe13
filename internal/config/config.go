// Package config loads demo settings from defaults, an optional config
// file, ATMENTION_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iw2rmb/atmention/internal/logging"
	"github.com/iw2rmb/atmention/mention"
)

const (
	KeyDelay       = "mention.delay"
	KeyStalePolicy = "mention.stale_policy"
	KeyLogLevel    = "log.level"
	KeyLogFile     = "log.file"
	KeyLogMaxSize  = "log.max_size_mb"
	KeyShowStatus  = "editor.show_status"

	appName   = "atmention"
	envPrefix = "ATMENTION"
)

type Config struct {
	Mention MentionConfig `mapstructure:"mention"`
	Log     LogConfig     `mapstructure:"log"`
	Editor  EditorConfig  `mapstructure:"editor"`
}

type MentionConfig struct {
	Delay       time.Duration `mapstructure:"delay"`
	StalePolicy string        `mapstructure:"stale_policy"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
}

type EditorConfig struct {
	ShowStatus bool `mapstructure:"show_status"`
}

// Loader wraps a private viper instance.
type Loader struct {
	v *viper.Viper
}

func New() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	applyDefaults(v)
	return &Loader{v: v}
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault(KeyDelay, mention.DefaultDelay)
	v.SetDefault(KeyStalePolicy, mention.StaleKeepLastFinished.String())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSize, logging.DefaultMaxSizeMB)
	v.SetDefault(KeyShowStatus, false)
}

// BindFlags lets --delay and --log-file override the file and environment.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	bindings := map[string]string{
		KeyDelay:   "delay",
		KeyLogFile: "log-file",
	}
	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads path, or atmention.{yaml,toml,json} from the usual locations
// when path is empty. A missing default file is not an error.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName(appName)
		l.v.AddConfigPath("$XDG_CONFIG_HOME/" + appName)
		l.v.AddConfigPath("$HOME/.config/" + appName)
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return l.decode()
}

// File is the config file in use, empty when running on defaults.
func (l *Loader) File() string { return l.v.ConfigFileUsed() }

// Watch calls fn with the reloaded config whenever the config file
// changes. fn runs on the watcher goroutine.
func (l *Loader) Watch(fn func(*Config, error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(l.decode())
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Mention.Delay < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyDelay)
	}
	if _, err := mention.ParseStalePolicy(c.Mention.StalePolicy); err != nil {
		return fmt.Errorf("config: %s: %w", KeyStalePolicy, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %s: %w", KeyLogLevel, err)
	}
	if c.Log.MaxSizeMB < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyLogMaxSize)
	}
	return nil
}

// MentionOptions converts the mention section. Suggestions come from the
// demo provider.
func (c *Config) MentionOptions() mention.Options {
	policy, _ := mention.ParseStalePolicy(c.Mention.StalePolicy)
	delay := c.Mention.Delay
	if delay == 0 {
		// A configured zero means no wait; mention.Options reads zero as
		// the default delay.
		delay = -1
	}
	return mention.Options{
		Delay:       delay,
		StalePolicy: policy,
	}
}

func (c *Config) LogLevel() slog.Level {
	lvl, _ := logging.ParseLevel(c.Log.Level)
	return lvl
}

func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level:     c.LogLevel(),
		File:      c.Log.File,
		MaxSizeMB: c.Log.MaxSizeMB,
	}
}
