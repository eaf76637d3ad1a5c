// Package config loads the bridge settings from flags, an optional config
// file and SCRATCHPAD_* environment variables, in that order of precedence.
package config

import (
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Source names accepted by the "source" key.
const (
	SourceSDL    = "sdl"
	SourceJoydev = "joydev"
)

// DefaultSource is the "source" default. Builds that link the SDL source
// switch it to SourceSDL.
var DefaultSource = SourceJoydev

// Config holds the resolved settings.
type Config struct {
	Listen     string        `mapstructure:"listen"`
	Source     string        `mapstructure:"source"`
	Devices    int           `mapstructure:"devices"`
	Device     string        `mapstructure:"device"`
	RetryDelay time.Duration `mapstructure:"retry-delay"`
	LogLevel   string        `mapstructure:"log-level"`
	Tray       bool          `mapstructure:"tray"`
	WebSocket  bool          `mapstructure:"websocket"`
}

// Flags returns the command line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("scratchpad", pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (default: ./scratchpad.{yaml,toml,json} if present)")
	fs.StringP("listen", "l", ":8080", "HTTP listen address")
	fs.String("source", DefaultSource, "device source: sdl or joydev")
	fs.IntP("devices", "n", 1, "number of gamepad slots to serve")
	fs.String("device", "", "joydev device path of the first slot (default /dev/input/js<slot>)")
	fs.Duration("retry-delay", 2*time.Second, "delay between connection attempts")
	fs.String("log-level", "info", "log level: trace, debug, info, warn, error")
	fs.Bool("tray", runtime.GOOS == "windows", "show a system tray icon")
	fs.Bool("websocket", true, "serve state pushes on /ws")
	return fs
}

// Load parses args and resolves the configuration.
func Load(args []string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("SCRATCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", file)
		}
	} else {
		v.SetConfigName("scratchpad")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings for values the bridge cannot run with.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceSDL, SourceJoydev:
	default:
		return errors.Errorf("unknown source %q", c.Source)
	}
	if c.Devices < 1 {
		return errors.Errorf("devices must be at least 1, got %d", c.Devices)
	}
	if c.RetryDelay <= 0 {
		return errors.Errorf("retry-delay must be positive, got %s", c.RetryDelay)
	}
	return nil
}

// DevicePath returns the joydev path of slot.
func (c *Config) DevicePath(slot int, fallback func(int) string) string {
	if slot == 0 && c.Device != "" {
		return c.Device
	}
	return fallback(slot)
}
