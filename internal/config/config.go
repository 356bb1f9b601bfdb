// Package config manages ydiff configuration from config files, environment
// variables, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName = "ydiff"

	// DefaultContext is the number of unchanged lines kept around a change.
	DefaultContext = 3
	// DefaultTabSize is the number of spaces substituted per tab.
	DefaultTabSize = 8
	// FallbackWidth is used when the terminal width cannot be detected.
	FallbackWidth = 80
)

// Options is the configuration surface consumed by the renderer and the CLI
// layer. A Width of 0 means "autodetect from the terminal".
type Options struct {
	Context     int    `mapstructure:"context"`
	Width       int    `mapstructure:"width"`
	TabSize     int    `mapstructure:"tabSize"`
	Signs       bool   `mapstructure:"signs"`
	Background  bool   `mapstructure:"background"`
	LineNumbers bool   `mapstructure:"lineNumbers"`
	Color       string `mapstructure:"color"`
	Debug       bool   `mapstructure:"debug"`
}

// Default returns the built-in option values.
func Default() Options {
	return Options{
		Context:    DefaultContext,
		TabSize:    DefaultTabSize,
		Signs:      true,
		Background: true,
		Color:      "auto",
	}
}

// Load builds Options from, in increasing precedence: built-in defaults, a
// .ydiff.json config file, YDIFF_* environment variables, and any flags the
// caller binds. flags may be nil. An absent config file is not an error.
func Load(flags *pflag.FlagSet) (Options, error) {
	v := viper.New()
	v.SetConfigName("." + appName)
	v.SetConfigType("json")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
	v.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.AutomaticEnv()

	setDefaults(v)
	bindFlags(v, flags)

	if err := readConfig(v.ReadInConfig()); err != nil {
		return Options{}, err
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return opts, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("context", def.Context)
	v.SetDefault("width", def.Width)
	v.SetDefault("tabSize", def.TabSize)
	v.SetDefault("signs", def.Signs)
	v.SetDefault("background", def.Background)
	v.SetDefault("lineNumbers", def.LineNumbers)
	v.SetDefault("color", def.Color)
	v.SetDefault("debug", def.Debug)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	if flags == nil {
		return
	}
	v.BindPFlag("context", flags.Lookup("unified"))
	v.BindPFlag("width", flags.Lookup("width"))
	v.BindPFlag("tabSize", flags.Lookup("expand-tabs"))
	v.BindPFlag("signs", flags.Lookup("signs"))
	v.BindPFlag("background", flags.Lookup("background"))
	v.BindPFlag("lineNumbers", flags.Lookup("line-numbers"))
	v.BindPFlag("color", flags.Lookup("color"))
	v.BindPFlag("debug", flags.Lookup("debug"))
}

// readConfig handles the result of reading a configuration file.
func readConfig(err error) error {
	if err == nil {
		return nil
	}

	// It's okay if the config file doesn't exist
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}

	return fmt.Errorf("failed to read config: %w", err)
}

// Validate checks option values the core depends on. Width is validated
// only when set; 0 is resolved by the CLI layer before rendering.
func (o Options) Validate() error {
	if o.Context < 0 {
		return fmt.Errorf("context must not be negative, got %d", o.Context)
	}
	if o.TabSize < 0 {
		return fmt.Errorf("tab size must not be negative, got %d", o.TabSize)
	}
	if o.Width != 0 && o.Width/2-1 < 1 {
		return fmt.Errorf("width %d leaves no room for half columns", o.Width)
	}
	switch o.Color {
	case "always", "never", "auto":
	default:
		return fmt.Errorf("invalid color mode %q (want always, never, or auto)", o.Color)
	}
	return nil
}
