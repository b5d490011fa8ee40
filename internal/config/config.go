package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. BOOKMARKS_RULES
const EnvPrefix = "BOOKMARKS"

// Config holds application configuration
type Config struct {
	Dir          string // directory scanned for a bookmark file when Input is empty
	Input        string // explicit input file, skips discovery
	RulesFile    string // category rules YAML; missing file means built-in rules
	OutputPrefix string // output file is OutputPrefix + input file name
	DBPath       string // optional SQLite export, empty disables it

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev console, false => zap prod JSON
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		Dir:          ".",
		RulesFile:    "categories.yaml",
		OutputPrefix: "organized_",
		LogLevel:     "info",
		PrettyLog:    true,
	}
}

// SetDefaults registers the defaults from NewConfig on v
func SetDefaults(v *viper.Viper) {
	def := NewConfig()
	v.SetDefault("dir", def.Dir)
	v.SetDefault("input", def.Input)
	v.SetDefault("rules", def.RulesFile)
	v.SetDefault("output_prefix", def.OutputPrefix)
	v.SetDefault("db", def.DBPath)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("pretty_log", def.PrettyLog)
}

// BindFlags binds command-line flags to viper keys. Flag names use dashes, keys
// use underscores so BOOKMARKS_OUTPUT_PREFIX maps onto --output-prefix.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, name := range []string{"dir", "input", "rules", "output-prefix", "db", "log-level", "pretty-log"} {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), f); err != nil {
			return fmt.Errorf("failed to bind %s flag: %w", name, err)
		}
	}
	return nil
}

// Load resolves configuration from flags, BOOKMARKS_* environment variables and defaults
func Load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	cfg := &Config{
		Dir:          v.GetString("dir"),
		Input:        v.GetString("input"),
		RulesFile:    v.GetString("rules"),
		OutputPrefix: v.GetString("output_prefix"),
		DBPath:       v.GetString("db"),
		LogLevel:     strings.ToLower(v.GetString("log_level")),
		PrettyLog:    v.GetBool("pretty_log"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late in the run
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Input == "" && c.Dir == "" {
		return fmt.Errorf("either an input file or a directory is required")
	}
	if c.OutputPrefix == "" {
		return fmt.Errorf("output prefix must not be empty, it would overwrite the input")
	}
	return nil
}
