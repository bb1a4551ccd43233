// Package config loads scan options and pattern rule overrides from YAML,
// following the teacher's XDG-config-dir-plus-env-override shape.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/mdemirhan/dux/pkg/diskscan/rules"
	"github.com/mdemirhan/dux/pkg/diskscan/types"
)

// Default scan options, used when no config file and no overrides are
// present.
const (
	DefaultMaxInsightsPerCategory = 1000
	DefaultScanWorkers            = 0 // 0 means "let tuner.Calculate decide"
)

// PatternRuleConfig is the YAML shape of one pattern rule override.
type PatternRuleConfig struct {
	Name          string `mapstructure:"name"`
	Pattern       string `mapstructure:"pattern"`
	Category      string `mapstructure:"category"`
	ApplyTo       string `mapstructure:"apply_to"`
	StopRecursion bool   `mapstructure:"stop_recursion"`
}

// LoggingConfig configures the engine's structured logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// Config is the top-level scan configuration.
type Config struct {
	ScanWorkers            int      `mapstructure:"scan_workers"`
	MaxDepth               int      `mapstructure:"max_depth"` // 0 means unlimited
	MaxInsightsPerCategory int      `mapstructure:"max_insights_per_category"`
	AdditionalTempPaths    []string `mapstructure:"additional_temp_paths"`
	AdditionalCachePaths   []string `mapstructure:"additional_cache_paths"`

	TempPatterns          []PatternRuleConfig `mapstructure:"temp_patterns"`
	CachePatterns         []PatternRuleConfig `mapstructure:"cache_patterns"`
	BuildArtifactPatterns []PatternRuleConfig `mapstructure:"build_artifact_patterns"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
//
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/diskscan/config.yaml
//   - $HOME/.config/diskscan/config.yaml
//
// Environment variables are prefixed with DISKSCAN_ (e.g.
// DISKSCAN_MAX_DEPTH).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "diskscan"))
	}
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "diskscan"))

	v.SetEnvPrefix("DISKSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("scan_workers", DefaultScanWorkers)
	v.SetDefault("max_depth", 0)
	v.SetDefault("max_insights_per_category", DefaultMaxInsightsPerCategory)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.components", map[string]string{
		"walker":   "info",
		"finalize": "info",
		"rules":    "warn",
		"insights": "info",
	})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// RuleSet builds the effective PatternRule list: built-in defaults plus
// any overrides from the config file, for Compile to turn into a
// CompiledRuleSet.
func (c *Config) RuleSet() ([]types.PatternRule, error) {
	ruleList := rules.Defaults()

	groups := []struct {
		category types.Category
		entries  []PatternRuleConfig
	}{
		{types.Temp, c.TempPatterns},
		{types.Cache, c.CachePatterns},
		{types.BuildArtifact, c.BuildArtifactPatterns},
	}

	for _, g := range groups {
		for _, entry := range g.entries {
			rule := types.PatternRule{
				Name:          entry.Name,
				Pattern:       entry.Pattern,
				Category:      g.category,
				ApplyTo:       types.ParseApplyTo(entry.ApplyTo),
				StopRecursion: entry.StopRecursion,
			}
			if entry.Category != "" {
				cat, err := types.ParseCategory(entry.Category)
				if err != nil {
					return nil, fmt.Errorf("config: rule %q: %w", entry.Name, err)
				}
				rule.Category = cat
			}
			ruleList = append(ruleList, rule)
		}
	}

	return ruleList, nil
}

// AdditionalPaths builds the rules.AdditionalPaths map from the config's
// additional temp/cache path lists.
func (c *Config) AdditionalPaths() rules.AdditionalPaths {
	additional := rules.AdditionalPaths{}
	if len(c.AdditionalTempPaths) > 0 {
		additional[types.Temp] = c.AdditionalTempPaths
	}
	if len(c.AdditionalCachePaths) > 0 {
		additional[types.Cache] = c.AdditionalCachePaths
	}
	return additional
}

// ConfigDir returns the XDG config directory for diskscan.
func ConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "diskscan")
	}
	return filepath.Join(xdg.ConfigHome, "diskscan")
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}
