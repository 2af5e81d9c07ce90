package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level debtscan configuration. A loaded Config is a
// frozen snapshot: every batch binds to one value and never observes later
// edits to the config file.
type Config struct {
	Weights    Weights    `mapstructure:"weights"`
	RiskLevels RiskLevels `mapstructure:"risk_levels"`
	Tools      Tools      `mapstructure:"tools"`
	Filters    Filters    `mapstructure:"filters"`
	TopDebt    int        `mapstructure:"top_debt"`
}

// Weights is the category weight vector. Validation (non-negative, summing
// to 1.0) happens in the scoring package before a batch starts.
type Weights struct {
	CodeQuality    float64 `mapstructure:"code_quality"`
	Architecture   float64 `mapstructure:"architecture"`
	Infrastructure float64 `mapstructure:"infrastructure"`
	Operations     float64 `mapstructure:"operations"`
}

// RiskLevels are ordered upper bounds on the overall score.
type RiskLevels struct {
	Low      float64 `mapstructure:"low"`
	Medium   float64 `mapstructure:"medium"`
	High     float64 `mapstructure:"high"`
	Critical float64 `mapstructure:"critical"`
}

// Tools bounds the orchestrator: worker-pool size and the per-project
// collection timeout in seconds.
type Tools struct {
	ParallelProjects  int `mapstructure:"parallel_projects"`
	TimeoutPerProject int `mapstructure:"timeout_per_project"`
}

// Filters is the project-selection block. The core does not interpret it;
// it is consumed by the external discovery collaborator and passed through
// untouched into report metadata.
type Filters struct {
	LastActivityDays int      `mapstructure:"last_activity_days" json:"last_activity_days"`
	MaxProjects      int      `mapstructure:"max_projects" json:"max_projects"`
	NamePatterns     []string `mapstructure:"name_patterns" json:"name_patterns,omitempty"`
	ExcludeArchived  bool     `mapstructure:"exclude_archived" json:"exclude_archived"`
	MinCommits       int      `mapstructure:"min_commits" json:"min_commits"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. A missing config file is
// not an error; the defaults stand.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("weights.code_quality", DefaultWeights.CodeQuality)
	v.SetDefault("weights.architecture", DefaultWeights.Architecture)
	v.SetDefault("weights.infrastructure", DefaultWeights.Infrastructure)
	v.SetDefault("weights.operations", DefaultWeights.Operations)
	v.SetDefault("risk_levels.low", DefaultRiskLevels.Low)
	v.SetDefault("risk_levels.medium", DefaultRiskLevels.Medium)
	v.SetDefault("risk_levels.high", DefaultRiskLevels.High)
	v.SetDefault("risk_levels.critical", DefaultRiskLevels.Critical)
	v.SetDefault("tools.parallel_projects", DefaultTools.ParallelProjects)
	v.SetDefault("tools.timeout_per_project", DefaultTools.TimeoutPerProject)
	v.SetDefault("filters.last_activity_days", DefaultFilters.LastActivityDays)
	v.SetDefault("filters.max_projects", DefaultFilters.MaxProjects)
	v.SetDefault("filters.exclude_archived", DefaultFilters.ExcludeArchived)
	v.SetDefault("filters.min_commits", DefaultFilters.MinCommits)
	v.SetDefault("top_debt", DefaultTopDebt)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
