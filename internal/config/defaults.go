// Package config provides configuration loading and defaults for debtscan.
package config

// DefaultConfigDir is the default location for debtscan configuration.
const DefaultConfigDir = "~/.config/debtscan"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "debtscan.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultWeights is the category weight vector applied when no config file
// overrides it. Architecture weighs heaviest; structural debt is the most
// expensive to unwind later.
var DefaultWeights = Weights{
	CodeQuality:    0.25,
	Architecture:   0.30,
	Infrastructure: 0.25,
	Operations:     0.20,
}

// DefaultRiskLevels are the overall-score upper bounds per risk level.
var DefaultRiskLevels = RiskLevels{
	Low:      1.0,
	Medium:   2.0,
	High:     3.0,
	Critical: 4.0,
}

// DefaultTools bounds the scan worker pool.
var DefaultTools = Tools{
	ParallelProjects:  4,
	TimeoutPerProject: 300,
}

// DefaultFilters is the project-selection filter block handed to the
// external discovery collaborator.
var DefaultFilters = Filters{
	LastActivityDays: 365,
	MaxProjects:      50,
	ExcludeArchived:  true,
}

// DefaultTopDebt is how many projects the summary ranks as worst offenders.
const DefaultTopDebt = 10
