// Package model defines the data structures for repofill's configuration,
// execution mode, and run identifiers.
package model

import "time"

type Config struct {
	GitHub  GitHubConfig  `yaml:"github"`
	Naming  NamingConfig  `yaml:"naming"`
	Repo    RepoConfig    `yaml:"repo"`
	Retry   RetryConfig   `yaml:"retry"`
	Logging LoggingConfig `yaml:"logging"`
	Reports ReportsConfig `yaml:"reports"`
}

type GitHubConfig struct {
	Token string `yaml:"token"`
	// Org selects the organization to create repositories under. Empty means
	// the authenticated user's own account.
	Org string `yaml:"org"`
}

type NamingConfig struct {
	RepoPrefix    string `yaml:"repo_prefix"`
	FilePrefix    string `yaml:"file_prefix"`
	FileExtension string `yaml:"file_extension"`
}

type RepoConfig struct {
	Description string `yaml:"description"`
	Private     bool   `yaml:"private"`
}

type RetryConfig struct {
	MaxRounds          int `yaml:"max_rounds"`
	InterRoundDelaySec int `yaml:"inter_round_delay_sec"`
	RateLimitDelaySec  int `yaml:"rate_limit_delay_sec"`
	SlowPaceSec        int `yaml:"slow_pace_sec"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ReportsConfig struct {
	Dir string `yaml:"dir"`
}

// Default retry parameters. These are starting values for the config file,
// never read directly by the engine (which takes a RetryPolicy).
const (
	DefaultMaxRounds          = 3
	DefaultInterRoundDelaySec = 5
	DefaultRateLimitDelaySec  = 60
	DefaultSlowPaceSec        = 1
)

// ApplyDefaults fills unset fields with the stock values.
func (c *Config) ApplyDefaults() {
	if c.Naming.RepoPrefix == "" {
		c.Naming.RepoPrefix = "junk-repo-"
	}
	if c.Naming.FilePrefix == "" {
		c.Naming.FilePrefix = "junk-"
	}
	if c.Naming.FileExtension == "" {
		c.Naming.FileExtension = "txt"
	}
	if c.Repo.Description == "" {
		c.Repo.Description = "Repository filled with junk content"
	}
	if c.Retry.MaxRounds <= 0 {
		c.Retry.MaxRounds = DefaultMaxRounds
	}
	if c.Retry.InterRoundDelaySec <= 0 {
		c.Retry.InterRoundDelaySec = DefaultInterRoundDelaySec
	}
	if c.Retry.RateLimitDelaySec <= 0 {
		c.Retry.RateLimitDelaySec = DefaultRateLimitDelaySec
	}
	if c.Retry.SlowPaceSec <= 0 {
		c.Retry.SlowPaceSec = DefaultSlowPaceSec
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Reports.Dir == "" {
		c.Reports.Dir = ".repofill/reports"
	}
}

// RetryPolicy is the immutable delay and round budget handed to the batch
// engine. Derived once from config at startup.
type RetryPolicy struct {
	MaxRounds       int
	InterRoundDelay time.Duration
	RateLimitDelay  time.Duration
	SlowPace        time.Duration
}

// Policy converts the config's retry section into a RetryPolicy.
func (c Config) Policy() RetryPolicy {
	return RetryPolicy{
		MaxRounds:       c.Retry.MaxRounds,
		InterRoundDelay: time.Duration(c.Retry.InterRoundDelaySec) * time.Second,
		RateLimitDelay:  time.Duration(c.Retry.RateLimitDelaySec) * time.Second,
		SlowPace:        time.Duration(c.Retry.SlowPaceSec) * time.Second,
	}
}
