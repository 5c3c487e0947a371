// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Document paths
	IdentityCard      string `json:"identity_card,omitempty"`      // Path to Emirates ID card image
	BankStatement     string `json:"bank_statement,omitempty"`     // Path to bank statement CSV
	CreditReport      string `json:"credit_report,omitempty"`      // Path to credit report PDF
	AssetsLiabilities string `json:"assets_liabilities,omitempty"` // Path to assets/liabilities CSV

	// Scoring
	ModelPath string `json:"model_path,omitempty"` // Path to the local eligibility model file
	ScorerURL string `json:"scorer_url,omitempty"` // Base URL of an external model server

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ReportDir   string `json:"report_dir,omitempty"`   // Directory for written case reports
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: required-field checks belong to CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.ModelPath != "" && c.ScorerURL != "" {
		return fmt.Errorf("config error: 'model_path' and 'scorer_url' are mutually exclusive")
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"identity_card":      c.IdentityCard,
		"bank_statement":     c.BankStatement,
		"credit_report":      c.CreditReport,
		"assets_liabilities": c.AssetsLiabilities,
		"model_path":         c.ModelPath,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.IdentityCard == "" {
		result.IdentityCard = defaults.IdentityCard
	}
	if result.BankStatement == "" {
		result.BankStatement = defaults.BankStatement
	}
	if result.CreditReport == "" {
		result.CreditReport = defaults.CreditReport
	}
	if result.AssetsLiabilities == "" {
		result.AssetsLiabilities = defaults.AssetsLiabilities
	}
	if result.ModelPath == "" {
		result.ModelPath = defaults.ModelPath
	}
	if result.ScorerURL == "" {
		result.ScorerURL = defaults.ScorerURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ReportDir == "" {
		result.ReportDir = defaults.ReportDir
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
