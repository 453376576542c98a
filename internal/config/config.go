// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration. Modes are explicit fields
// handed to the components that need them; nothing reads a global toggle at
// runtime.
type Config struct {
	Port string

	// Persisted state.
	DBPath     string
	FixLogPath string

	// Input/output files for audit and dispatch runs.
	StaffCSV  string
	ExportCSV string
	ReportCSV string

	// Classifier.
	AnthropicAPIKey string
	Model           string
	AuditPromptPath string

	// Delivery.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	TestNumber       string

	// SimulatorMode selects the local channel instead of the live gateway.
	SimulatorMode bool
	// SafetyMode redirects every delivery to TestNumber.
	SafetyMode bool
	// CheapMode collapses a dispatch run into one summary message.
	CheapMode bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "5001"),
		DBPath:           getEnv("DB_PATH", "./data/vigilant.db"),
		FixLogPath:       getEnv("FIX_LOG_PATH", "./data/fix_history.log"),
		StaffCSV:         getEnv("STAFF_CSV", "./staff_list.csv"),
		ExportCSV:        getEnv("EXPORT_CSV", "./shiftcare_messy_export.csv"),
		ReportCSV:        getEnv("REPORT_CSV", "./vigilant_audit_report.csv"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		Model:            getEnv("AUDIT_MODEL", "claude-sonnet-4-20250514"),
		AuditPromptPath:  getEnv("AUDIT_PROMPT_PATH", "./Audit.md"),
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:       getEnv("TWILIO_PHONE_NUMBER", ""),
		TestNumber:       getEnv("TEST_PHONE_NUMBER", ""),
		SimulatorMode:    getEnvBool("SIMULATOR_MODE", true),
		SafetyMode:       getEnvBool("SAFETY_MODE", true),
		CheapMode:        getEnvBool("TEST_CHEAP_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.FixLogPath == "" {
		return fmt.Errorf("FIX_LOG_PATH cannot be empty")
	}
	return nil
}

// ValidateTwilio checks the credentials required for live delivery.
func (c *Config) ValidateTwilio() error {
	if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" {
		return fmt.Errorf("TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN must be set for live delivery")
	}
	if c.TwilioFrom == "" {
		return fmt.Errorf("TWILIO_PHONE_NUMBER must be set for live delivery")
	}
	return nil
}

// ValidateClassifier checks the settings required for an audit run.
func (c *Config) ValidateClassifier() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY must be set for audit runs")
	}
	if c.Model == "" {
		return fmt.Errorf("AUDIT_MODEL cannot be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
