// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variables read by FromEnv.
const (
	EnvExperienceFile  = "INDIVIDUAL_PROFILE_JSON_FILENAME"
	EnvCredentialsJSON = "GOOGLE_SERVICE_ACCOUNT_JSON"
	EnvSpreadsheetID   = "SPREADSHEET_ID"
	EnvPort            = "PORT"
	EnvDataDir         = "LEAD_DATA_DIR"
	EnvSessionPath     = "LINKEDIN_SESSION_PATH"
)

// Duration is a time.Duration that reads from JSON as "60s" or as
// integer milliseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("duration must be a string or milliseconds: %w", err)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Paths
	SessionPath    string `json:"session_path,omitempty"`    // Captured browser session
	DataDir        string `json:"data_dir,omitempty"`        // Directory holding collections
	URLFile        string `json:"url_file,omitempty"`        // Default URL collection name, without .json
	ExperienceFile string `json:"experience_file,omitempty"` // Experience collection file name

	// Server
	Port        int      `json:"port,omitempty"`
	LockTimeout Duration `json:"lock_timeout,omitempty"`

	// Browser
	ShowBrowser       bool     `json:"show_browser,omitempty"` // Run Chrome with a visible window
	NavigationTimeout Duration `json:"navigation_timeout,omitempty"`
	IdleQuiet         Duration `json:"idle_quiet,omitempty"`
	ScrollStep        int      `json:"scroll_step,omitempty"`
	ScrollHeight      int      `json:"scroll_height,omitempty"` // Assumed page bottom when it cannot be measured
	ScrollDelayMin    Duration `json:"scroll_delay_min,omitempty"`
	ScrollDelayMax    Duration `json:"scroll_delay_max,omitempty"`
	SettleDelay       Duration `json:"settle_delay,omitempty"`

	// Spreadsheet
	SpreadsheetID   string `json:"spreadsheet_id,omitempty"`
	URLTab          string `json:"url_tab,omitempty"`
	ExperienceTab   string `json:"experience_tab,omitempty"`
	CredentialsFile string `json:"credentials_file,omitempty"`
	CredentialsJSON string `json:"-"` // Only from the environment

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		SessionPath:       "linkedin_session.json",
		DataDir:           "company_urls",
		URLFile:           "profile_urls",
		ExperienceFile:    "individual_profiles_data.json",
		Port:              5000,
		LockTimeout:       Duration(10 * time.Second),
		NavigationTimeout: Duration(60 * time.Second),
		IdleQuiet:         Duration(500 * time.Millisecond),
		ScrollStep:        500,
		ScrollHeight:      4000,
		ScrollDelayMin:    Duration(300 * time.Millisecond),
		ScrollDelayMax:    Duration(600 * time.Millisecond),
		URLTab:            "MassScrapedLeads",
		ExperienceTab:     "ProfileDetails",
		CredentialsFile:   "service_account.json",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv overlays environment variables onto c.
func (c *Config) FromEnv() {
	c.ExperienceFile = getEnvString(EnvExperienceFile, c.ExperienceFile)
	c.CredentialsJSON = getEnvString(EnvCredentialsJSON, c.CredentialsJSON)
	c.SpreadsheetID = getEnvString(EnvSpreadsheetID, c.SpreadsheetID)
	c.DataDir = getEnvString(EnvDataDir, c.DataDir)
	c.SessionPath = getEnvString(EnvSessionPath, c.SessionPath)
	c.Port = getEnvInt(EnvPort, c.Port)
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ScrollStep < 0 {
		return fmt.Errorf("config error: 'scroll_step' must be non-negative")
	}
	if c.ScrollHeight < 0 {
		return fmt.Errorf("config error: 'scroll_height' must be non-negative")
	}
	if c.ScrollDelayMax != 0 && c.ScrollDelayMax < c.ScrollDelayMin {
		return fmt.Errorf("config error: 'scroll_delay_max' must not be below 'scroll_delay_min'")
	}
	for name, d := range map[string]Duration{
		"navigation_timeout": c.NavigationTimeout,
		"idle_quiet":         c.IdleQuiet,
		"settle_delay":       c.SettleDelay,
		"lock_timeout":       c.LockTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}
	if c.ExperienceFile != "" && filepath.Base(c.ExperienceFile) != c.ExperienceFile {
		return fmt.Errorf("config error: 'experience_file' must be a file name, not a path")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.SessionPath, defaults.SessionPath)
	mergeString(&result.DataDir, defaults.DataDir)
	mergeString(&result.URLFile, defaults.URLFile)
	mergeString(&result.ExperienceFile, defaults.ExperienceFile)
	mergeString(&result.SpreadsheetID, defaults.SpreadsheetID)
	mergeString(&result.URLTab, defaults.URLTab)
	mergeString(&result.ExperienceTab, defaults.ExperienceTab)
	mergeString(&result.CredentialsFile, defaults.CredentialsFile)
	mergeString(&result.CredentialsJSON, defaults.CredentialsJSON)

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ScrollStep == 0 {
		result.ScrollStep = defaults.ScrollStep
	}
	if result.ScrollHeight == 0 {
		result.ScrollHeight = defaults.ScrollHeight
	}

	// Durations
	mergeDuration(&result.LockTimeout, defaults.LockTimeout)
	mergeDuration(&result.NavigationTimeout, defaults.NavigationTimeout)
	mergeDuration(&result.IdleQuiet, defaults.IdleQuiet)
	mergeDuration(&result.ScrollDelayMin, defaults.ScrollDelayMin)
	mergeDuration(&result.ScrollDelayMax, defaults.ScrollDelayMax)
	mergeDuration(&result.SettleDelay, defaults.SettleDelay)

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Load reads path when set, merges defaults and applies the environment.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	merged := cfg.MergeWithDefaults(Defaults())
	merged.FromEnv()
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func mergeDuration(dst *Duration, def Duration) {
	if *dst == 0 {
		*dst = def
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
