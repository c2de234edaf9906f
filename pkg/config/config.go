package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for a collection run.
// It is loaded once at startup and treated as immutable afterwards.
type Config struct {
	// Path to the author list (JSON array, YAML accepted)
	AuthorsFile string `yaml:"authors_file" json:"authors_file"`

	// Pause after each author page load, uniform seconds in [min, max]
	SleepAfterLoad Range `yaml:"sleep_after_load_seconds" json:"sleep_after_load_seconds"`

	// Number of scroll gestures per author page
	ScrollSteps StepRange `yaml:"scroll_steps" json:"scroll_steps"`

	// Upper bound on extracted entries per author
	MaxVideosPerAuthor int `yaml:"max_videos_per_author" json:"max_videos_per_author"`

	// Destinations the collected table is written to
	Outputs []string `yaml:"outputs" json:"outputs"`

	// Extra chromium switches, "--flag" or "--flag=value"
	EdgeOptions []string `yaml:"edge_options" json:"edge_options"`

	// Run the browser without a visible window
	Headless bool `yaml:"headless" json:"headless"`

	// Pause after the landing page, uniform seconds in [min, max]
	LandingSettle Range `yaml:"landing_settle_seconds" json:"landing_settle_seconds"`

	// Explicit browser executable; empty means auto-lookup
	BrowserBinary string `yaml:"browser_binary" json:"browser_binary"`

	// DevTools URL of an already running browser; empty means launch one
	RemoteDebuggingURL string `yaml:"remote_debugging_url" json:"remote_debugging_url"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Directory of the config file, for resolving relative paths
	baseDir string

	// Path of the config file that was loaded, if any
	source string
}

// Range is a [min, max] pair of seconds, written as a two-element
// sequence in YAML
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UnmarshalYAML decodes a two-element sequence into the range
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	var pair []float64
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("range expects a [min, max] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("range expects exactly two values, got %d", len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// MarshalYAML renders the range in flow style, [min, max]
func (r Range) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{}
	if err := node.Encode([]float64{r.Min, r.Max}); err != nil {
		return nil, err
	}
	node.Style = yaml.FlowStyle
	return node, nil
}

// StepRange is an inclusive integer range of scroll step counts
type StepRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		AuthorsFile:        "authors.json",
		SleepAfterLoad:     Range{Min: 2.0, Max: 4.0},
		ScrollSteps:        StepRange{Min: 2, Max: 5},
		MaxVideosPerAuthor: 30,
		Outputs:            []string{"out/videos.csv"},
		EdgeOptions:        []string{},
		Headless:           false,
		LandingSettle:      Range{Min: 1.5, Max: 3.5},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if authorsFile := os.Getenv("BILISCRAPER_AUTHORS_FILE"); authorsFile != "" {
		c.AuthorsFile = authorsFile
	}

	if maxVideos := os.Getenv("BILISCRAPER_MAX_VIDEOS"); maxVideos != "" {
		var val int
		fmt.Sscanf(maxVideos, "%d", &val)
		if val > 0 {
			c.MaxVideosPerAuthor = val
		}
	}

	if headless := os.Getenv("BILISCRAPER_HEADLESS"); headless != "" {
		c.Headless = strings.ToLower(headless) == "true"
	}

	// Comma-separated list replaces the configured destinations
	if outputs := os.Getenv("BILISCRAPER_OUTPUTS"); outputs != "" {
		var paths []string
		for _, p := range strings.Split(outputs, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			c.Outputs = paths
		}
	}

	if bin := os.Getenv("BILISCRAPER_BROWSER_BINARY"); bin != "" {
		c.BrowserBinary = bin
	}

	if controlURL := os.Getenv("BILISCRAPER_REMOTE_DEBUGGING_URL"); controlURL != "" {
		c.RemoteDebuggingURL = controlURL
	}

	if logLevel := os.Getenv("BILISCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFile := os.Getenv("BILISCRAPER_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		c.source = abs
		c.baseDir = filepath.Dir(abs)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		"biliscraper.yaml",
		".biliscraper.yaml",
		".biliscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "biliscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "biliscraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".biliscraper.yaml"),
		filepath.Join(os.Getenv("HOME"), ".biliscraper.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Source returns the path of the config file that was loaded, or an
// empty string when only defaults, environment and flags applied
func (c *Config) Source() string {
	return c.source
}

// ResolvePath resolves a possibly relative path against the directory
// of the loaded config file. Paths stay untouched when absolute or when
// no config file was involved.
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || c.baseDir == "" {
		return path
	}
	return filepath.Join(c.baseDir, path)
}

// ResolvedAuthorsFile returns the authors file path, resolved
func (c *Config) ResolvedAuthorsFile() string {
	return c.ResolvePath(c.AuthorsFile)
}

// ResolvedOutputs returns the output destinations, resolved in order
func (c *Config) ResolvedOutputs() []string {
	resolved := make([]string, len(c.Outputs))
	for i, out := range c.Outputs {
		resolved[i] = c.ResolvePath(out)
	}
	return resolved
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.AuthorsFile == "" {
		errs = append(errs, errors.New("authors file is required"))
	}

	if err := validateRange("sleep_after_load_seconds", c.SleepAfterLoad); err != nil {
		errs = append(errs, err)
	}
	if err := validateRange("landing_settle_seconds", c.LandingSettle); err != nil {
		errs = append(errs, err)
	}

	if c.ScrollSteps.Min < 0 {
		errs = append(errs, errors.New("scroll steps min cannot be negative"))
	}
	if c.ScrollSteps.Max < c.ScrollSteps.Min {
		errs = append(errs, errors.New("scroll steps max must not be below min"))
	}

	if c.MaxVideosPerAuthor <= 0 {
		errs = append(errs, errors.New("max videos per author must be positive"))
	}

	if len(c.Outputs) == 0 {
		errs = append(errs, errors.New("at least one output destination is required"))
	}
	for _, out := range c.Outputs {
		if strings.TrimSpace(out) == "" {
			errs = append(errs, errors.New("output destinations cannot be empty"))
			break
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "warning": true,
		"error": true, "fatal": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func validateRange(name string, r Range) error {
	if r.Min < 0 {
		return fmt.Errorf("%s min cannot be negative", name)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s max must not be below min", name)
	}
	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if authorsFile, ok := flags["authors-file"].(string); ok && authorsFile != "" {
		c.AuthorsFile = authorsFile
	}
	if maxVideos, ok := flags["max-videos"].(int); ok && maxVideos > 0 {
		c.MaxVideosPerAuthor = maxVideos
	}
	if headless, ok := flags["headless"].(bool); ok {
		c.Headless = headless
	}
	if outputs, ok := flags["outputs"].([]string); ok && len(outputs) > 0 {
		c.Outputs = outputs
	}
	if bin, ok := flags["browser-binary"].(string); ok && bin != "" {
		c.BrowserBinary = bin
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".biliscraper.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
