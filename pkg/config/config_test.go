package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	// Test default values
	if config.AuthorsFile != "authors.json" {
		t.Errorf("Expected default authors file to be authors.json, got %s", config.AuthorsFile)
	}

	if config.MaxVideosPerAuthor != 30 {
		t.Errorf("Expected default max videos per author to be 30, got %d", config.MaxVideosPerAuthor)
	}

	if config.SleepAfterLoad.Min != 2.0 || config.SleepAfterLoad.Max != 4.0 {
		t.Errorf("Expected default sleep after load to be [2, 4], got [%v, %v]",
			config.SleepAfterLoad.Min, config.SleepAfterLoad.Max)
	}

	if config.LandingSettle.Min != 1.5 || config.LandingSettle.Max != 3.5 {
		t.Errorf("Expected default landing settle to be [1.5, 3.5], got [%v, %v]",
			config.LandingSettle.Min, config.LandingSettle.Max)
	}

	if len(config.Outputs) != 1 || config.Outputs[0] != "out/videos.csv" {
		t.Errorf("Expected default outputs to be [out/videos.csv], got %v", config.Outputs)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	// Set test environment variables
	os.Setenv("BILISCRAPER_AUTHORS_FILE", "/tmp/test-authors.json")
	os.Setenv("BILISCRAPER_MAX_VIDEOS", "12")
	os.Setenv("BILISCRAPER_HEADLESS", "true")
	os.Setenv("BILISCRAPER_OUTPUTS", "a.csv, sub/b.xlsx")
	os.Setenv("BILISCRAPER_BROWSER_BINARY", "/usr/bin/microsoft-edge")
	os.Setenv("BILISCRAPER_LOG_LEVEL", "debug")

	defer func() {
		// Clean up environment variables
		os.Unsetenv("BILISCRAPER_AUTHORS_FILE")
		os.Unsetenv("BILISCRAPER_MAX_VIDEOS")
		os.Unsetenv("BILISCRAPER_HEADLESS")
		os.Unsetenv("BILISCRAPER_OUTPUTS")
		os.Unsetenv("BILISCRAPER_BROWSER_BINARY")
		os.Unsetenv("BILISCRAPER_LOG_LEVEL")
	}()

	config := DefaultConfig()
	err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	// Test loaded values
	if config.AuthorsFile != "/tmp/test-authors.json" {
		t.Errorf("Expected authors file to be /tmp/test-authors.json, got %s", config.AuthorsFile)
	}

	if config.MaxVideosPerAuthor != 12 {
		t.Errorf("Expected max videos per author to be 12, got %d", config.MaxVideosPerAuthor)
	}

	if !config.Headless {
		t.Error("Expected headless to be enabled")
	}

	if len(config.Outputs) != 2 || config.Outputs[0] != "a.csv" || config.Outputs[1] != "sub/b.xlsx" {
		t.Errorf("Expected outputs to be [a.csv sub/b.xlsx], got %v", config.Outputs)
	}

	if config.BrowserBinary != "/usr/bin/microsoft-edge" {
		t.Errorf("Expected browser binary to be /usr/bin/microsoft-edge, got %s", config.BrowserBinary)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level to be debug, got %s", config.Logging.Level)
	}
}

func TestLoadFromFileRangeSyntax(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `authors_file: creators.json
sleep_after_load_seconds: [1.0, 2.5]
scroll_steps:
  min: 1
  max: 3
max_videos_per_author: 5
outputs:
  - data/videos.csv
headless: true
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.SleepAfterLoad.Min != 1.0 || config.SleepAfterLoad.Max != 2.5 {
		t.Errorf("Expected sleep after load [1, 2.5], got [%v, %v]",
			config.SleepAfterLoad.Min, config.SleepAfterLoad.Max)
	}
	if config.ScrollSteps.Min != 1 || config.ScrollSteps.Max != 3 {
		t.Errorf("Expected scroll steps {1, 3}, got %+v", config.ScrollSteps)
	}
	if !config.Headless {
		t.Error("Expected headless to be true")
	}

	// Keys absent from the file keep their defaults
	if config.LandingSettle.Min != 1.5 || config.LandingSettle.Max != 3.5 {
		t.Errorf("Expected landing settle to keep defaults, got %+v", config.LandingSettle)
	}
}

func TestLoadFromFileRejectsBadRange(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `sleep_after_load_seconds: [1.0, 2.0, 3.0]
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err == nil {
		t.Error("Expected an error for a three-element range")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return DefaultConfig()
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name: "missing authors file",
			mutate: func(c *Config) {
				c.AuthorsFile = ""
			},
			wantError: true,
		},
		{
			name: "sleep range min above max",
			mutate: func(c *Config) {
				c.SleepAfterLoad = Range{Min: 4.0, Max: 2.0}
			},
			wantError: true,
		},
		{
			name: "negative sleep range",
			mutate: func(c *Config) {
				c.SleepAfterLoad = Range{Min: -1.0, Max: 2.0}
			},
			wantError: true,
		},
		{
			name: "scroll steps min above max",
			mutate: func(c *Config) {
				c.ScrollSteps = StepRange{Min: 5, Max: 2}
			},
			wantError: true,
		},
		{
			name: "zero scroll steps allowed",
			mutate: func(c *Config) {
				c.ScrollSteps = StepRange{Min: 0, Max: 0}
			},
			wantError: false,
		},
		{
			name: "zero max videos",
			mutate: func(c *Config) {
				c.MaxVideosPerAuthor = 0
			},
			wantError: true,
		},
		{
			name: "no outputs",
			mutate: func(c *Config) {
				c.Outputs = nil
			},
			wantError: true,
		},
		{
			name: "blank output entry",
			mutate: func(c *Config) {
				c.Outputs = []string{"a.csv", "  "}
			},
			wantError: true,
		},
		{
			name: "invalid log level",
			mutate: func(c *Config) {
				c.Logging.Level = "invalid"
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	flags := map[string]interface{}{
		"authors-file":   "/flag/authors.json",
		"max-videos":     7,
		"headless":       true,
		"outputs":        []string{"/flag/out.csv"},
		"browser-binary": "/flag/chrome",
		"log-level":      "error",
	}

	config.MergeCommandLineFlags(flags)

	// Test merged values
	if config.AuthorsFile != "/flag/authors.json" {
		t.Errorf("Expected authors file to be /flag/authors.json, got %s", config.AuthorsFile)
	}

	if config.MaxVideosPerAuthor != 7 {
		t.Errorf("Expected max videos per author to be 7, got %d", config.MaxVideosPerAuthor)
	}

	if !config.Headless {
		t.Error("Expected headless to be enabled")
	}

	if len(config.Outputs) != 1 || config.Outputs[0] != "/flag/out.csv" {
		t.Errorf("Expected outputs to be [/flag/out.csv], got %v", config.Outputs)
	}

	if config.BrowserBinary != "/flag/chrome" {
		t.Errorf("Expected browser binary to be /flag/chrome, got %s", config.BrowserBinary)
	}

	if config.Logging.Level != "error" {
		t.Errorf("Expected log level to be error, got %s", config.Logging.Level)
	}
}

func TestSaveAndLoadFromFile(t *testing.T) {
	// Create temporary directory for testing
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	// Create a config and save it
	config := DefaultConfig()
	config.AuthorsFile = "save-test-authors.json"
	config.MaxVideosPerAuthor = 8
	config.SleepAfterLoad = Range{Min: 0.5, Max: 1.5}

	err := config.Save(configPath)
	if err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	// Load the saved config
	loadedConfig := DefaultConfig()
	err = loadedConfig.LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify loaded values
	if loadedConfig.AuthorsFile != "save-test-authors.json" {
		t.Errorf("Expected loaded authors file to be save-test-authors.json, got %s", loadedConfig.AuthorsFile)
	}

	if loadedConfig.MaxVideosPerAuthor != 8 {
		t.Errorf("Expected loaded max videos per author to be 8, got %d", loadedConfig.MaxVideosPerAuthor)
	}

	if loadedConfig.SleepAfterLoad.Min != 0.5 || loadedConfig.SleepAfterLoad.Max != 1.5 {
		t.Errorf("Expected loaded sleep after load [0.5, 1.5], got [%v, %v]",
			loadedConfig.SleepAfterLoad.Min, loadedConfig.SleepAfterLoad.Max)
	}
}

func TestResolvePathsAgainstConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `authors_file: authors.json
outputs:
  - out/videos.csv
  - /absolute/videos.csv
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if got := config.ResolvedAuthorsFile(); got != filepath.Join(tmpDir, "authors.json") {
		t.Errorf("Expected authors file resolved against config dir, got %s", got)
	}

	outputs := config.ResolvedOutputs()
	if outputs[0] != filepath.Join(tmpDir, "out", "videos.csv") {
		t.Errorf("Expected relative output resolved against config dir, got %s", outputs[0])
	}
	if outputs[1] != "/absolute/videos.csv" {
		t.Errorf("Expected absolute output untouched, got %s", outputs[1])
	}

	if config.Source() != configPath {
		t.Errorf("Expected source to be %s, got %s", configPath, config.Source())
	}
}

func TestResolvePathsWithoutConfigFile(t *testing.T) {
	config := DefaultConfig()

	// Without a config file, relative paths stay as given
	if got := config.ResolvePath("out/videos.csv"); got != "out/videos.csv" {
		t.Errorf("Expected path to stay relative, got %s", got)
	}
}
