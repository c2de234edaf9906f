package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"biliscraper/pkg/config"
	"biliscraper/pkg/ui"
)

var initOutput string

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage biliscraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options,
plus a starter author list next to it.

The file is created in the current directory as 'biliscraper.yaml'
unless a different path is given with --output or --config.`,
	Run: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Required fields
  - Value types and ranges
  - Path accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)

	initCmd.Flags().StringVar(&initOutput, "output", "", "path for the example configuration file")
}

func runConfigInit(cmd *cobra.Command, args []string) {
	// Determine config file path
	configPath := initOutput
	if configPath == "" {
		configPath = configFile
	}
	if configPath == "" {
		configPath = "biliscraper.yaml"
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	// Create example configuration
	exampleConfig := `# biliscraper Configuration File
#
# This file contains all available configuration options.
# You can also use environment variables prefixed with BILISCRAPER_
# For example: BILISCRAPER_AUTHORS_FILE, BILISCRAPER_HEADLESS

# Author list, a JSON or YAML file of objects with an "author_id"
# (numeric space UID) and an optional "category" label.
# Relative paths are resolved against this file's directory.
authors_file: "authors.json"

# Pause after each author page load, uniform seconds in [min, max]
sleep_after_load_seconds: [2.0, 4.0]

# Number of scroll gestures per author page, inclusive range
scroll_steps:
  min: 2
  max: 5

# Upper bound on extracted entries per author
# The space upload page shows a limited number of entries
max_videos_per_author: 30

# Destinations the collected table is written to.
# The extension picks the format: .csv, .json or .xlsx
outputs:
  - "out/videos.csv"

# Extra chromium switches, "--flag" or "--flag=value"
edge_options: []

# Run the browser without a visible window
headless: false

# Pause after the landing page, uniform seconds in [min, max]
landing_settle_seconds: [1.5, 3.5]

# Explicit browser executable (optional)
# Leave empty to auto-detect an installed chromium
browser_binary: ""

# DevTools URL of an already running browser (optional)
# When set, biliscraper attaches instead of launching its own browser
remote_debugging_url: ""

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path (optional)
  # Leave empty to log to stderr only
  file: ""
`

	// Write configuration file
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("Configuration file created: " + configPath)

	// Write a starter author list next to the config, unless one exists
	authorsPath := filepath.Join(filepath.Dir(configPath), "authors.json")
	if _, err := os.Stat(authorsPath); err == nil {
		ui.PrintInfo("Author list already exists", authorsPath)
	} else {
		starterAuthors := `[
  {"author_id": "12345678", "category": "demo"}
]
`
		if err := os.WriteFile(authorsPath, []byte(starterAuthors), 0644); err != nil {
			ui.PrintError("Failed to create author list", err.Error())
			os.Exit(1)
		}
		ui.PrintSuccess("Author list created: " + authorsPath)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("1. Replace the placeholder UID in authors.json with real space UIDs")
	fmt.Println("2. Run 'biliscraper config validate' to check the configuration")
	fmt.Println("3. Start collecting with 'biliscraper collect'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Convert to YAML for display
	data, err := yaml.Marshal(cfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	// Show configuration sources
	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (BILISCRAPER_*)")
	if src := cfg.Source(); src != "" {
		fmt.Printf("3. Configuration file: %s\n", src)
	} else {
		fmt.Println("3. Configuration file: (not found)")
	}
	fmt.Println("4. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	// Check if config file is specified
	if configFile == "" {
		// Try to find config file in common locations
		possiblePaths := []string{
			"biliscraper.yaml",
			".biliscraper.yaml",
			".biliscraper.yml",
			filepath.Join(os.Getenv("HOME"), ".biliscraper.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "biliscraper", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	// Try to load and validate configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	// Perform additional validation checks
	warnings := []string{}
	errors := []string{}

	// Check the author list
	if _, err := os.Stat(cfg.ResolvedAuthorsFile()); err != nil {
		warnings = append(warnings, fmt.Sprintf("author list file not found: %s", cfg.ResolvedAuthorsFile()))
	}

	// Check output paths
	for _, out := range cfg.ResolvedOutputs() {
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create output directory: %v", err))
			}
		}
	}

	// Check logging file path
	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create log directory: %v", err))
		}
	}

	// Check value ranges
	if cfg.MaxVideosPerAuthor > 100 {
		warnings = append(warnings, "max_videos_per_author above 100 exceeds a single listing page")
	}
	if cfg.RemoteDebuggingURL != "" && (cfg.Headless || cfg.BrowserBinary != "") {
		warnings = append(warnings, "remote_debugging_url is set; headless and browser_binary are ignored")
	}

	// Display results
	if len(errors) > 0 {
		ui.PrintError("Configuration has errors")
		for _, err := range errors {
			fmt.Printf("  - %s\n", err)
		}
		os.Exit(1)
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	// Show summary
	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Author list: %s\n", cfg.ResolvedAuthorsFile())
	fmt.Printf("  Max videos per author: %d\n", cfg.MaxVideosPerAuthor)
	fmt.Printf("  Destinations: %s\n", strings.Join(cfg.ResolvedOutputs(), ", "))
	fmt.Printf("  Headless: %v\n", cfg.Headless)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
