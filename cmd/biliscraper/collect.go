package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"biliscraper/pkg/authors"
	"biliscraper/pkg/collector"
	"biliscraper/pkg/config"
	"biliscraper/pkg/logger"
	"biliscraper/pkg/output"
	"biliscraper/pkg/ui"
)

var (
	// Collect command flags
	authorsFile   string
	maxVideos     int
	headless      bool
	outputs       []string
	browserBinary string
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect upload listings for the configured authors",
	Long: `Collect the visible upload listings for every author in the author
list.

The run opens one browser session, visits each author's space upload page
in order and records title, publish date and canonical video URL for the
uploads in rank order. The collected table is then written to every
configured output destination.

The author list is a JSON or YAML file of objects with an "author_id"
(the numeric space UID) and an optional "category" label that is carried
into the output rows.`,
	Example: `  # Collect using the configuration file defaults
  biliscraper collect

  # Use a specific author list and write two formats
  biliscraper collect --authors authors.yaml --output out/videos.csv --output out/videos.xlsx

  # Headless run with a per-author cap
  biliscraper collect --headless --max-videos 10

  # Point at a specific browser build
  biliscraper collect --browser-binary /usr/bin/chromium`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runCollect(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)

	// Local flags for collect command
	collectCmd.Flags().StringVarP(&authorsFile, "authors", "a", "", "author list file, JSON or YAML (default from config)")
	collectCmd.Flags().IntVar(&maxVideos, "max-videos", 30, "cap on extracted videos per author")
	collectCmd.Flags().BoolVar(&headless, "headless", false, "run the browser without a visible window")
	collectCmd.Flags().StringSliceVarP(&outputs, "output", "o", nil, "output destination (.csv, .json, .xlsx), repeatable")
	collectCmd.Flags().StringVar(&browserBinary, "browser-binary", "", "path to the browser executable")

	// Also add these flags to the root command so a bare invocation accepts them
	rootCmd.Flags().StringVarP(&authorsFile, "authors", "a", "", "author list file, JSON or YAML (default from config)")
	rootCmd.Flags().IntVar(&maxVideos, "max-videos", 30, "cap on extracted videos per author")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "run the browser without a visible window")
	rootCmd.Flags().StringSliceVarP(&outputs, "output", "o", nil, "output destination (.csv, .json, .xlsx), repeatable")
	rootCmd.Flags().StringVar(&browserBinary, "browser-binary", "", "path to the browser executable")
}

func runCollect(cmd *cobra.Command, args []string) {
	// Build flags map from command line
	flags := make(map[string]interface{})
	if authorsFile != "" {
		flags["authors-file"] = authorsFile
	}
	if maxVideos != 30 {
		flags["max-videos"] = maxVideos
	}
	if headless {
		flags["headless"] = true
	}
	if len(outputs) > 0 {
		flags["outputs"] = outputs
	}
	if browserBinary != "" {
		flags["browser-binary"] = browserBinary
	}
	// Pass log level to config
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	// Load configuration
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		os.Exit(1)
	}
	logger.WithField("version", version).Info("biliscraper starting")

	// Load the author list
	authorsPath := cfg.ResolvedAuthorsFile()
	ui.PrintInfo("Author list", authorsPath)

	list, err := authors.Load(authorsPath)
	if err != nil {
		logger.WithError(err).Error("Failed to load author list")
		ui.PrintError("Failed to load author list", err.Error())
		os.Exit(1)
	}
	if len(list) == 0 {
		ui.PrintWarning("Author list is empty", "outputs will contain only headers")
	}

	destinations := cfg.ResolvedOutputs()
	ui.PrintInfo("Destinations", strings.Join(destinations, ", "))

	ui.PrintHighlight("[STARTING COLLECTION RUN]")

	// Create and run the collector
	progress := ui.NewRunProgress()
	c := collector.New(cfg)
	c.SetProgress(progress)

	records, err := c.Run(list)
	if err != nil {
		logger.WithError(err).Error("Collection run failed")
		ui.PrintError("COLLECTION FAILED", err.Error())
		os.Exit(1)
	}

	// Write the collected table to every destination
	writer := output.NewWriter()
	if err := writer.Write(records, destinations); err != nil {
		logger.WithError(err).Error("Failed to write outputs")
		ui.PrintError("OUTPUT WRITE FAILED", err.Error())
		os.Exit(1)
	}

	authorsSeen, recordsSeen := progress.Counts()
	logger.LogRunSummary(authorsSeen, recordsSeen, progress.Elapsed())

	ui.PrintSummary(records, destinations, progress.Elapsed())
	ui.PrintSuccess("[COLLECTION COMPLETED]")

	if !ui.IsQuietMode() {
		notifier := ui.NewNotifier()
		notifier.SendSuccess("Collection complete",
			fmt.Sprintf("%d videos from %d authors", len(records), len(list)))
	}
}

// Run a collection when invoked without a subcommand.
func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			runCollect(cmd, args)
			return nil
		}
		return cmd.Help()
	}
	rootCmd.Args = cobra.ArbitraryArgs
}
