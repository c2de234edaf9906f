package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"biliscraper/pkg/models"
)

var (
	// bilibili brand palette
	biliPink  = lipgloss.Color("#FB7299")
	biliBlue  = lipgloss.Color("#00A1D6")
	softWhite = lipgloss.Color("#EEEEEE")
	dimGrey   = lipgloss.Color("#666666")

	summaryPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(biliPink).
				Padding(0, 2)

	summaryTitleStyle = lipgloss.NewStyle().
				Foreground(biliPink).
				Bold(true)

	summaryLabelStyle = lipgloss.NewStyle().
				Foreground(biliBlue).
				Bold(true)

	summaryValueStyle = lipgloss.NewStyle().
				Foreground(softWhite)

	summaryPathStyle = lipgloss.NewStyle().
				Foreground(dimGrey)
)

// RenderSummary renders the end-of-run panel
func RenderSummary(records []models.VideoRecord, destinations []string, elapsed time.Duration) string {
	authors := make(map[string]bool)
	for _, record := range records {
		authors[record.Author] = true
	}

	lines := []string{
		summaryTitleStyle.Render("Collection complete"),
		"",
		summaryLine("Authors", strconv.Itoa(len(authors))),
		summaryLine("Videos", strconv.Itoa(len(records))),
		summaryLine("Elapsed", formatDuration(elapsed)),
	}

	if len(destinations) > 0 {
		lines = append(lines, summaryLine("Outputs", ""))
		for _, dest := range destinations {
			lines = append(lines, "  "+summaryPathStyle.Render(dest))
		}
	}

	return summaryPanelStyle.Render(strings.Join(lines, "\n"))
}

// PrintSummary prints the end-of-run panel unless quiet mode is on
func PrintSummary(records []models.VideoRecord, destinations []string, elapsed time.Duration) {
	if IsQuietMode() {
		return
	}
	fmt.Println()
	fmt.Println(RenderSummary(records, destinations, elapsed))
}

func summaryLine(label, value string) string {
	return fmt.Sprintf("%s %s", summaryLabelStyle.Render(label+":"), summaryValueStyle.Render(value))
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
