package ui

import (
	"strings"
	"testing"
	"time"

	"biliscraper/pkg/models"
)

func TestColorizeRespectsToggle(t *testing.T) {
	defer SetColorEnabled(colorEnabled)

	SetColorEnabled(true)
	colored := Green("done")
	if !strings.Contains(colored, "\033[32m") {
		t.Errorf("Expected ANSI codes when colors are on, got %q", colored)
	}

	SetColorEnabled(false)
	plain := Green("done")
	if plain != "done" {
		t.Errorf("Expected passthrough when colors are off, got %q", plain)
	}
}

func TestQuietModeToggle(t *testing.T) {
	defer SetQuietMode(false)

	SetQuietMode(true)
	if !IsQuietMode() {
		t.Error("Quiet mode should be on")
	}

	SetQuietMode(false)
	if IsQuietMode() {
		t.Error("Quiet mode should be off")
	}
}

func TestRenderSummary(t *testing.T) {
	records := []models.VideoRecord{
		{Author: "creator one", Title: "a", Rank: 1},
		{Author: "creator one", Title: "b", Rank: 2},
		{Author: "creator two", Title: "c", Rank: 1},
	}

	out := RenderSummary(records, []string{"out/videos.csv", "out/videos.xlsx"}, 90*time.Second)

	for _, want := range []string{"Collection complete", "2", "3", "1m30s", "out/videos.csv", "out/videos.xlsx"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmptyRun(t *testing.T) {
	out := RenderSummary(nil, []string{"out/videos.csv"}, time.Second)
	if !strings.Contains(out, "0") {
		t.Errorf("Empty run should report zero records:\n%s", out)
	}
}

func TestRunProgressCounts(t *testing.T) {
	defer SetQuietMode(false)
	SetQuietMode(true) // keep test output clean

	p := NewRunProgress()
	p.StartAuthor(1, 2, models.AuthorRef{AuthorID: "100", Category: "film"})
	p.Record(models.VideoRecord{Author: "a", Title: "t1", Rank: 1})
	p.Record(models.VideoRecord{Author: "a", Title: "t2", Rank: 2})
	p.FinishAuthor(models.AuthorRef{AuthorID: "100"}, 2)

	authors, records := p.Counts()
	if authors != 1 || records != 2 {
		t.Errorf("Expected 1 author and 2 records, got %d and %d", authors, records)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		45 * time.Second:             "45s",
		3 * time.Minute:              "3m0s",
		90 * time.Second:             "1m30s",
		2*time.Hour + 15*time.Minute: "2h15m",
	}
	for d, want := range cases {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
