package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"biliscraper/pkg/errors"
	"biliscraper/pkg/logger"
	"biliscraper/pkg/models"
)

func testWriter() *Writer {
	w := NewWriter()
	w.SetLogger(logger.NewNopLogger())
	return w
}

func sampleRecords() []models.VideoRecord {
	return []models.VideoRecord{
		{
			Category:    "film",
			Author:      "木鱼水心",
			Rank:        1,
			PublishDate: "2024-01-02",
			Title:       "First video",
			URL:         "https://www.bilibili.com/video/BV1a",
		},
		{
			Category:    "film",
			Author:      "木鱼水心",
			Rank:        2,
			PublishDate: "2024-01-09",
			Title:       "Second, with comma",
			URL:         "https://www.bilibili.com/video/BV1b",
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
	return rows
}

func TestWriteCSV(t *testing.T) {
	tempDir := t.TempDir()
	dest := filepath.Join(tempDir, "videos.csv")

	if err := testWriter().Write(sampleRecords(), []string{dest}); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	rows := readCSV(t, dest)
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d rows", len(rows))
	}

	wantHeader := []string{"category", "author", "rank", "publish_date", "title", "url"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("Header mismatch: got %v", rows[0])
	}

	wantRow := []string{"film", "木鱼水心", "2", "2024-01-09", "Second, with comma", "https://www.bilibili.com/video/BV1b"}
	if !reflect.DeepEqual(rows[2], wantRow) {
		t.Errorf("Row mismatch: got %v", rows[2])
	}
}

func TestWriteIdenticalCopies(t *testing.T) {
	tempDir := t.TempDir()
	first := filepath.Join(tempDir, "out1.csv")
	second := filepath.Join(tempDir, "sub", "deep", "out2.csv")

	if err := testWriter().Write(sampleRecords(), []string{first, second}); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("Failed to read first copy: %v", err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("Failed to read second copy: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("Destinations received different content")
	}
}

func TestWriteEmptyRecords(t *testing.T) {
	tempDir := t.TempDir()
	csvDest := filepath.Join(tempDir, "empty.csv")
	jsonDest := filepath.Join(tempDir, "empty.json")
	xlsxDest := filepath.Join(tempDir, "empty.xlsx")

	if err := testWriter().Write(nil, []string{csvDest, jsonDest, xlsxDest}); err != nil {
		t.Fatalf("Failed to write empty run: %v", err)
	}

	rows := readCSV(t, csvDest)
	if len(rows) != 1 {
		t.Errorf("Expected header-only CSV, got %d rows", len(rows))
	}

	var decoded []models.VideoRecord
	data, err := os.ReadFile(jsonDest)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Empty JSON output is not a valid array: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("Expected empty array, got %d records", len(decoded))
	}

	f, err := excelize.OpenFile(xlsxDest)
	if err != nil {
		t.Fatalf("Failed to open xlsx: %v", err)
	}
	defer f.Close()
	sheetRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("Failed to read xlsx rows: %v", err)
	}
	if len(sheetRows) != 1 {
		t.Errorf("Expected header-only sheet, got %d rows", len(sheetRows))
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	dest := filepath.Join(tempDir, "videos.json")
	records := sampleRecords()

	if err := testWriter().Write(records, []string{dest}); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read JSON: %v", err)
	}

	var decoded []models.VideoRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to decode JSON: %v", err)
	}
	if !reflect.DeepEqual(records, decoded) {
		t.Errorf("Round trip mismatch: got %+v", decoded)
	}
}

func TestWriteXLSX(t *testing.T) {
	tempDir := t.TempDir()
	dest := filepath.Join(tempDir, "videos.xlsx")

	if err := testWriter().Write(sampleRecords(), []string{dest}); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	f, err := excelize.OpenFile(dest)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "category" || rows[0][5] != "url" {
		t.Errorf("Header mismatch: got %v", rows[0])
	}
	if rows[1][2] != "1" || rows[2][2] != "2" {
		t.Errorf("Rank column mismatch: got %v and %v", rows[1][2], rows[2][2])
	}
	if rows[2][4] != "Second, with comma" {
		t.Errorf("Title mismatch: got %q", rows[2][4])
	}
}

func TestWriteOverwrites(t *testing.T) {
	tempDir := t.TempDir()
	dest := filepath.Join(tempDir, "videos.csv")
	w := testWriter()

	if err := w.Write(sampleRecords(), []string{dest}); err != nil {
		t.Fatalf("Failed initial write: %v", err)
	}
	if err := w.Write(sampleRecords()[:1], []string{dest}); err != nil {
		t.Fatalf("Failed second write: %v", err)
	}

	rows := readCSV(t, dest)
	if len(rows) != 2 {
		t.Errorf("Rerun must replace the file, not append: got %d rows", len(rows))
	}
}

func TestWriteUnknownExtensionFallsBackToCSV(t *testing.T) {
	tempDir := t.TempDir()
	dest := filepath.Join(tempDir, "videos.txt")

	if err := testWriter().Write(sampleRecords(), []string{dest}); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	rows := readCSV(t, dest)
	if len(rows) != 3 {
		t.Errorf("Expected CSV fallback, got %d rows", len(rows))
	}
}

func TestFormatOf(t *testing.T) {
	cases := map[string]string{
		"out/videos.csv":  "csv",
		"out/videos.XLSX": "xlsx",
		"out/videos.json": "json",
		"out/videos.txt":  "csv",
		"videos":          "csv",
	}
	for dest, want := range cases {
		if got := formatOf(dest); got != want {
			t.Errorf("formatOf(%q) = %q, want %q", dest, got, want)
		}
	}
}

func TestWriteFailureAbortsRemaining(t *testing.T) {
	tempDir := t.TempDir()

	// A regular file where a directory is needed makes MkdirAll fail
	blocker := filepath.Join(tempDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker: %v", err)
	}

	bad := filepath.Join(blocker, "out.csv")
	good := filepath.Join(tempDir, "ok.csv")

	err := testWriter().Write(sampleRecords(), []string{bad, good})
	if err == nil {
		t.Fatal("Expected write failure")
	}
	if !errors.IsWrite(err) {
		t.Errorf("Expected a write error, got %v", err)
	}
	if _, statErr := os.Stat(good); !os.IsNotExist(statErr) {
		t.Error("Later destinations must not be written after a failure")
	}
}
