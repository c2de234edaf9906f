package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"biliscraper/pkg/errors"
	"biliscraper/pkg/logger"
	"biliscraper/pkg/models"
)

// columns is the serialization order shared by every format
var columns = []string{"category", "author", "rank", "publish_date", "title", "url"}

// Writer serializes one run's records to tabular files
type Writer struct {
	log logger.Logger
}

// NewWriter creates a new output writer
func NewWriter() *Writer {
	return &Writer{log: logger.GetLogger()}
}

// SetLogger replaces the writer's logger
func (w *Writer) SetLogger(log logger.Logger) {
	w.log = log
}

// Write serializes the same records to every destination, choosing the
// format by extension: .xlsx and .json are recognized, anything else
// is written as CSV. Parent directories are created as needed and
// existing files are overwritten in place. The first failure aborts
// the remaining destinations.
func (w *Writer) Write(records []models.VideoRecord, destinations []string) error {
	for _, dest := range destinations {
		if err := writeOne(records, dest); err != nil {
			return err
		}

		w.log.InfoWithFields("Output written", map[string]interface{}{
			"path":    dest,
			"records": len(records),
			"format":  formatOf(dest),
		})
	}
	return nil
}

// formatOf names the serialization format a destination will get
func formatOf(dest string) string {
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".xlsx":
		return "xlsx"
	case ".json":
		return "json"
	default:
		return "csv"
	}
}

func writeOne(records []models.VideoRecord, dest string) error {
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(errors.KindWrite, err, "create directory for %s", dest)
		}
	}

	switch formatOf(dest) {
	case "xlsx":
		return writeXLSX(records, dest)
	case "json":
		return writeJSON(records, dest)
	default:
		return writeCSV(records, dest)
	}
}

// row flattens a record in column order
func row(record models.VideoRecord) []string {
	return []string{
		record.Category,
		record.Author,
		strconv.Itoa(record.Rank),
		record.PublishDate,
		record.Title,
		record.URL,
	}
}

func writeCSV(records []models.VideoRecord, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(errors.KindWrite, err, "create %s", dest)
	}

	cw := csv.NewWriter(f)
	writeErr := cw.Write(columns)
	for _, record := range records {
		if writeErr != nil {
			break
		}
		writeErr = cw.Write(row(record))
	}
	cw.Flush()
	if writeErr == nil {
		writeErr = cw.Error()
	}

	closeErr := f.Close()
	if writeErr != nil {
		return errors.Wrapf(errors.KindWrite, writeErr, "write %s", dest)
	}
	if closeErr != nil {
		return errors.Wrapf(errors.KindWrite, closeErr, "close %s", dest)
	}
	return nil
}

func writeJSON(records []models.VideoRecord, dest string) error {
	// An empty run still yields a valid document
	if records == nil {
		records = []models.VideoRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.KindWrite, err, "encode %s", dest)
	}
	data = append(data, '\n')

	if err := os.WriteFile(dest, data, 0644); err != nil {
		return errors.Wrapf(errors.KindWrite, err, "write %s", dest)
	}
	return nil
}

func writeXLSX(records []models.VideoRecord, dest string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.Wrapf(errors.KindWrite, err, "address header cell of %s", dest)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return errors.Wrapf(errors.KindWrite, err, "write header of %s", dest)
		}
	}

	for i, record := range records {
		values := []interface{}{
			record.Category,
			record.Author,
			record.Rank,
			record.PublishDate,
			record.Title,
			record.URL,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return errors.Wrapf(errors.KindWrite, err, "address cell of %s", dest)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return errors.Wrapf(errors.KindWrite, err, "write row %d of %s", i+1, dest)
			}
		}
	}

	if err := f.SaveAs(dest); err != nil {
		return errors.Wrapf(errors.KindWrite, err, "save %s", dest)
	}
	return nil
}
