// Package importer loads the legacy spreadsheet export (CSV) into the
// database. An import replaces the whole catalogue; Bootstrap runs one only
// when the database is still empty.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

// insertBatchSize keeps each INSERT under SQLite's bind-variable limit.
const insertBatchSize = 30

// ImportCSV replaces the books table with the rows of the CSV file at path.
// Returns the number of imported rows.
func ImportCSV(db *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("CSV file not found: %s", path)
	}
	defer f.Close()

	records, err := parseLibraryCSV(f)
	if err != nil {
		return 0, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.Book{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(&records, insertBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import CSV: %w", err)
	}
	return len(records), nil
}

// Bootstrap imports the CSV at path when one is configured, exists on disk
// and the books table is still empty. Returns the number of imported rows,
// zero when nothing was done.
func Bootstrap(db *gorm.DB, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	if _, err := os.Stat(path); err != nil {
		return 0, nil
	}
	var count int64
	if err := db.Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	return ImportCSV(db, path)
}

func parseLibraryCSV(r io.Reader) ([]entities.Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Build header index map. The first cell may carry a UTF-8 BOM when the
	// file was exported from a spreadsheet tool.
	headerIndex := make(map[string]int)
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	if _, ok := headerIndex["name"]; !ok {
		return nil, fmt.Errorf("missing required header: Name")
	}

	var records []entities.Book
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		title := strings.TrimSpace(getCSVValue(record, headerIndex, "name"))
		if title == "" {
			continue
		}

		book := books.Sanitize(map[string]any{
			"title":             title,
			"author":            getCSVValue(record, headerIndex, "author"),
			"is_series":         getCSVValue(record, headerIndex, "series"),
			"pages":             getCSVValue(record, headerIndex, "# of pages"),
			"language":          getCSVValue(record, headerIndex, "language"),
			"genre":             getCSVValue(record, headerIndex, "genre"),
			"subgenre":          getCSVValue(record, headerIndex, "subgenre"),
			"status":            statusFromRead(getCSVValue(record, headerIndex, "read")),
			"is_owned":          getCSVValue(record, headerIndex, "home?"),
			"is_nonfiction":     getCSVValue(record, headerIndex, "non fiction"),
			"purchase_year":     getCSVValue(record, headerIndex, "purchase year"),
			"purchase_location": getCSVValue(record, headerIndex, "purchase location"),
			"publisher":         getCSVValue(record, headerIndex, "publisher"),
		})
		records = append(records, book)
	}

	return records, nil
}

// statusFromRead maps the spreadsheet's "Read" column onto a status: a truthy
// token means Finished, anything else Not Started.
func statusFromRead(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y":
		return entities.StatusFinished
	}
	return entities.StatusNotStarted
}

// getCSVValue safely extracts a value from a record using the header index.
func getCSVValue(record []string, headerIndex map[string]int, header string) string {
	idx, ok := headerIndex[header]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
