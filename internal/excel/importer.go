package excel

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/flashquiz/internal/database"
	"github.com/example/flashquiz/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	FrontColumn      string // Column with the card front text
	BackColumn       string // Column with the card back text
	FrontImageColumn string // Column with the front image path
	BackImageColumn  string // Column with the back image path
	PoolColumn       string // Column with the pool id
	CategoryColumn   string // Column with the category name
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		FrontColumn:      "A",
		BackColumn:       "B",
		FrontImageColumn: "C",
		BackImageColumn:  "D",
		PoolColumn:       "E",
		CategoryColumn:   "F",
		SheetName:        "Sheet1",
		StartRow:         2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed    int
	CategoriesCreated int
	PoolsCreated      int
	Created           int
	Skipped           int
	Errors            []string
}

// Importer loads cards from spreadsheet files into the store.
type Importer struct {
	categories *database.CategoryRepository
	pools      *database.PoolRepository
	cards      *database.CardRepository

	knownCategories map[string]bool
	knownPools      map[int64]bool
}

// NewImporter creates an importer bound to the given store handle.
func NewImporter(store *database.Store) *Importer {
	return &Importer{
		categories:      database.NewCategoryRepository(store),
		pools:           database.NewPoolRepository(store),
		cards:           database.NewCardRepository(store),
		knownCategories: make(map[string]bool),
		knownPools:      make(map[int64]bool),
	}
}

// ImportCards imports cards from an Excel or CSV file
func (im *Importer) ImportCards(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return im.importFromCSV(config)
	}
	return im.importFromExcel(config)
}

// importFromExcel imports cards from an Excel file
func (im *Importer) importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	result := &ImportResult{Errors: make([]string, 0)}

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := im.processRow(row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports cards from a CSV file with the same column layout
func (im *Importer) importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++
		if err := im.processRow(row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow processes a single row from either source
func (im *Importer) processRow(row []string, config ImportConfig, result *ImportResult) error {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	front := cell(config.FrontColumn)
	back := cell(config.BackColumn)
	frontImage := cell(config.FrontImageColumn)
	backImage := cell(config.BackImageColumn)
	poolCell := cell(config.PoolColumn)
	categoryName := cell(config.CategoryColumn)

	// A card needs at least one face value on each side
	if front == "" && frontImage == "" {
		result.Skipped++
		return errors.New("card has no front text or image")
	}
	if back == "" && backImage == "" {
		result.Skipped++
		return errors.New("card has no back text or image")
	}
	if poolCell == "" {
		result.Skipped++
		return errors.New("pool id cannot be empty")
	}
	poolID, err := strconv.ParseInt(poolCell, 10, 64)
	if err != nil {
		result.Skipped++
		return fmt.Errorf("invalid pool id %q", poolCell)
	}

	if categoryName != "" {
		if err := im.ensureCategory(categoryName, result); err != nil {
			return err
		}
	}
	if err := im.ensurePool(poolID, categoryName, result); err != nil {
		return err
	}

	card := models.Card{
		Front:      front,
		Back:       back,
		FrontImage: frontImage,
		BackImage:  backImage,
		PoolID:     sql.NullInt64{Int64: poolID, Valid: true},
	}
	if categoryName != "" {
		card.CategoryName = sql.NullString{String: categoryName, Valid: true}
	}
	if err := im.cards.Create(&card); err != nil {
		return fmt.Errorf("failed to create card: %v", err)
	}
	result.Created++
	return nil
}

// ensureCategory creates the category if this run hasn't seen it and the
// store doesn't have it yet.
func (im *Importer) ensureCategory(name string, result *ImportResult) error {
	if im.knownCategories[name] {
		return nil
	}
	if _, err := im.categories.GetOne(name); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err := im.categories.Create(&models.Category{Name: name}); err != nil {
			return err
		}
		result.CategoriesCreated++
	}
	im.knownCategories[name] = true
	return nil
}

// ensurePool creates the pool if this run hasn't seen it and the store
// doesn't have it yet.
func (im *Importer) ensurePool(id int64, categoryName string, result *ImportResult) error {
	if im.knownPools[id] {
		return nil
	}
	if _, err := im.pools.GetByID(id); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		pool := models.Pool{ID: id}
		if categoryName != "" {
			pool.CategoryName = sql.NullString{String: categoryName, Valid: true}
		}
		if err := im.pools.Create(&pool); err != nil {
			return err
		}
		result.PoolsCreated++
	}
	im.knownPools[id] = true
	return nil
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
