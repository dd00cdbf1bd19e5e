// Package excel imports vocabulary lists from xlsx/csv files and exports
// the current list back to xlsx.
package excel

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/eugendimant/vivalingo/pkg/models"
)

// VocabStore is the slice of the vocab repository the importer needs
type VocabStore interface {
	Upsert(ctx context.Context, item *models.VocabItem) error
	GetByTerm(ctx context.Context, profileID int64, term string) (*models.VocabItem, error)
	List(ctx context.Context, profileID int64, domain, status string) ([]models.VocabItem, error)
}

// ImportConfig defines which columns map to which vocab fields
type ImportConfig struct {
	FilePath           string
	TermColumn         int // 0-based column indexes
	MeaningColumn      int
	ExampleColumn      int
	DomainColumn       int
	RegisterColumn     int
	PartOfSpeechColumn int
	CollocationsColumn int // semicolon-separated in the sheet
	SheetName          string
	StartRow           int // 1-based, rows above are skipped
}

// DefaultImportConfig maps columns A-G in order and skips a header row
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:           path,
		TermColumn:         0,
		MeaningColumn:      1,
		ExampleColumn:      2,
		DomainColumn:       3,
		RegisterColumn:     4,
		PartOfSpeechColumn: 5,
		CollocationsColumn: 6,
		SheetName:          "Sheet1",
		StartRow:           2,
	}
}

// ImportResult summarizes one import run
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// Importer loads vocabulary files into a profile
type Importer struct {
	vocab VocabStore
}

// NewImporter creates an importer over the vocab store
func NewImporter(vocab VocabStore) *Importer {
	return &Importer{vocab: vocab}
}

// Import reads the configured file and upserts its rows. Row-level
// problems are collected in the result; only file-level failures abort.
func (imp *Importer) Import(ctx context.Context, profileID int64, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return imp.importCSV(ctx, profileID, config)
	}
	return imp.importExcel(ctx, profileID, config)
}

func (imp *Importer) importExcel(ctx context.Context, profileID int64, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", config.SheetName, err)
	}
	return imp.processRows(ctx, profileID, config, rows)
}

func (imp *Importer) importCSV(ctx context.Context, profileID int64, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return imp.processRows(ctx, profileID, config, rows)
}

func (imp *Importer) processRows(ctx context.Context, profileID int64, config ImportConfig, rows [][]string) (*ImportResult, error) {
	result := &ImportResult{}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		term := cell(row, config.TermColumn)
		if term == "" {
			result.Skipped++
			continue
		}

		existing, err := imp.vocab.GetByTerm(ctx, profileID, term)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		item := &models.VocabItem{
			ProfileID:    profileID,
			Term:         term,
			Meaning:      cell(row, config.MeaningColumn),
			Example:      cell(row, config.ExampleColumn),
			Domain:       cell(row, config.DomainColumn),
			Register:     cell(row, config.RegisterColumn),
			PartOfSpeech: cell(row, config.PartOfSpeechColumn),
			Collocations: encodeCollocations(cell(row, config.CollocationsColumn)),
		}
		if err := imp.vocab.Upsert(ctx, item); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		if existing != nil {
			result.Updated++
		} else {
			result.Created++
		}
	}
	return result, nil
}

// Export writes the profile's vocabulary to an xlsx file
func (imp *Importer) Export(ctx context.Context, profileID int64, path string) error {
	items, err := imp.vocab.List(ctx, profileID, "", "")
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Vocabulario"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := []interface{}{"Term", "Meaning", "Example", "Domain", "Register", "PartOfSpeech", "Collocations", "Status", "NextReview"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range items {
		nextReview := ""
		if item.NextReview != nil {
			nextReview = *item.NextReview
		}
		row := []interface{}{
			item.Term,
			item.Meaning,
			item.Example,
			item.Domain,
			item.Register,
			item.PartOfSpeech,
			strings.Join(item.CollocationList(), "; "),
			item.Status,
			nextReview,
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save export: %w", err)
	}
	return nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// encodeCollocations turns "a; b; c" into the stored JSON list
func encodeCollocations(raw string) string {
	if raw == "" {
		return "[]"
	}
	var parts []string
	for _, p := range strings.Split(raw, ";") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	encoded, err := json.Marshal(parts)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
