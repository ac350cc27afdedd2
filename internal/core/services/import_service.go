package services

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// DefaultImportLocation is the fallback location every imported asset is
// pinned to, regardless of what the file says.
const DefaultImportLocation = "Head Office"

// Import errors
var (
	ErrEmptyImportFile   = errors.New("import file contains no data rows")
	ErrUnsupportedFormat = errors.New("unsupported import format")
)

// ImportService parses CSV/XLSX uploads into holding assets
type ImportService struct {
	holdingRepo  *repositories.HoldingAssetRepository
	locationRepo *repositories.LocationRepository
}

// NewImportService creates a new import service
func NewImportService(
	holdingRepo *repositories.HoldingAssetRepository,
	locationRepo *repositories.LocationRepository,
) *ImportService {
	return &ImportService{
		holdingRepo:  holdingRepo,
		locationRepo: locationRepo,
	}
}

// ImportRow is one parsed input row before validation
type ImportRow struct {
	SerialNumber   string `json:"serial_number"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	PurchasePrice  string `json:"purchase_price"`
	PurchaseDate   string `json:"purchase_date"`
	AssignmentType string `json:"assignment_type"`
}

// ImportResult summarizes a bulk import
type ImportResult struct {
	Imported int                    `json:"imported"`
	Skipped  int                    `json:"skipped"`
	Records  []*models.HoldingAsset `json:"records"`
}

// Parse reads rows from the upload in the given format
func (s *ImportService) Parse(r io.Reader, format string) ([]ImportRow, error) {
	switch strings.ToLower(format) {
	case "csv":
		return s.parseCSV(r)
	case "xlsx":
		return s.parseXLSX(r)
	}
	return nil, ErrUnsupportedFormat
}

// parseCSV reads a CSV upload. The first row is a header; columns are
// matched by name, case-insensitively.
func (s *ImportService) parseCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrEmptyImportFile
	}

	return mapRecords(records), nil
}

// parseXLSX reads the first sheet of an XLSX upload
func (s *ImportService) parseXLSX(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrEmptyImportFile
	}

	return mapRecords(records), nil
}

// mapRecords maps header+data records onto ImportRows by column name
func mapRecords(records [][]string) []ImportRow {
	index := map[string]int{}
	for i, name := range records[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		index[key] = i
	}

	cell := func(row []string, key string) string {
		i, ok := index[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rows := make([]ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, ImportRow{
			SerialNumber:   cell(record, "serial_number"),
			Description:    cell(record, "description"),
			Type:           cell(record, "type"),
			PurchasePrice:  cell(record, "purchase_price"),
			PurchaseDate:   cell(record, "purchase_date"),
			AssignmentType: cell(record, "assignment_type"),
		})
	}
	return rows
}

// BulkImport maps rows to holding assets and inserts them as one batch.
// The import is best effort per row: rows with an unknown type are
// skipped, not rejected, and the remaining valid rows still commit. The
// batch insert itself is a single statement, so a storage failure aborts
// all rows together.
func (s *ImportService) BulkImport(ctx context.Context, rows []ImportRow, targetType string) (*ImportResult, error) {
	fallbackLocationID := s.fallbackLocationID(ctx)

	result := &ImportResult{}
	holdings := make([]*models.HoldingAsset, 0, len(rows))

	for _, row := range rows {
		assetType := row.Type
		if assetType == "" {
			assetType = targetType
		}
		assetType = strings.ToUpper(strings.TrimSpace(assetType))

		if !models.IsValidType(assetType) {
			result.Skipped++
			continue
		}

		assignmentType := strings.ToUpper(strings.TrimSpace(row.AssignmentType))
		if assignmentType != models.AssignmentShared {
			assignmentType = models.AssignmentIndividual
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row.PurchasePrice), 64)
		if err != nil {
			price = 0
		}

		holdings = append(holdings, &models.HoldingAsset{
			Type:           assetType,
			Status:         models.StatusHolding,
			SerialNumber:   row.SerialNumber,
			Description:    row.Description,
			PurchasePrice:  price,
			PurchaseDate:   parseDateOrNow(row.PurchaseDate),
			LocationID:     fallbackLocationID,
			AssignmentType: assignmentType,
		})
	}

	if err := s.holdingRepo.BulkCreate(ctx, holdings); err != nil {
		return nil, err
	}

	result.Imported = len(holdings)
	result.Records = holdings

	log.Printf("✅ Imported %d holding assets (%d rows skipped)", result.Imported, result.Skipped)
	return result, nil
}

// fallbackLocationID resolves the designated import location, nil when
// the seeded row is missing
func (s *ImportService) fallbackLocationID(ctx context.Context) *uint {
	location, err := s.locationRepo.GetByName(ctx, DefaultImportLocation)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Warning: failed to resolve import location: %v", err)
		}
		return nil
	}
	return &location.ID
}
