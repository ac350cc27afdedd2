package services

import (
	"context"
	"strings"
	"testing"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newImportService(db *gorm.DB) *ImportService {
	return NewImportService(
		repositories.NewHoldingAssetRepository(db),
		repositories.NewLocationRepository(db),
	)
}

const importCSV = `serial_number,description,type,purchase_price,purchase_date,assignment_type
SN-CSV-01,Dell Latitude,LAPTOP,1200.50,2024-03-01,INDIVIDUAL
SN-CSV-02,Meeting room TV,TELEVISION,800,2024-03-02,SHARED
SN-CSV-03,iPhone 15,MOBILE_PHONE,999,2024-03-03,
`

func TestParseCSV(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	rows, err := svc.Parse(strings.NewReader(importCSV), "csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "SN-CSV-01", rows[0].SerialNumber)
	assert.Equal(t, "Dell Latitude", rows[0].Description)
	assert.Equal(t, "LAPTOP", rows[0].Type)
	assert.Equal(t, "1200.50", rows[0].PurchasePrice)
	assert.Equal(t, "SHARED", rows[1].AssignmentType)
	assert.Empty(t, rows[2].AssignmentType)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	_, err := svc.Parse(strings.NewReader("serial_number,type\n"), "csv")
	assert.ErrorIs(t, err, ErrEmptyImportFile)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)

	_, err := svc.Parse(strings.NewReader("whatever"), "pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBulkImport(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Location{Name: DefaultImportLocation, IsActive: true}).Error)

	rows, err := svc.Parse(strings.NewReader(importCSV), "csv")
	require.NoError(t, err)

	result, err := svc.BulkImport(ctx, rows, "")
	require.NoError(t, err)

	// TELEVISION is not a known type: skipped, the rest still commit
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	var holdings []models.HoldingAsset
	require.NoError(t, db.Find(&holdings).Error)
	require.Len(t, holdings, 2)

	for _, h := range holdings {
		assert.Equal(t, models.StatusHolding, h.Status)
		require.NotNil(t, h.LocationID)
	}

	// Blank assignment type defaults to individual
	assert.Equal(t, models.AssignmentIndividual, holdings[1].AssignmentType)
	assert.InDelta(t, 1200.50, holdings[0].PurchasePrice, 0.001)
}

func TestBulkImport_TargetTypeFallback(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	ctx := context.Background()

	rows := []ImportRow{
		{SerialNumber: "SN-TT-01", Description: "Desktop without type column"},
		{SerialNumber: "SN-TT-02", Type: "laptop"},
	}

	result, err := svc.BulkImport(ctx, rows, "DESKTOP")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Skipped)

	// Types normalize to upper case; missing location seed means nil location
	assert.Equal(t, models.TypeDesktop, result.Records[0].Type)
	assert.Equal(t, models.TypeLaptop, result.Records[1].Type)
	assert.Nil(t, result.Records[0].LocationID)
}

func TestBulkImport_AllRowsSkipped(t *testing.T) {
	db := newTestDB(t)
	svc := newImportService(db)
	ctx := context.Background()

	result, err := svc.BulkImport(ctx, []ImportRow{{SerialNumber: "SN-X", Type: "FRIDGE"}}, "")
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	var count int64
	db.Model(&models.HoldingAsset{}).Count(&count)
	assert.Zero(t, count)
}
