package services

import (
	"context"
	"testing"
	"time"

	"assetdesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAsset(t *testing.T, db *gorm.DB, number, typ, state string, createdAt time.Time) {
	t.Helper()
	asset := &models.Asset{
		AssetNumber:    &number,
		Type:           typ,
		State:          state,
		Status:         models.StatusStock,
		SerialNumber:   "SN-" + number,
		PurchasePrice:  1000,
		PurchaseDate:   createdAt,
		AssignmentType: models.AssignmentIndividual,
		CreatedAt:      createdAt,
	}
	require.NoError(t, db.Create(asset).Error)
}

func TestCountsByType_ZeroCountsIncluded(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	now := time.Now()
	seedAsset(t, db, "IT-1001", models.TypeLaptop, models.StateAvailable, now)
	seedAsset(t, db, "IT-1002", models.TypeLaptop, models.StateIssued, now)
	seedAsset(t, db, "IT-1003", models.TypeMonitor, models.StateAvailable, now)

	counts, err := svc.CountsByType(ctx)
	require.NoError(t, err)

	// Every enumerated type appears even when empty
	require.Len(t, counts, len(models.AssetTypes()))

	byType := map[string]int64{}
	for _, c := range counts {
		byType[c.Type] = c.Count
	}
	assert.EqualValues(t, 2, byType[models.TypeLaptop])
	assert.EqualValues(t, 1, byType[models.TypeMonitor])
	assert.EqualValues(t, 0, byType[models.TypeDesktop])
	assert.EqualValues(t, 0, byType[models.TypeTablet])
}

func TestCountsByState_ZeroCountsIncluded(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	seedAsset(t, db, "IT-2001", models.TypeLaptop, models.StateIssued, time.Now())

	counts, err := svc.CountsByState(ctx)
	require.NoError(t, err)
	require.Len(t, counts, len(models.AssetStates()))

	byState := map[string]int64{}
	for _, c := range counts {
		byState[c.State] = c.Count
	}
	assert.EqualValues(t, 1, byState[models.StateIssued])
	assert.EqualValues(t, 0, byState[models.StateBuilding])
}

func TestCountsByYear(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	seedAsset(t, db, "IT-3001", models.TypeLaptop, models.StateAvailable, time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC))
	seedAsset(t, db, "IT-3002", models.TypeLaptop, models.StateAvailable, time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC))
	seedAsset(t, db, "IT-3003", models.TypeDesktop, models.StateAvailable, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	counts, err := svc.CountsByYear(ctx)
	require.NoError(t, err)

	// The range is continuous: 2023 shows up with a zero count
	require.Len(t, counts, 3)
	assert.Equal(t, YearCount{Year: 2022, Count: 2}, counts[0])
	assert.Equal(t, YearCount{Year: 2023, Count: 0}, counts[1])
	assert.Equal(t, YearCount{Year: 2024, Count: 1}, counts[2])
}

func TestCountsByYear_Empty(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	counts, err := svc.CountsByYear(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestTypeBreakdownByState(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	now := time.Now()
	seedAsset(t, db, "IT-4001", models.TypeLaptop, models.StateIssued, now)
	seedAsset(t, db, "IT-4002", models.TypeLaptop, models.StateAvailable, now)
	seedAsset(t, db, "IT-4003", models.TypeMonitor, models.StateIssued, now)

	counts, err := svc.TypeBreakdownByState(ctx, models.StateIssued)
	require.NoError(t, err)
	require.Len(t, counts, len(models.AssetTypes()))

	byType := map[string]int64{}
	for _, c := range counts {
		byType[c.Type] = c.Count
	}
	assert.EqualValues(t, 1, byType[models.TypeLaptop])
	assert.EqualValues(t, 1, byType[models.TypeMonitor])
	assert.EqualValues(t, 0, byType[models.TypeDesktop])
}

func TestReports_ExcludeSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	seedAsset(t, db, "IT-5001", models.TypeLaptop, models.StateAvailable, time.Now())
	seedAsset(t, db, "IT-5002", models.TypeLaptop, models.StateAvailable, time.Now())
	require.NoError(t, db.Where("asset_number = ?", "IT-5002").Delete(&models.Asset{}).Error)

	counts, err := svc.CountsByType(ctx)
	require.NoError(t, err)

	byType := map[string]int64{}
	for _, c := range counts {
		byType[c.Type] = c.Count
	}
	assert.EqualValues(t, 1, byType[models.TypeLaptop])
}

func TestDepreciationReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	ctx := context.Background()

	seedAsset(t, db, "IT-6001", models.TypeLaptop, models.StateAvailable, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC))

	report, err := svc.DepreciationReport(ctx, &DepreciationInput{})
	require.NoError(t, err)
	require.Len(t, report, 1)

	entry := report[0]
	assert.Equal(t, 2023, entry.PurchaseYear)
	assert.InDelta(t, 1000, entry.Price, 0.001)

	// Defaults: 4-year straight line, series covers purchase year through year 4
	require.Len(t, entry.Series, 5)
	assert.InDelta(t, 1000, entry.Series[0].Value, 0.001)
	assert.InDelta(t, 0, entry.Series[4].Value, 0.001)
}
