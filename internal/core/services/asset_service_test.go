package services

import (
	"context"
	"testing"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newAssetService(db *gorm.DB) *AssetService {
	return NewAssetService(
		db,
		repositories.NewAssetRepository(db),
		repositories.NewHoldingAssetRepository(db),
		repositories.NewAssetHistoryRepository(db),
	)
}

func seedHolding(t *testing.T, db *gorm.DB, serial string) *models.HoldingAsset {
	t.Helper()
	holding := &models.HoldingAsset{
		Type:           models.TypeLaptop,
		Status:         models.StatusHolding,
		SerialNumber:   serial,
		Description:    "Test laptop",
		PurchasePrice:  1200,
		AssignmentType: models.AssignmentIndividual,
	}
	require.NoError(t, db.Create(holding).Error)
	return holding
}

func TestAssignHoldingAsset(t *testing.T) {
	db := newTestDB(t)
	svc := newAssetService(db)
	ctx := context.Background()

	holding := seedHolding(t, db, "SN-1001")

	asset, err := svc.AssignHoldingAsset(ctx, &AssignHoldingInput{
		HoldingAssetID: holding.ID,
		AssetNumber:    "IT-0001",
		Type:           models.TypeLaptop,
		UserID:         1,
	})
	require.NoError(t, err)
	require.NotNil(t, asset.AssetNumber)

	assert.Equal(t, "IT-0001", *asset.AssetNumber)
	assert.Equal(t, models.StateAvailable, asset.State)
	assert.Equal(t, models.StatusStock, asset.Status)
	assert.Equal(t, "SN-1001", asset.SerialNumber)

	// Holding row is gone
	var holdingCount int64
	db.Model(&models.HoldingAsset{}).Count(&holdingCount)
	assert.Zero(t, holdingCount)

	// Exactly one asset and one audit row
	var assetCount int64
	db.Model(&models.Asset{}).Count(&assetCount)
	assert.EqualValues(t, 1, assetCount)

	var history []models.AssetHistory
	require.NoError(t, db.Where("asset_id = ?", asset.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].PreviousState)
	assert.Equal(t, models.StateAvailable, history[0].NewState)
	assert.Equal(t, ReasonAssignedFromHolding, history[0].ChangeReason)
}

func TestAssignHoldingAsset_DuplicateAssetNumber(t *testing.T) {
	db := newTestDB(t)
	svc := newAssetService(db)
	ctx := context.Background()

	first := seedHolding(t, db, "SN-2001")
	_, err := svc.AssignHoldingAsset(ctx, &AssignHoldingInput{
		HoldingAssetID: first.ID,
		AssetNumber:    "IT-0002",
		Type:           models.TypeLaptop,
	})
	require.NoError(t, err)

	second := seedHolding(t, db, "SN-2002")
	_, err = svc.AssignHoldingAsset(ctx, &AssignHoldingInput{
		HoldingAssetID: second.ID,
		AssetNumber:    "IT-0002",
		Type:           models.TypeLaptop,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAssetNumber)

	// Rejection leaves the second holding untouched and no partial writes
	var holdingCount, assetCount int64
	db.Model(&models.HoldingAsset{}).Count(&holdingCount)
	db.Model(&models.Asset{}).Count(&assetCount)
	assert.EqualValues(t, 1, holdingCount)
	assert.EqualValues(t, 1, assetCount)
}

func TestAssignHoldingAsset_DuplicateSerialNumber(t *testing.T) {
	db := newTestDB(t)
	svc := newAssetService(db)
	ctx := context.Background()

	first := seedHolding(t, db, "SN-3001")
	_, err := svc.AssignHoldingAsset(ctx, &AssignHoldingInput{
		HoldingAssetID: first.ID,
		AssetNumber:    "IT-0003",
		Type:           models.TypeLaptop,
	})
	require.NoError(t, err)

	second := seedHolding(t, db, "SN-3001")
	_, err = svc.AssignHoldingAsset(ctx, &AssignHoldingInput{
		HoldingAssetID: second.ID,
		AssetNumber:    "IT-0004",
		Type:           models.TypeLaptop,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSerialNumber)
}

func TestAssignHoldingAsset_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newAssetService(db)
	ctx := context.Background()

	holding := seedHolding(t, db, "SN-4001")

	_, err := svc.AssignHoldingAsset(ctx, &AssignHoldingInput{
		HoldingAssetID: holding.ID,
		AssetNumber:    "",
		Type:           models.TypeLaptop,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AssignHoldingAsset(ctx, &AssignHoldingInput{
		HoldingAssetID: holding.ID,
		AssetNumber:    "IT-0005",
		Type:           "TOASTER",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAssetType)

	_, err = svc.AssignHoldingAsset(ctx, &AssignHoldingInput{
		HoldingAssetID: holding.ID + 99,
		AssetNumber:    "IT-0005",
		Type:           models.TypeLaptop,
	})
	assert.ErrorIs(t, err, domain.ErrHoldingAssetNotFound)
}

func TestCreateAsset_Defaults(t *testing.T) {
	db := newTestDB(t)
	svc := newAssetService(db)
	ctx := context.Background()

	asset, err := svc.Create(ctx, &CreateAssetInput{
		Type:         models.TypeDesktop,
		SerialNumber: "SN-5001",
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, models.StateAvailable, asset.State)
	assert.Equal(t, models.StatusStock, asset.Status)
	assert.Equal(t, models.AssignmentIndividual, asset.AssignmentType)
	assert.False(t, asset.PurchaseDate.IsZero())
}

func TestChangeState(t *testing.T) {
	db := newTestDB(t)
	svc := newAssetService(db)
	ctx := context.Background()

	asset, err := svc.Create(ctx, &CreateAssetInput{
		Type:         models.TypeMonitor,
		SerialNumber: "SN-6001",
	}, 1)
	require.NoError(t, err)

	updated, err := svc.ChangeState(ctx, asset.ID, &ChangeStateInput{
		State:  models.StateIssued,
		Reason: "handed to new starter",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StateIssued, updated.State)

	// Any known state may follow any other
	updated, err = svc.ChangeState(ctx, asset.ID, &ChangeStateInput{State: models.StateBuilding}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StateBuilding, updated.State)

	_, err = svc.ChangeState(ctx, asset.ID, &ChangeStateInput{State: "UNKNOWN"}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidAssetState)

	history, err := svc.GetHistory(ctx, asset.ID)
	require.NoError(t, err)
	require.Len(t, history, 3) // create + two transitions

	// Newest first, previous state recorded
	require.NotNil(t, history[0].PreviousState)
	assert.Equal(t, models.StateIssued, *history[0].PreviousState)
	assert.Equal(t, models.StateBuilding, history[0].NewState)
}

func TestDispose(t *testing.T) {
	db := newTestDB(t)
	svc := newAssetService(db)
	ctx := context.Background()

	asset, err := svc.Create(ctx, &CreateAssetInput{
		Type:         models.TypeTablet,
		SerialNumber: "SN-7001",
	}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Dispose(ctx, asset.ID, 1, "end of life"))

	// Soft deleted: gone from default queries
	_, err = svc.GetByID(ctx, asset.ID)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)

	// The row survives with recycled status for the audit trail
	var raw models.Asset
	require.NoError(t, db.Unscoped().First(&raw, asset.ID).Error)
	assert.Equal(t, models.StatusRecycled, raw.Status)
	assert.NotZero(t, raw.DeletedAt)
}

func TestDispose_FreesNumbersForReuse(t *testing.T) {
	db := newTestDB(t)
	svc := newAssetService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateAssetInput{
		AssetNumber:  "IT-7101",
		Type:         models.TypeLaptop,
		SerialNumber: "SN-7101",
	}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Dispose(ctx, first.ID, 1, "end of life"))

	// Uniqueness is scoped to live rows: a disposed asset's serial and
	// number are free again
	second, err := svc.Create(ctx, &CreateAssetInput{
		AssetNumber:  "IT-7101",
		Type:         models.TypeLaptop,
		SerialNumber: "SN-7101",
	}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// Both rows exist underneath, one live and one recycled
	var total int64
	db.Unscoped().Model(&models.Asset{}).Where("serial_number = ?", "SN-7101").Count(&total)
	assert.EqualValues(t, 2, total)
}

func TestListAssets_Filtering(t *testing.T) {
	db := newTestDB(t)
	svc := newAssetService(db)
	ctx := context.Background()

	for i, typ := range []string{models.TypeLaptop, models.TypeLaptop, models.TypeDesktop} {
		_, err := svc.Create(ctx, &CreateAssetInput{
			Type:         typ,
			SerialNumber: "SN-80" + string(rune('0'+i)),
		}, 1)
		require.NoError(t, err)
	}

	result, err := svc.List(ctx, &ListInput{
		Page:   1,
		Limit:  10,
		Filter: &repositories.AssetFilter{Type: models.TypeLaptop},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)
	assert.Len(t, result.Assets, 2)
}
