package services

import (
	"context"
	"testing"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	db := newTestDB(t)
	assetSvc := newAssetService(db)
	svc := NewDashboardService(db, repositories.NewAssetHistoryRepository(db))
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{
		EmployeeID: "EMP00001",
		Name:       "Ops Admin",
		Email:      "ops@example.com",
		Password:   "x",
		Role:       models.RoleAdmin,
		IsActive:   true,
	}).Error)
	require.NoError(t, db.Create(&models.Location{Name: "Head Office", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Location{Name: "Closed Site", IsActive: false}).Error)

	seedHolding(t, db, "SN-DASH-01")

	_, err := assetSvc.Create(ctx, &CreateAssetInput{
		Type:         models.TypeLaptop,
		SerialNumber: "SN-DASH-02",
	}, 1)
	require.NoError(t, err)

	_, err = assetSvc.Create(ctx, &CreateAssetInput{
		Type:         models.TypeDesktop,
		SerialNumber: "SN-DASH-03",
		Status:       models.StatusActive,
	}, 1)
	require.NoError(t, err)

	data, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, data.TotalAssets)
	assert.EqualValues(t, 1, data.HoldingAssets)
	assert.EqualValues(t, 1, data.AssignedAssets)
	assert.EqualValues(t, 0, data.RecycledAssets)
	assert.EqualValues(t, 1, data.TotalUsers)
	assert.EqualValues(t, 1, data.TotalLocations)

	// Breakdowns enumerate every category
	assert.Len(t, data.AssetsByType, len(models.AssetTypes()))
	assert.Len(t, data.AssetsByState, len(models.AssetStates()))

	// Both creations show up as recent activity, attributed to the admin
	require.Len(t, data.RecentActivity, 2)
	for _, activity := range data.RecentActivity {
		assert.Equal(t, "Ops Admin", activity.ChangedBy)
		assert.Equal(t, "asset created", activity.Reason)
	}
}

func TestInactiveRowsStayInactive(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Location{Name: "Mothballed", IsActive: false}).Error)
	require.NoError(t, db.Create(&models.Department{Name: "Dissolved", IsActive: false}).Error)

	var loc models.Location
	require.NoError(t, db.Where("name = ?", "Mothballed").First(&loc).Error)
	assert.False(t, loc.IsActive)

	var dept models.Department
	require.NoError(t, db.Where("name = ?", "Dissolved").First(&dept).Error)
	assert.False(t, dept.IsActive)
}

func TestGetDashboard_Empty(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db, repositories.NewAssetHistoryRepository(db))

	data, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, data.TotalAssets)
	assert.Empty(t, data.RecentActivity)
	assert.Len(t, data.AssetsByType, len(models.AssetTypes()))
}
