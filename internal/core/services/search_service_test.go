package services

import (
	"context"
	"testing"
	"time"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSearchService(db *gorm.DB) *SearchService {
	return NewSearchService(
		repositories.NewAssetRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewLocationRepository(db),
	)
}

func TestSearch(t *testing.T) {
	db := newTestDB(t)
	svc := newSearchService(db)
	ctx := context.Background()

	seedAsset(t, db, "ORION-001", models.TypeLaptop, models.StateAvailable, time.Now())
	require.NoError(t, db.Create(&models.User{
		EmployeeID: "EMP00001",
		Name:       "Orion Admin",
		Email:      "orion@example.com",
		Password:   "x",
		Role:       models.RoleUser,
		IsActive:   true,
	}).Error)
	require.NoError(t, db.Create(&models.Location{Name: "Orion Building", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Location{Name: "Warehouse", IsActive: true}).Error)

	results, err := svc.Search(ctx, "orion")
	require.NoError(t, err)

	require.Len(t, results.Assets, 1)
	require.NotNil(t, results.Assets[0].AssetNumber)
	assert.Equal(t, "ORION-001", *results.Assets[0].AssetNumber)

	require.Len(t, results.Users, 1)
	assert.Equal(t, "Orion Admin", results.Users[0].Name)

	require.Len(t, results.Locations, 1)
	assert.Equal(t, "Orion Building", results.Locations[0].Name)
}

func TestSearch_NoMatches(t *testing.T) {
	db := newTestDB(t)
	svc := newSearchService(db)

	results, err := svc.Search(context.Background(), "nothing-matches-this")
	require.NoError(t, err)
	assert.Empty(t, results.Assets)
	assert.Empty(t, results.Users)
	assert.Empty(t, results.Locations)
}

func TestSearch_BlankQuery(t *testing.T) {
	db := newTestDB(t)
	svc := newSearchService(db)

	_, err := svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
