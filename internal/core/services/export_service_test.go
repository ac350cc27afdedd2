package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(repositories.NewAssetRepository(db))
	ctx := context.Background()

	now := time.Now()
	seedAsset(t, db, "IT-9001", models.TypeLaptop, models.StateAvailable, now)
	seedAsset(t, db, "IT-9002", models.TypeDesktop, models.StateIssued, now.Add(-time.Hour))

	file, err := svc.Export(ctx, nil, "csv")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "assets-"+time.Now().Format("2006-01-02")+".csv", file.Filename)

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 assets

	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "IT-9001", records[1][0])
	assert.Equal(t, models.TypeLaptop, records[1][1])
	assert.Equal(t, "1000.00", records[1][6])
}

func TestExportCSV_Filtered(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(repositories.NewAssetRepository(db))
	ctx := context.Background()

	now := time.Now()
	seedAsset(t, db, "IT-9101", models.TypeLaptop, models.StateAvailable, now)
	seedAsset(t, db, "IT-9102", models.TypeDesktop, models.StateAvailable, now)

	file, err := svc.Export(ctx, &repositories.AssetFilter{Type: models.TypeDesktop}, "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "IT-9102", records[1][0])
}

func TestExportPDF(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(repositories.NewAssetRepository(db))
	ctx := context.Background()

	seedAsset(t, db, "IT-9201", models.TypeMonitor, models.StateAvailable, time.Now())

	file, err := svc.Export(ctx, nil, "pdf")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF")))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(repositories.NewAssetRepository(db))

	_, err := svc.Export(context.Background(), nil, "xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedExportFormat)
}
