package routes

import (
	"net/http/httptest"
	"testing"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/config"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}

	app := fiber.New()
	Setup(app, db, cfg)
	return app
}

func TestRouteSurface(t *testing.T) {
	app := newTestApp(t)

	// Protected routes answer 401 without a token; a 404/405 would mean
	// the route is not registered where documented
	registered := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/assets/export"},
		{"POST", "/api/v1/holding-assets/assign"},
		{"GET", "/api/v1/reports/asset-inventory/chart.png"},
		{"GET", "/api/v1/assets"},
		{"POST", "/api/v1/import"},
		{"GET", "/api/v1/dashboard"},
		{"GET", "/api/v1/search"},
	}
	for _, r := range registered {
		resp, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
	}

	// The old top-level export location no longer exists
	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/export", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealthRouteIsPublic(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthResponsesAreNotCacheable(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/auth/login", nil))
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
}
