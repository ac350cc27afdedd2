package routes

import (
	"assetdesk/internal/adapters/http/handlers"
	"assetdesk/internal/adapters/http/middleware"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/config"
	"assetdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	historyRepo := repositories.NewAssetHistoryRepository(db)
	holdingRepo := repositories.NewHoldingAssetRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	departmentRepo := repositories.NewDepartmentRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, authService)
	assetService := services.NewAssetService(db, assetRepo, holdingRepo, historyRepo)
	importService := services.NewImportService(holdingRepo, locationRepo)
	exportService := services.NewExportService(assetRepo)
	reportService := services.NewReportService(db)
	chartService := services.NewChartService(reportService, settingRepo)
	dashboardService := services.NewDashboardService(db, historyRepo)
	searchService := services.NewSearchService(assetRepo, userRepo, locationRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService)
	holdingHandler := handlers.NewHoldingHandler(assetService, holdingRepo)
	importHandler := handlers.NewImportHandler(importService)
	exportHandler := handlers.NewExportHandler(exportService)
	reportHandler := handlers.NewReportHandler(reportService, chartService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	searchHandler := handlers.NewSearchHandler(searchService)
	masterHandler := handlers.NewMasterHandler(locationRepo, departmentRepo, settingRepo, chartService)

	// Health check
	app.Get("/health", healthHandler.Health)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Asset routes
	assetRoutes := apiV1.Group("/assets")
	assetRoutes.Use(middleware.AuthMiddleware(cfg))
	setupAssetRoutes(assetRoutes, assetHandler, exportHandler)

	// Holding asset routes
	holdingRoutes := apiV1.Group("/holding-assets")
	holdingRoutes.Use(middleware.AuthMiddleware(cfg))
	setupHoldingRoutes(holdingRoutes, holdingHandler)

	// Import
	apiV1.Post("/import",
		middleware.AuthMiddleware(cfg),
		middleware.ImportRateLimiter(),
		importHandler.Import)

	// Reports
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	setupReportRoutes(reportRoutes, reportHandler)

	// Dashboard
	apiV1.Get("/dashboard",
		middleware.AuthMiddleware(cfg),
		dashboardHandler.GetDashboard)

	// Global search
	apiV1.Get("/search",
		middleware.AuthMiddleware(cfg),
		searchHandler.Search)

	// User management routes (Admin only, except own password)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Master data routes
	masterRoutes := apiV1.Group("/master")
	setupMasterRoutes(masterRoutes, masterHandler, cfg)
}

// setupAuthRoutes configures authentication routes. Token responses must
// never be cached by intermediaries.
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	router.Use(middleware.NoCacheHeaders())

	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupAssetRoutes configures asset lifecycle routes
func setupAssetRoutes(router fiber.Router, handler *handlers.AssetHandler, exportHandler *handlers.ExportHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Post("/export", exportHandler.Export)
	router.Get("/:assetNumber", handler.GetByAssetNumber)
	router.Put("/:id", handler.Update)
	router.Patch("/:id/state", handler.ChangeState)
	router.Delete("/:id", handler.Dispose)
	router.Get("/:id/history", handler.GetHistory)
}

// setupHoldingRoutes configures holding area routes
func setupHoldingRoutes(router fiber.Router, handler *handlers.HoldingHandler) {
	router.Get("/", handler.List)
	router.Post("/assign", handler.Assign)
	router.Delete("/:id", handler.Delete)
}

// setupReportRoutes configures reporting routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/by-type", handler.CountsByType)
	router.Get("/by-state", handler.CountsByState)
	router.Get("/by-state/:state", handler.TypeBreakdownByState)
	router.Get("/by-year", handler.CountsByYear)
	router.Get("/depreciation", handler.Depreciation)
	router.Get("/asset-inventory/chart.png", handler.ChartPNG)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Own password change for any authenticated user
	router.Put("/me/password", handler.ChangePassword)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Get("/", handler.List)
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Get("/:id", handler.GetByID)
	adminRoutes.Put("/:id", handler.Update)
	adminRoutes.Delete("/:id", handler.Delete)
}

// setupMasterRoutes configures master data routes. Reads are public to
// authenticated users and cached; writes are admin only.
func setupMasterRoutes(router fiber.Router, handler *handlers.MasterHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	// Enumerations and reads (cached)
	router.Get("/asset-types", middleware.MasterDataCache(), handler.GetAssetTypes)
	router.Get("/asset-states", middleware.MasterDataCache(), handler.GetAssetStates)
	router.Get("/locations", middleware.MasterDataCache(), handler.ListLocations)
	router.Get("/departments", middleware.MasterDataCache(), handler.ListDepartments)

	// Admin writes
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/locations", handler.CreateLocation)
	adminRoutes.Put("/locations/:id", handler.UpdateLocation)
	adminRoutes.Delete("/locations/:id", handler.DeleteLocation)
	adminRoutes.Post("/departments", handler.CreateDepartment)
	adminRoutes.Put("/departments/:id", handler.UpdateDepartment)
	adminRoutes.Delete("/departments/:id", handler.DeleteDepartment)
	adminRoutes.Get("/settings", handler.ListSettings)
	adminRoutes.Put("/settings", handler.SetSetting)
}
