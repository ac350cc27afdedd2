package services

import (
	"context"
	"time"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db          *gorm.DB
	historyRepo *repositories.AssetHistoryRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, historyRepo *repositories.AssetHistoryRepository) *DashboardService {
	return &DashboardService{db: db, historyRepo: historyRepo}
}

// DashboardData represents dashboard data
type DashboardData struct {
	// Asset statistics
	TotalAssets    int64 `json:"total_assets"`
	HoldingAssets  int64 `json:"holding_assets"`
	AssignedAssets int64 `json:"assigned_assets"`
	RecycledAssets int64 `json:"recycled_assets"`

	// Directory statistics
	TotalUsers     int64 `json:"total_users"`
	TotalLocations int64 `json:"total_locations"`

	// Breakdowns, zero counts included
	AssetsByType  []TypeCount  `json:"assets_by_type"`
	AssetsByState []StateCount `json:"assets_by_state"`

	// Recent activity
	RecentActivity []ActivityInfo `json:"recent_activity"`
}

// ActivityInfo is one recent audit trail entry with display names resolved
type ActivityInfo struct {
	ID          uint      `json:"id"`
	AssetID     uint      `json:"asset_id"`
	AssetNumber string    `json:"asset_number"`
	NewState    string    `json:"new_state"`
	Reason      string    `json:"reason"`
	ChangedBy   string    `json:"changed_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetDashboard returns the operational overview
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}

	// Asset counts. The assets table soft deletes via a unix timestamp
	// (0 = live), not a nullable column.
	s.db.WithContext(ctx).Table("assets").Where("deleted_at = 0").Count(&data.TotalAssets)
	s.db.WithContext(ctx).Table("holding_assets").Count(&data.HoldingAssets)
	s.db.WithContext(ctx).Table("assets").
		Where("status = ? AND deleted_at = 0", models.StatusActive).
		Count(&data.AssignedAssets)
	// Recycled assets are soft deleted by disposal, so this count must
	// not filter on deleted_at.
	s.db.WithContext(ctx).Table("assets").
		Where("status = ?", models.StatusRecycled).
		Count(&data.RecycledAssets)

	// Directory counts
	s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers)
	s.db.WithContext(ctx).Table("locations").
		Where("is_active = ? AND deleted_at IS NULL", true).
		Count(&data.TotalLocations)

	// Breakdowns reuse the report aggregation so both surfaces enumerate
	// the same category lists
	reports := NewReportService(s.db)
	byType, err := reports.CountsByType(ctx)
	if err != nil {
		return nil, err
	}
	data.AssetsByType = byType

	byState, err := reports.CountsByState(ctx)
	if err != nil {
		return nil, err
	}
	data.AssetsByState = byState

	// Recent activity
	history, err := s.historyRepo.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}

	data.RecentActivity = make([]ActivityInfo, len(history))
	for i, h := range history {
		info := ActivityInfo{
			ID:        h.ID,
			AssetID:   h.AssetID,
			NewState:  h.NewState,
			Reason:    h.ChangeReason,
			ChangedBy: "System",
			CreatedAt: h.CreatedAt,
		}
		if h.Asset != nil && h.Asset.AssetNumber != nil {
			info.AssetNumber = *h.Asset.AssetNumber
		}
		if h.User != nil {
			info.ChangedBy = h.User.Name
		}
		data.RecentActivity[i] = info
	}

	return data, nil
}
