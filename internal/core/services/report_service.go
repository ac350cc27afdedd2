package services

import (
	"context"
	"time"

	"assetdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ReportService computes read-only aggregates over non-deleted assets
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// TypeCount is one entry of a per-type breakdown
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// StateCount is one entry of a per-state breakdown
type StateCount struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

// YearCount is one entry of a per-creation-year breakdown
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// CountsByType returns asset counts for every known type. Types with no
// matching rows are present with a zero count; callers must not have to
// infer absent categories.
func (s *ReportService) CountsByType(ctx context.Context) ([]TypeCount, error) {
	var rows []TypeCount
	err := s.db.WithContext(ctx).Model(&models.Asset{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int64, len(rows))
	for _, row := range rows {
		byType[row.Type] = row.Count
	}

	counts := make([]TypeCount, 0, len(models.AssetTypes()))
	for _, t := range models.AssetTypes() {
		counts = append(counts, TypeCount{Type: t, Count: byType[t]})
	}
	return counts, nil
}

// CountsByState returns asset counts for every known state, zero counts
// included.
func (s *ReportService) CountsByState(ctx context.Context) ([]StateCount, error) {
	var rows []StateCount
	err := s.db.WithContext(ctx).Model(&models.Asset{}).
		Select("state, COUNT(*) as count").
		Group("state").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byState := make(map[string]int64, len(rows))
	for _, row := range rows {
		byState[row.State] = row.Count
	}

	counts := make([]StateCount, 0, len(models.AssetStates()))
	for _, st := range models.AssetStates() {
		counts = append(counts, StateCount{State: st, Count: byState[st]})
	}
	return counts, nil
}

// CountsByYear returns asset counts grouped by creation year, oldest
// first. Year extraction happens in Go to stay portable across drivers.
func (s *ReportService) CountsByYear(ctx context.Context) ([]YearCount, error) {
	var createdAts []time.Time
	err := s.db.WithContext(ctx).Model(&models.Asset{}).
		Pluck("created_at", &createdAts).Error
	if err != nil {
		return nil, err
	}

	byYear := map[int]int64{}
	minYear, maxYear := 0, 0
	for _, t := range createdAts {
		y := t.Year()
		byYear[y]++
		if minYear == 0 || y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}

	counts := make([]YearCount, 0, len(byYear))
	for y := minYear; y <= maxYear && minYear > 0; y++ {
		counts = append(counts, YearCount{Year: y, Count: byYear[y]})
	}
	return counts, nil
}

// TypeBreakdownByState returns per-type counts restricted to one state,
// with the full enumerated type list and zero counts included.
func (s *ReportService) TypeBreakdownByState(ctx context.Context, state string) ([]TypeCount, error) {
	var rows []TypeCount
	err := s.db.WithContext(ctx).Model(&models.Asset{}).
		Select("type, COUNT(*) as count").
		Where("state = ?", state).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int64, len(rows))
	for _, row := range rows {
		byType[row.Type] = row.Count
	}

	counts := make([]TypeCount, 0, len(models.AssetTypes()))
	for _, t := range models.AssetTypes() {
		counts = append(counts, TypeCount{Type: t, Count: byType[t]})
	}
	return counts, nil
}

// AssetDepreciation is one asset's projected value series
type AssetDepreciation struct {
	AssetID      uint                `json:"asset_id"`
	AssetNumber  *string             `json:"asset_number"`
	Type         string              `json:"type"`
	SerialNumber string              `json:"serial_number"`
	Price        float64             `json:"price"`
	PurchaseYear int                 `json:"purchase_year"`
	Series       []DepreciationPoint `json:"series"`
}

// DepreciationInput configures a depreciation report
type DepreciationInput struct {
	Method            string    `json:"method"`
	Years             int       `json:"years"`
	DecliningPercents []float64 `json:"declining_percents"`
}

// DepreciationReport builds the projected value series for every
// non-deleted asset.
func (s *ReportService) DepreciationReport(ctx context.Context, input *DepreciationInput) ([]AssetDepreciation, error) {
	if input.Years <= 0 {
		input.Years = 4
	}
	if input.Method == "" {
		input.Method = DepreciationStraight
	}

	var assets []*models.Asset
	if err := s.db.WithContext(ctx).Order("asset_number ASC").Find(&assets).Error; err != nil {
		return nil, err
	}

	report := make([]AssetDepreciation, 0, len(assets))
	for _, asset := range assets {
		purchaseYear := asset.PurchaseDate.Year()
		report = append(report, AssetDepreciation{
			AssetID:      asset.ID,
			AssetNumber:  asset.AssetNumber,
			Type:         asset.Type,
			SerialNumber: asset.SerialNumber,
			Price:        asset.PurchasePrice,
			PurchaseYear: purchaseYear,
			Series:       DepreciationSeries(asset.PurchasePrice, purchaseYear, input.Method, input.Years, input.DecliningPercents),
		})
	}
	return report, nil
}
