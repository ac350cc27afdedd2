package services

import (
	"bytes"
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"

	chart "github.com/wcharczuk/go-chart/v2"
)

// DefaultChartCacheMinutes applies when the setting row is missing or
// unparseable
const DefaultChartCacheMinutes = 30

// ChartDataSource provides the aggregate counts a chart renders from
type ChartDataSource interface {
	CountsByType(ctx context.Context) ([]TypeCount, error)
}

// ChartService renders the asset-count bar chart as PNG and caches the
// rendered bytes for a configurable TTL. The cache holds one entry
// guarded by a mutex; concurrent readers inside the TTL window all get
// the same bytes without touching the database.
type ChartService struct {
	data        ChartDataSource
	settingRepo *repositories.SettingRepository

	mu        sync.Mutex
	png       []byte
	expiresAt time.Time
}

// NewChartService creates a new chart service
func NewChartService(data ChartDataSource, settingRepo *repositories.SettingRepository) *ChartService {
	return &ChartService{
		data:        data,
		settingRepo: settingRepo,
	}
}

// TTL returns the configured cache lifetime
func (s *ChartService) TTL(ctx context.Context) time.Duration {
	raw, err := s.settingRepo.Get(ctx, models.SettingChartCacheMinutes, strconv.Itoa(DefaultChartCacheMinutes))
	if err != nil {
		return DefaultChartCacheMinutes * time.Minute
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		minutes = DefaultChartCacheMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// ChartPNG returns the assets-by-type bar chart, re-rendering only when
// the cached copy has expired.
func (s *ChartService) ChartPNG(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.png != nil && time.Now().Before(s.expiresAt) {
		return s.png, nil
	}

	counts, err := s.data.CountsByType(ctx)
	if err != nil {
		return nil, err
	}

	png, err := renderTypeBarChart(counts)
	if err != nil {
		return nil, err
	}

	s.png = png
	s.expiresAt = time.Now().Add(s.TTL(ctx))

	log.Printf("✅ Rendered asset chart (%d bytes, cached until %s)", len(png), s.expiresAt.Format(time.RFC3339))
	return s.png, nil
}

// Invalidate drops the cached chart so the next request re-renders
func (s *ChartService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.png = nil
	s.expiresAt = time.Time{}
}

// renderTypeBarChart draws one bar per asset type
func renderTypeBarChart(counts []TypeCount) ([]byte, error) {
	bars := make([]chart.Value, 0, len(counts))
	maxCount := 1.0
	for _, c := range counts {
		bars = append(bars, chart.Value{
			Label: c.Type,
			Value: float64(c.Count),
		})
		if float64(c.Count) > maxCount {
			maxCount = float64(c.Count)
		}
	}

	graph := chart.BarChart{
		Title:    "Assets by Type",
		Width:    800,
		Height:   400,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxCount},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
