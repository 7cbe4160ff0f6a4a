package usecase

import (
	"context"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/google/uuid"
)

// ITransitUseCase аспекты, окна транзитов и положения планет
type ITransitUseCase interface {
	MatchAspects(transits, natal domain.LongitudeMap, orbLimit float64) ([]domain.AspectMatch, error)
	ScanWindow(ctx context.Context, q domain.WindowQuery) (*domain.TransitWindow, error)
	ScanAll(ctx context.Context, q domain.BatchQuery) ([]domain.TransitWindow, error)
	CheckRange(start, end domain.Date) error
	PrepareBatch(ctx context.Context, req domain.BatchRequest) (domain.BatchQuery, error)
	ResolveNatal(ctx context.Context, natal domain.LongitudeMap, chartID string) (domain.LongitudeMap, domain.ZodiacMode, error)
	ExportReport(ctx context.Context, report *domain.ScanReport) (key string, url string, err error)
	ReportsEnabled() bool
	GetPositions(ctx context.Context, date domain.Date, zodiac domain.ZodiacMode) (*domain.DailyPositions, error)
}

// IChartUseCase сохранённые натальные карты
type IChartUseCase interface {
	CreateChart(ctx context.Context, name string, zodiac domain.ZodiacMode, points domain.LongitudeMap) (*domain.NatalChart, error)
	GetChart(ctx context.Context, id uuid.UUID) (*domain.NatalChart, error)
	ListCharts(ctx context.Context, limit int) ([]*domain.NatalChart, error)
	DeleteChart(ctx context.Context, id uuid.UUID) error
}
