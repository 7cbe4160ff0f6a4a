package transits

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/google/uuid"
)

const defaultChartsLimit = 100

// CreateChart сохраняет натальную карту
func (s *Service) CreateChart(ctx context.Context, name string, zodiac domain.ZodiacMode, points domain.LongitudeMap) (*domain.NatalChart, error) {
	if s.ChartRepo == nil {
		return nil, domain.ErrChartStorageDisabled
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("chart name is required")
	}
	if len(points) == 0 {
		return nil, domain.NewValidationError("chart must contain at least one point")
	}
	if err := points.Validate(); err != nil {
		return nil, err
	}
	if !zodiac.IsValid() {
		zodiac = domain.ZodiacTropical
	}

	now := time.Now().UTC()
	chart := &domain.NatalChart{
		ID:        uuid.New(),
		Name:      name,
		Zodiac:    zodiac,
		Points:    points,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.ChartRepo.Create(ctx, chart); err != nil {
		return nil, fmt.Errorf("failed to save chart: %w", err)
	}

	s.Log.Info("natal chart saved",
		"chart_id", chart.ID,
		"points", len(points),
		"zodiac", zodiac,
	)

	return chart, nil
}

// GetChart возвращает сохранённую карту
func (s *Service) GetChart(ctx context.Context, id uuid.UUID) (*domain.NatalChart, error) {
	if s.ChartRepo == nil {
		return nil, domain.ErrChartStorageDisabled
	}
	return s.ChartRepo.GetByID(ctx, id)
}

// ListCharts последние сохранённые карты
func (s *Service) ListCharts(ctx context.Context, limit int) ([]*domain.NatalChart, error) {
	if s.ChartRepo == nil {
		return nil, domain.ErrChartStorageDisabled
	}
	if limit <= 0 || limit > defaultChartsLimit {
		limit = defaultChartsLimit
	}
	return s.ChartRepo.List(ctx, limit)
}

// DeleteChart удаляет карту
func (s *Service) DeleteChart(ctx context.Context, id uuid.UUID) error {
	if s.ChartRepo == nil {
		return domain.ErrChartStorageDisabled
	}
	return s.ChartRepo.Delete(ctx, id)
}

// ResolveNatal натальная карта запроса: либо переданная явно, либо сохранённая по chartID
func (s *Service) ResolveNatal(ctx context.Context, natal domain.LongitudeMap, chartID string) (domain.LongitudeMap, domain.ZodiacMode, error) {
	if len(natal) > 0 || chartID == "" {
		return natal, "", nil
	}

	id, err := uuid.Parse(chartID)
	if err != nil {
		return nil, "", domain.NewValidationError("invalid chart_id %q", chartID)
	}

	chart, err := s.GetChart(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return chart.Points, chart.Zodiac, nil
}
