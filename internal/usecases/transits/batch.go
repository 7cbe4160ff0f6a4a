package transits

import (
	"context"
	"fmt"
	"time"

	"github.com/admin/astro-transits/internal/domain"
)

// ScanAll запускает ScanWindow для каждой комбинации транзитная точка x натальная точка x аспект.
// Кэширования между комбинациями нет: одна и та же пара (точка, день) запрашивается у эфемериды
// для каждой натальной точки и каждого аспекта.
func (s *Service) ScanAll(ctx context.Context, q domain.BatchQuery) ([]domain.TransitWindow, error) {
	if err := q.Natal.Validate(); err != nil {
		return nil, err
	}

	transitPoints := q.TransitPoints
	if len(transitPoints) == 0 {
		transitPoints = domain.DefaultTransitPoints
	}

	started := time.Now()
	results := make([]domain.TransitWindow, 0)
	table := domain.AspectTable()

	for _, transitPoint := range transitPoints {
		for _, natal := range q.Natal {
			for _, aspect := range table {
				window, err := s.ScanWindow(ctx, domain.WindowQuery{
					TransitPoint: transitPoint,
					NatalPoint:   natal.Name,
					NatalDegree:  natal.Degree,
					AspectAngle:  aspect.Angle,
					Orb:          q.Orb,
					Start:        q.Start,
					End:          q.End,
					Zodiac:       q.Zodiac,
				})
				if err != nil {
					return nil, fmt.Errorf("scan %s %s %s: %w", transitPoint, aspect.Name, natal.Name, err)
				}
				if window == nil {
					continue
				}
				window.Aspect = aspect.Name
				results = append(results, *window)
			}
		}
	}

	s.Log.Info("batch transit scan completed",
		"transit_points", len(transitPoints),
		"natal_points", len(q.Natal),
		"days", q.Start.DaysUntil(q.End)+1,
		"windows", len(results),
		"duration", time.Since(started),
	)

	return results, nil
}

// CheckRange проверяет порядок дат и ограничение на длину диапазона
func (s *Service) CheckRange(start, end domain.Date) error {
	if end.Before(start.Time) {
		return domain.NewValidationError("end_date must not be before start_date")
	}
	if s.MaxDays > 0 && start.DaysUntil(end)+1 > s.MaxDays {
		return domain.NewValidationError("date range is too long: at most %d days allowed", s.MaxDays)
	}
	return nil
}
