package transits

import (
	"context"
	"fmt"

	"github.com/admin/astro-transits/internal/domain"
)

// GetPositions положения всех точек на дату
func (s *Service) GetPositions(ctx context.Context, date domain.Date, zodiac domain.ZodiacMode) (*domain.DailyPositions, error) {
	positions, err := s.Ephemeris.GetPositions(ctx, date, zodiac)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	return positions, nil
}

// WarmPositions заранее запрашивает положения на days дней вперёд в обоих режимах зодиака,
// чтобы кэширующая эфемерида отвечала на поиск окон из кэша
func (s *Service) WarmPositions(ctx context.Context, from domain.Date, days int) error {
	var failed int
	var lastErr error

	for _, zodiac := range domain.ZodiacModes() {
		for i := 0; i <= days; i++ {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("positions warm-up interrupted: %w", err)
			}
			day := from.AddDays(i)
			if _, err := s.Ephemeris.GetPositions(ctx, day, zodiac); err != nil {
				failed++
				lastErr = err
				s.Log.Warn("failed to warm positions",
					"date", day.String(),
					"zodiac", zodiac,
					"error", err,
				)
			}
		}
	}

	if lastErr != nil {
		return fmt.Errorf("positions warm-up failed for %d days: %w", failed, lastErr)
	}

	s.Log.Info("positions warmed up", "from", from.String(), "days", days)
	return nil
}
