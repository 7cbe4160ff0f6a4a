package service

import (
	"context"

	"github.com/admin/astro-transits/internal/domain"
)

// IEphemerisService внешний источник положений планет (оракул эфемерид)
type IEphemerisService interface {
	// GetLongitude долгота точки на дату; domain.ErrUnknownPoint, если точка неизвестна
	GetLongitude(ctx context.Context, point string, date domain.Date, zodiac domain.ZodiacMode) (float64, error)
	GetPositions(ctx context.Context, date domain.Date, zodiac domain.ZodiacMode) (*domain.DailyPositions, error)
}
