package ephemeris

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	ephemerisAdapter "github.com/admin/astro-transits/internal/adapters/secondary/ephemeris"
	"github.com/admin/astro-transits/internal/domain"
	"github.com/admin/astro-transits/internal/ports/cache"
	"github.com/admin/astro-transits/internal/ports/service"
)

// DefaultCacheTTL положения на прошедшую дату не меняются, храним долго
const DefaultCacheTTL = 7 * 24 * time.Hour

// PositionsFetcher источник сырых положений, реализуется HTTP-клиентом эфемерид
type PositionsFetcher interface {
	GetPositions(ctx context.Context, date string, zodiac string) (*ephemerisAdapter.PositionsResponse, error)
}

// Service реализует IEphemerisService: положения берутся из кэша, при промахе из сервиса эфемерид.
// Кэшируется весь день целиком, так что сканирование нескольких пар по одному диапазону
// ходит во внешний сервис один раз на дату.
type Service struct {
	client   PositionsFetcher
	cache    cache.Cache
	cacheTTL time.Duration
	Log      *slog.Logger
}

// New создаёт сервис эфемерид; cache может быть nil
func New(client PositionsFetcher, c cache.Cache, cacheTTL time.Duration, log *slog.Logger) service.IEphemerisService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Service{
		client:   client,
		cache:    c,
		cacheTTL: cacheTTL,
		Log:      log,
	}
}

func cacheKey(date domain.Date, zodiac domain.ZodiacMode) string {
	return fmt.Sprintf("ephemeris:positions:%s:%s", zodiac, date.String())
}

// GetLongitude долгота одной точки на дату
func (s *Service) GetLongitude(ctx context.Context, point string, date domain.Date, zodiac domain.ZodiacMode) (float64, error) {
	positions, err := s.GetPositions(ctx, date, zodiac)
	if err != nil {
		return 0, err
	}
	return positions.Longitude(point)
}

// GetPositions положения всех точек на дату
func (s *Service) GetPositions(ctx context.Context, date domain.Date, zodiac domain.ZodiacMode) (*domain.DailyPositions, error) {
	if !zodiac.IsValid() {
		zodiac = domain.ZodiacTropical
	}
	key := cacheKey(date, zodiac)

	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	resp, err := s.client.GetPositions(ctx, date.String(), string(zodiac))
	if err != nil {
		return nil, fmt.Errorf("failed to get positions for %s (%s): %w", date, zodiac, err)
	}

	positions, err := toDailyPositions(resp, date, zodiac)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, positions)

	return positions, nil
}

func (s *Service) fromCache(ctx context.Context, key string) (*domain.DailyPositions, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.Log.Warn("positions cache get failed", "key", key, "error", err)
		}
		return nil, false
	}

	var positions domain.DailyPositions
	if err := json.Unmarshal([]byte(raw), &positions); err != nil {
		s.Log.Warn("positions cache entry is corrupted, dropping", "key", key, "error", err)
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return &positions, true
}

func (s *Service) toCache(ctx context.Context, key string, positions *domain.DailyPositions) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(positions)
	if err != nil {
		s.Log.Warn("failed to marshal positions for cache", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		s.Log.Warn("positions cache set failed", "key", key, "error", err)
	}
}

// toDailyPositions переводит ответ сервиса в доменную модель.
// Точка без долготы считается непосчитанной, ретроградность выводится из скорости.
func toDailyPositions(resp *ephemerisAdapter.PositionsResponse, date domain.Date, zodiac domain.ZodiacMode) (*domain.DailyPositions, error) {
	if resp == nil {
		return nil, fmt.Errorf("ephemeris returned empty response for %s", date)
	}

	positions := make(map[string]domain.PlanetPosition, len(resp.Positions))
	for name, p := range resp.Positions {
		if p.Error != "" {
			positions[name] = domain.PlanetPosition{Error: p.Error}
			continue
		}
		if p.Longitude == nil || math.IsNaN(*p.Longitude) || math.IsInf(*p.Longitude, 0) {
			positions[name] = domain.PlanetPosition{Error: "longitude is missing"}
			continue
		}

		pos := domain.PlanetPosition{Longitude: *p.Longitude}
		if p.Speed != nil {
			pos.Speed = *p.Speed
			pos.Retrograde = *p.Speed < 0
		} else {
			pos.Retrograde = p.Retrograde
		}
		positions[name] = pos
	}

	return &domain.DailyPositions{
		Date:      date,
		Zodiac:    zodiac,
		Positions: positions,
	}, nil
}
