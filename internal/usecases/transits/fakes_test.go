package transits

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/admin/astro-transits/internal/domain"
)

var errNoData = errors.New("no data for this day")

// fakeEphemeris отдаёт долготы по таблице point -> date -> longitude
type fakeEphemeris struct {
	mu        sync.Mutex
	positions map[string]map[string]float64
	failDays  map[string]bool
	calls     int
	zodiacs   []domain.ZodiacMode

	positionCalls int
}

func newFakeEphemeris() *fakeEphemeris {
	return &fakeEphemeris{
		positions: make(map[string]map[string]float64),
		failDays:  make(map[string]bool),
	}
}

func (f *fakeEphemeris) set(point string, day domain.Date, longitude float64) {
	if f.positions[point] == nil {
		f.positions[point] = make(map[string]float64)
	}
	f.positions[point][day.String()] = longitude
}

func (f *fakeEphemeris) GetLongitude(_ context.Context, point string, date domain.Date, zodiac domain.ZodiacMode) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.zodiacs = append(f.zodiacs, zodiac)

	if f.failDays[date.String()] {
		return 0, errNoData
	}
	days, ok := f.positions[point]
	if !ok {
		return 0, domain.ErrUnknownPoint
	}
	longitude, ok := days[date.String()]
	if !ok {
		return 0, errNoData
	}
	return longitude, nil
}

func (f *fakeEphemeris) GetPositions(_ context.Context, date domain.Date, zodiac domain.ZodiacMode) (*domain.DailyPositions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positionCalls++

	if f.failDays[date.String()] {
		return nil, errNoData
	}
	out := &domain.DailyPositions{Date: date, Zodiac: zodiac, Positions: map[string]domain.PlanetPosition{}}
	for point, days := range f.positions {
		if lon, ok := days[date.String()]; ok {
			out.Positions[point] = domain.PlanetPosition{Longitude: lon}
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(eph *fakeEphemeris) *Service {
	return New(eph, nil, nil, nil, testLogger())
}

// day N-й день января 2025 года
func day(n int) domain.Date {
	return domain.NewDate(2025, 1, n)
}

func nan() float64 {
	return math.NaN()
}
