package ephemeris

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	ephemerisAdapter "github.com/admin/astro-transits/internal/adapters/secondary/ephemeris"
	"github.com/admin/astro-transits/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/astro-transits/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	resp  *ephemerisAdapter.PositionsResponse
	err   error
	calls int
	last  []string
}

func (f *fakeFetcher) GetPositions(_ context.Context, date string, zodiac string) (*ephemerisAdapter.PositionsResponse, error) {
	f.calls++
	f.last = []string{date, zodiac}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func ptr(v float64) *float64 { return &v }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleResponse() *ephemerisAdapter.PositionsResponse {
	return &ephemerisAdapter.PositionsResponse{
		Date:   "2025-03-01",
		Zodiac: "tropical",
		Positions: map[string]ephemerisAdapter.PointPosition{
			"Sun":     {Longitude: ptr(340.9), Speed: ptr(1.0)},
			"Mercury": {Longitude: ptr(350.1), Speed: ptr(-0.3)},
			"Chiron":  {Error: "file not found"},
			"Lilith":  {},
		},
	}
}

func TestGetLongitude(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	svc := New(fetcher, nil, 0, testLogger())
	date := domain.NewDate(2025, 3, 1)

	lon, err := svc.GetLongitude(context.Background(), "Sun", date, domain.ZodiacTropical)
	require.NoError(t, err)
	assert.Equal(t, 340.9, lon)
	assert.Equal(t, []string{"2025-03-01", "tropical"}, fetcher.last)

	_, err = svc.GetLongitude(context.Background(), "Vulcan", date, domain.ZodiacTropical)
	assert.ErrorIs(t, err, domain.ErrUnknownPoint)

	_, err = svc.GetLongitude(context.Background(), "Chiron", date, domain.ZodiacTropical)
	var pointErr *domain.PointError
	require.ErrorAs(t, err, &pointErr)
	assert.Equal(t, "file not found", pointErr.Reason)

	_, err = svc.GetLongitude(context.Background(), "Lilith", date, domain.ZodiacTropical)
	require.ErrorAs(t, err, &pointErr)
}

func TestGetPositions_Retrograde(t *testing.T) {
	svc := New(&fakeFetcher{resp: sampleResponse()}, nil, 0, testLogger())

	positions, err := svc.GetPositions(context.Background(), domain.NewDate(2025, 3, 1), domain.ZodiacSidereal)
	require.NoError(t, err)
	assert.Equal(t, domain.ZodiacSidereal, positions.Zodiac)
	assert.False(t, positions.Positions["Sun"].Retrograde)
	assert.True(t, positions.Positions["Mercury"].Retrograde)
}

func TestGetPositions_UsesCache(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	c := inmemory.NewCache()
	svc := New(fetcher, c, time.Hour, testLogger())
	date := domain.NewDate(2025, 3, 1)

	for i := 0; i < 3; i++ {
		lon, err := svc.GetLongitude(context.Background(), "Mercury", date, domain.ZodiacTropical)
		require.NoError(t, err)
		assert.Equal(t, 350.1, lon)
	}
	assert.Equal(t, 1, fetcher.calls)

	// другой режим зодиака кэшируется отдельно
	_, err := svc.GetPositions(context.Background(), date, domain.ZodiacSidereal)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestGetPositions_CorruptedCacheEntry(t *testing.T) {
	fetcher := &fakeFetcher{resp: sampleResponse()}
	c := inmemory.NewCache()
	date := domain.NewDate(2025, 3, 1)
	require.NoError(t, c.Set(context.Background(), cacheKey(date, domain.ZodiacTropical), "{broken", 0))

	svc := New(fetcher, c, time.Hour, testLogger())
	_, err := svc.GetPositions(context.Background(), date, domain.ZodiacTropical)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestGetPositions_FetchError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := New(&fakeFetcher{err: boom}, inmemory.NewCache(), time.Hour, testLogger())

	_, err := svc.GetLongitude(context.Background(), "Sun", domain.NewDate(2025, 3, 1), domain.ZodiacTropical)
	assert.ErrorIs(t, err, boom)
}
