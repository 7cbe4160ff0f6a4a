package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/admin/astro-transits/internal/domain"
)

const positionsWarmerName = "positions-warmer"

// PositionsWarmer прогревается через WarmPositions сервиса транзитов
type PositionsWarmer interface {
	WarmPositions(ctx context.Context, from domain.Date, days int) error
}

// PositionsWarmerJob каждый день в 00:05 UTC прогревает кэш положений на days дней вперёд
type PositionsWarmerJob struct {
	warmer PositionsWarmer
	days   int
	now    func() time.Time
	log    *slog.Logger
}

// NewPositionsWarmer создаёт джобу прогрева кэша эфемерид
func NewPositionsWarmer(warmer PositionsWarmer, days int, log *slog.Logger) *PositionsWarmerJob {
	return &PositionsWarmerJob{
		warmer: warmer,
		days:   days,
		now:    time.Now,
		log:    log,
	}
}

func (j *PositionsWarmerJob) Name() string {
	return positionsWarmerName
}

// NextRun ближайшие 00:05 UTC строго после now
func (j *PositionsWarmerJob) NextRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (j *PositionsWarmerJob) Run(ctx context.Context) error {
	from := domain.DateOf(j.now().UTC())
	j.log.Debug("warming positions cache", "from", from.String(), "days", j.days)
	return j.warmer.WarmPositions(ctx, from, j.days)
}
