package transits

import (
	"context"
	"math"

	"github.com/admin/astro-transits/internal/domain"
)

// ScanWindow идёт по дням от q.Start до q.End включительно и ищет непрерывный
// интервал, где аспект q.AspectAngle держится в пределах q.Orb.
//
// День, для которого эфемерида вернула ошибку, пропускается без прерывания поиска.
// Поиск останавливается на первом дне выхода из орбиса: второе окно в том же
// диапазоне не ищется. nil, nil означает, что аспект так и не вошёл в орбис.
func (s *Service) ScanWindow(ctx context.Context, q domain.WindowQuery) (*domain.TransitWindow, error) {
	if !isFinite(q.NatalDegree) || !isFinite(q.AspectAngle) {
		return nil, domain.ErrNonNumericDegree
	}
	if !isFinite(q.Orb) || q.Orb < 0 {
		return nil, domain.NewValidationError("orb must be a non-negative number")
	}
	if !q.Zodiac.IsValid() {
		q.Zodiac = domain.ZodiacTropical
	}

	var (
		inWindow    bool
		windowStart domain.Date
		windowEnd   domain.Date
		exactDate   domain.Date
		minOrb      = math.Inf(1)
		haveExact   bool
	)

	for day := q.Start; !day.After(q.End.Time); day = day.AddDays(1) {
		longitude, err := s.lookupLongitude(ctx, q.TransitPoint, day, q.Zodiac)
		if err != nil {
			s.Log.Debug("ephemeris lookup failed, skipping day",
				"point", q.TransitPoint,
				"date", day.String(),
				"zodiac", q.Zodiac,
				"error", err,
			)
			continue
		}

		orbDiff := orbTo(WrappedSeparation(longitude, q.NatalDegree), q.AspectAngle)

		if orbDiff <= q.Orb {
			if !inWindow {
				windowStart = day
				inWindow = true
			}
			if orbDiff < minOrb {
				minOrb = orbDiff
				exactDate = day
				haveExact = true
			}
			windowEnd = day
			continue
		}

		if inWindow {
			break
		}
	}

	if !inWindow || !haveExact {
		return nil, nil
	}

	return &domain.TransitWindow{
		TransitPlanet: q.TransitPoint,
		NatalPlanet:   q.NatalPoint,
		Aspect:        domain.AspectLabel(q.AspectAngle),
		StartDate:     windowStart,
		ExactDate:     exactDate,
		EndDate:       windowEnd,
		OrbUsed:       q.Orb,
	}, nil
}

// lookupLongitude один запрос к эфемериде с ограничением по времени
func (s *Service) lookupLongitude(ctx context.Context, point string, day domain.Date, zodiac domain.ZodiacMode) (float64, error) {
	callCtx := ctx
	if s.OracleTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.OracleTimeout)
		defer cancel()
	}

	longitude, err := s.Ephemeris.GetLongitude(callCtx, point, day, zodiac)
	if err != nil {
		return 0, err
	}
	if !isFinite(longitude) {
		return 0, domain.ErrNonNumericDegree
	}
	return longitude, nil
}
