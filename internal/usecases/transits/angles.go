package transits

import (
	"math"

	"github.com/admin/astro-transits/internal/domain"
)

// WrappedSeparation кратчайшая дуга между двумя долготами, всегда в [0, 180].
// Значения вне [0, 360) допустимы и приводятся по модулю.
func WrappedSeparation(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b), 360)
	return math.Min(diff, 360-diff)
}

// orbTo отклонение разделения от точного угла аспекта
func orbTo(separation, aspectAngle float64) float64 {
	return math.Abs(separation - aspectAngle)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// MatchAspects перебирает все пары транзит x натал и все аспекты таблицы,
// возвращая каждый аспект с орбисом не больше orbLimit.
// Порядок: транзиты, затем натальные точки (оба в порядке вызывающего), затем таблица аспектов.
// Одна пара может дать несколько совпадений, дедупликации нет.
func MatchAspects(transits, natal domain.LongitudeMap, orbLimit float64) ([]domain.AspectMatch, error) {
	if err := transits.Validate(); err != nil {
		return nil, err
	}
	if err := natal.Validate(); err != nil {
		return nil, err
	}
	if !isFinite(orbLimit) {
		return nil, domain.NewValidationError("orb must be numeric")
	}
	if orbLimit < 0 {
		return nil, domain.NewValidationError("orb must be non-negative")
	}

	table := domain.AspectTable()
	results := make([]domain.AspectMatch, 0)

	for _, t := range transits {
		for _, n := range natal {
			separation := WrappedSeparation(t.Degree, n.Degree)

			for _, aspect := range table {
				orb := orbTo(separation, aspect.Angle)
				if orb > orbLimit {
					continue
				}
				results = append(results, domain.AspectMatch{
					Transit:    t.Name,
					Natal:      n.Name,
					Aspect:     aspect.Name,
					Orb:        round2(orb),
					TransitDeg: round2(t.Degree),
					NatalDeg:   round2(n.Degree),
				})
			}
		}
	}

	return results, nil
}

// MatchAspects см. пакетную функцию MatchAspects
func (s *Service) MatchAspects(transits, natal domain.LongitudeMap, orbLimit float64) ([]domain.AspectMatch, error) {
	return MatchAspects(transits, natal, orbLimit)
}
