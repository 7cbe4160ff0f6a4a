package transits

import (
	"context"
	"strings"

	"github.com/admin/astro-transits/internal/domain"
)

const missingBatchFields = "Missing required fields: 'natal_chart' (or 'chart_id'), 'start_date' and 'end_date'"

// PrepareBatch превращает сырой запрос в BatchQuery: достаёт сохранённую карту по chart_id,
// разбирает даты, проверяет длину диапазона и подставляет орбис по умолчанию.
// Режим зодиака берётся из запроса, иначе из сохранённой карты, иначе тропический.
func (s *Service) PrepareBatch(ctx context.Context, req domain.BatchRequest) (domain.BatchQuery, error) {
	if req.StartDate == "" || req.EndDate == "" || (len(req.Natal) == 0 && req.ChartID == "") {
		return domain.BatchQuery{}, domain.NewValidationError(missingBatchFields)
	}

	natal, chartZodiac, err := s.ResolveNatal(ctx, req.Natal, req.ChartID)
	if err != nil {
		return domain.BatchQuery{}, err
	}
	if len(natal) == 0 {
		return domain.BatchQuery{}, domain.NewValidationError(missingBatchFields)
	}
	if err := natal.Validate(); err != nil {
		return domain.BatchQuery{}, err
	}

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return domain.BatchQuery{}, err
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return domain.BatchQuery{}, err
	}
	if err := s.CheckRange(start, end); err != nil {
		return domain.BatchQuery{}, err
	}

	orb := domain.DefaultBatchOrb
	if req.Orb != nil {
		orb = *req.Orb
	}
	if !isFinite(orb) || orb < 0 {
		return domain.BatchQuery{}, domain.NewValidationError("orb must be a non-negative number")
	}

	zodiac := chartZodiac
	if strings.TrimSpace(req.Zodiac) != "" || !zodiac.IsValid() {
		zodiac = domain.ParseZodiacMode(req.Zodiac)
	}

	return domain.BatchQuery{
		Natal:         natal,
		Start:         start,
		End:           end,
		Orb:           orb,
		TransitPoints: req.TransitPlanets,
		Zodiac:        zodiac,
	}, nil
}
