package chartsController

import "github.com/admin/astro-transits/internal/domain"

type CreateChartReq struct {
	Name   string              `json:"name"`
	Zodiac string              `json:"zodiac"`
	Points domain.LongitudeMap `json:"points"`
}

type CreateChartResp struct {
	ID string `json:"id"`
}

type ListChartsResp struct {
	Charts []*domain.NatalChart `json:"charts"`
}
