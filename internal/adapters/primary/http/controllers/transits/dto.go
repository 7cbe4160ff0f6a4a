package transitsController

import "github.com/admin/astro-transits/internal/domain"

type AspectsReq struct {
	NatalChart domain.LongitudeMap `json:"natal_chart"`
	Transits   domain.LongitudeMap `json:"transits"`
	Orb        *float64            `json:"orb"`
}

type AspectsResp struct {
	Aspects []domain.AspectMatch `json:"aspects"`
}

// TransitWindowReq натальный градус и угол указателями: отличаем "не передан" от нуля
type TransitWindowReq struct {
	TransitPlanet string   `json:"transit_planet"`
	NatalPlanet   string   `json:"natal_planet"`
	NatalDegree   *float64 `json:"natal_degree"`
	AspectAngle   *float64 `json:"aspect_angle"`
	Orb           *float64 `json:"orb"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Zodiac        string   `json:"zodiac"`
}

type TransitWindowsReq struct {
	NatalChart     domain.LongitudeMap `json:"natal_chart"`
	ChartID        string              `json:"chart_id"`
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date"`
	Orb            *float64            `json:"orb"`
	TransitPlanets []string            `json:"transit_planets"`
	Zodiac         string              `json:"zodiac"`
	Export         bool                `json:"export"`
}

type TransitWindowsResp struct {
	Results   []domain.TransitWindow `json:"results"`
	ReportKey string                 `json:"report_key,omitempty"`
	ReportURL string                 `json:"report_url,omitempty"`
}

type MessageResp struct {
	Message string `json:"message"`
}

// PositionResp положение точки в ответе /transit, числа с 4 знаками
type PositionResp struct {
	Longitude  *float64 `json:"longitude,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
	Retrograde *bool    `json:"retrograde,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type PositionsResp struct {
	Date      string                  `json:"date"`
	Zodiac    domain.ZodiacMode       `json:"zodiac"`
	Positions map[string]PositionResp `json:"positions"`
}
