package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScanReport результат пакетного поиска окон, выгружается в хранилище отчётов
type ScanReport struct {
	ID        uuid.UUID       `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Query     ScanReportQuery `json:"query"`
	Results   []TransitWindow `json:"results"`
}

// ScanReportQuery параметры, с которыми был получен отчёт
type ScanReportQuery struct {
	NatalChart     LongitudeMap `json:"natal_chart"`
	StartDate      Date         `json:"start_date"`
	EndDate        Date         `json:"end_date"`
	Orb            float64      `json:"orb"`
	TransitPlanets []string     `json:"transit_planets"`
	Zodiac         ZodiacMode   `json:"zodiac"`
}

// ScanRequestMessage запрос пакетного поиска, пришедший через Kafka
type ScanRequestMessage struct {
	RequestID      string       `json:"request_id"`
	NatalChart     LongitudeMap `json:"natal_chart,omitempty"`
	ChartID        string       `json:"chart_id,omitempty"`
	StartDate      string       `json:"start_date"`
	EndDate        string       `json:"end_date"`
	Orb            *float64     `json:"orb,omitempty"`
	TransitPlanets []string     `json:"transit_planets,omitempty"`
	Zodiac         string       `json:"zodiac,omitempty"`
}

// ScanResultMessage ответ на ScanRequestMessage
type ScanResultMessage struct {
	RequestID string          `json:"request_id"`
	Results   []TransitWindow `json:"results"`
	Error     string          `json:"error,omitempty"`
}

// WindowQuery параметры поиска окна одного аспекта
type WindowQuery struct {
	TransitPoint string
	NatalPoint   string
	NatalDegree  float64
	AspectAngle  float64
	Orb          float64
	Start        Date
	End          Date
	Zodiac       ZodiacMode
}

// BatchQuery параметры пакетного поиска: транзиты x натальные точки x таблица аспектов
type BatchQuery struct {
	Natal         LongitudeMap
	Start         Date
	End           Date
	Orb           float64
	TransitPoints []string
	Zodiac        ZodiacMode
}

// BatchRequest сырой запрос пакетного поиска с границы (HTTP, Kafka, CLI) до разбора дат и орбиса
type BatchRequest struct {
	Natal          LongitudeMap
	ChartID        string
	StartDate      string
	EndDate        string
	Orb            *float64
	TransitPlanets []string
	Zodiac         string
}

// DefaultBatchOrb орбис пакетного поиска по умолчанию
const DefaultBatchOrb = 2.0

// NewScanReport отчёт по результатам пакетного поиска; пустой список транзитов
// заменяется точками по умолчанию, как при самом поиске
func NewScanReport(q BatchQuery, results []TransitWindow) *ScanReport {
	transitPoints := q.TransitPoints
	if len(transitPoints) == 0 {
		transitPoints = DefaultTransitPoints
	}
	return &ScanReport{
		Query: ScanReportQuery{
			NatalChart:     q.Natal,
			StartDate:      q.Start,
			EndDate:        q.End,
			Orb:            q.Orb,
			TransitPlanets: transitPoints,
			Zodiac:         q.Zodiac,
		},
		Results: results,
	}
}
