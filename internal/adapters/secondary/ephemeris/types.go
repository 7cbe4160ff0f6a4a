package ephemeris

// PositionsResponse ответ сервиса эфемерид на GET /positions
type PositionsResponse struct {
	Date      string                   `json:"date"`
	Zodiac    string                   `json:"zodiac"`
	Positions map[string]PointPosition `json:"positions"`
	Error     string                   `json:"error,omitempty"`
	RawJSON   string                   `json:"-"` // Оригинальный JSON ответ для логов
}

// PointPosition положение одной точки; Error заполнен, если библиотека эфемерид не посчитала точку
type PointPosition struct {
	Longitude  *float64 `json:"longitude,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
	Retrograde bool     `json:"retrograde"`
	Error      string   `json:"error,omitempty"`
}
