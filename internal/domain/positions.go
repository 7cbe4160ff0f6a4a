package domain

// PlanetPosition положение точки на дату по данным эфемериды
type PlanetPosition struct {
	Longitude  float64 `json:"longitude"`
	Speed      float64 `json:"speed"`
	Retrograde bool    `json:"retrograde"`
	Error      string  `json:"error,omitempty"` // эфемерида не смогла посчитать точку
}

// DailyPositions положения всех точек на календарный день
type DailyPositions struct {
	Date      Date                      `json:"date"`
	Zodiac    ZodiacMode                `json:"zodiac"`
	Positions map[string]PlanetPosition `json:"positions"`
}

// Longitude долгота точки; ErrUnknownPoint, если точки нет или эфемерида вернула по ней ошибку
func (d *DailyPositions) Longitude(point string) (float64, error) {
	pos, ok := d.Positions[point]
	if !ok {
		return 0, ErrUnknownPoint
	}
	if pos.Error != "" {
		return 0, &PointError{Point: point, Reason: pos.Error}
	}
	return pos.Longitude, nil
}

// PointError эфемерида знает точку, но не посчитала её на эту дату
type PointError struct {
	Point  string
	Reason string
}

func (e *PointError) Error() string {
	return "ephemeris failed for " + e.Point + ": " + e.Reason
}
