package domain

import "strconv"

// Aspect именованный угол между двумя точками карты
type Aspect struct {
	Name  string  `json:"name"`
	Angle float64 `json:"angle"`
}

// aspects фиксированная таблица аспектов, порядок важен: он определяет порядок результатов
var aspects = [...]Aspect{
	{Name: "Conjunction", Angle: 0},
	{Name: "Sextile", Angle: 60},
	{Name: "Square", Angle: 90},
	{Name: "Trine", Angle: 120},
	{Name: "Opposition", Angle: 180},
}

// AspectTable возвращает копию таблицы аспектов в объявленном порядке
func AspectTable() []Aspect {
	table := make([]Aspect, len(aspects))
	copy(table, aspects[:])
	return table
}

// AspectByAngle ищет аспект с точно таким углом
func AspectByAngle(angle float64) (Aspect, bool) {
	for _, a := range aspects {
		if a.Angle == angle {
			return a, true
		}
	}
	return Aspect{}, false
}

// AspectLabel имя аспекта для угла из таблицы, иначе сам угол в градусах ("45°")
func AspectLabel(angle float64) string {
	if a, ok := AspectByAngle(angle); ok {
		return a.Name
	}
	return strconv.FormatFloat(angle, 'f', -1, 64) + "°"
}

// AspectMatch найденный аспект транзитной точки к натальной
type AspectMatch struct {
	Transit    string  `json:"transit"`
	Natal      string  `json:"natal"`
	Aspect     string  `json:"aspect"`
	Orb        float64 `json:"orb"`
	TransitDeg float64 `json:"transit_deg"`
	NatalDeg   float64 `json:"natal_deg"`
}

// TransitWindow непрерывный интервал дат, в котором аспект держится в пределах орбиса
type TransitWindow struct {
	TransitPlanet string  `json:"transit_planet"`
	NatalPlanet   string  `json:"natal_planet"`
	Aspect        string  `json:"aspect"`
	StartDate     Date    `json:"start_date"`
	ExactDate     Date    `json:"exact_date"`
	EndDate       Date    `json:"end_date"`
	OrbUsed       float64 `json:"orb_used"`
}

// DefaultTransitPoints транзитные точки пакетного поиска по умолчанию
var DefaultTransitPoints = []string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn"}
