package domain

import "strings"

// ZodiacMode режим зодиака, передаётся в эфемериду явно при каждом запросе
type ZodiacMode string

const (
	ZodiacTropical ZodiacMode = "tropical"
	ZodiacSidereal ZodiacMode = "sidereal" // айанамша Лахири
)

func (z ZodiacMode) IsValid() bool {
	return z == ZodiacTropical || z == ZodiacSidereal
}

// ParseZodiacMode всё, кроме "sidereal", считается тропическим
func ParseZodiacMode(s string) ZodiacMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ZodiacSidereal)) {
		return ZodiacSidereal
	}
	return ZodiacTropical
}

// ZodiacModes все поддерживаемые режимы
func ZodiacModes() []ZodiacMode {
	return []ZodiacMode{ZodiacTropical, ZodiacSidereal}
}
