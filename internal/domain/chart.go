package domain

import (
	"time"

	"github.com/google/uuid"
)

// NatalChart сохранённая натальная карта
type NatalChart struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Zodiac    ZodiacMode   `json:"zodiac" db:"zodiac"`
	Points    LongitudeMap `json:"points" db:"-"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}
