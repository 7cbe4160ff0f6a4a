package repository

import (
	"context"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/google/uuid"
)

// IChartRepo интерфейс для работы с сохранёнными натальными картами
type IChartRepo interface {
	Create(ctx context.Context, chart *domain.NatalChart) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NatalChart, error)
	List(ctx context.Context, limit int) ([]*domain.NatalChart, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
