package chartRepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/admin/astro-transits/internal/ports/persistence"
	ports "github.com/admin/astro-transits/internal/ports/repository"
	"github.com/google/uuid"
)

type chartColumns struct {
	TableName string
	ID        string
	Name      string
	Zodiac    string
	Points    string
	CreatedAt string
	UpdatedAt string
}

// chartRow строка таблицы: точки хранятся JSON-объектом в исходном порядке ключей
type chartRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Zodiac    string    `db:"zodiac"`
	Points    []byte    `db:"points"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r chartRow) toDomain() (*domain.NatalChart, error) {
	var points domain.LongitudeMap
	if err := json.Unmarshal(r.Points, &points); err != nil {
		return nil, fmt.Errorf("decode points of chart %s: %w", r.ID, err)
	}
	return &domain.NatalChart{
		ID:        r.ID,
		Name:      r.Name,
		Zodiac:    domain.ParseZodiacMode(r.Zodiac),
		Points:    points,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns chartColumns
}

// New создаёт репозиторий натальных карт
func New(db persistence.Persistence, log *slog.Logger) ports.IChartRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: chartColumns{
			TableName: "natal_charts",
			ID:        "id",
			Name:      "name",
			Zodiac:    "zodiac",
			Points:    "points",
			CreatedAt: "created_at",
			UpdatedAt: "updated_at",
		},
	}
}

func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.Name,
		r.columns.Zodiac,
		r.columns.Points,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

func (r *Repository) insertQuery() string {
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.columns.TableName,
		r.allColumns())
}

func insertArgs(chart *domain.NatalChart) ([]interface{}, error) {
	points, err := json.Marshal(chart.Points)
	if err != nil {
		return nil, fmt.Errorf("encode points: %w", err)
	}
	return []interface{}{
		chart.ID,
		chart.Name,
		string(chart.Zodiac),
		string(points),
		chart.CreatedAt,
		chart.UpdatedAt,
	}, nil
}

// Create сохраняет новую карту
func (r *Repository) Create(ctx context.Context, chart *domain.NatalChart) error {
	args, err := insertArgs(chart)
	if err != nil {
		return err
	}
	if err := r.db.Exec(ctx, r.insertQuery(), args...); err != nil {
		r.Log.Error("failed to create chart", "error", err, "chart_id", chart.ID)
		return fmt.Errorf("failed to create chart: %w", err)
	}
	r.Log.Debug("chart created", "chart_id", chart.ID)
	return nil
}

// GetByID возвращает domain.ErrChartNotFound, если карты нет
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NatalChart, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)

	var row chartRow
	if err := r.db.Get(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChartNotFound
		}
		r.Log.Error("failed to get chart", "error", err, "chart_id", id)
		return nil, fmt.Errorf("failed to get chart: %w", err)
	}
	return row.toDomain()
}

// List последние limit карт, новые первыми
func (r *Repository) List(ctx context.Context, limit int) ([]*domain.NatalChart, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC LIMIT $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.CreatedAt)

	var rows []chartRow
	if err := r.db.Select(ctx, &rows, query, limit); err != nil {
		r.Log.Error("failed to list charts", "error", err)
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}

	charts := make([]*domain.NatalChart, 0, len(rows))
	for _, row := range rows {
		chart, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		charts = append(charts, chart)
	}
	return charts, nil
}

// Delete удаляет карту; domain.ErrChartNotFound, если удалять нечего
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		r.columns.TableName,
		r.columns.ID)

	rowsAffected, err := r.db.ExecWithResult(ctx, query, id)
	if err != nil {
		r.Log.Error("failed to delete chart", "error", err, "chart_id", id)
		return fmt.Errorf("failed to delete chart: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrChartNotFound
	}
	r.Log.Debug("chart deleted", "chart_id", id)
	return nil
}
