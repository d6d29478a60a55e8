package zone

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/parkwise/PW-SessionService/internal/domain"
	"github.com/parkwise/PW-SessionService/pkg/dbmetrics"
	"github.com/parkwise/PW-SessionService/pkg/psqlbuilder"
)

var zoneColumns = []string{
	"id",
	"name",
	"hourly_rate",
	"total_slots",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с парковочными зонами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория зон
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает зону по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(zoneColumns...).
		From("zones").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	z, err := scanZone(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan zone: %v", ErrScanRow, err)
	}

	return z, nil
}

// List получает все активные зоны
func (r *Repository) List(ctx context.Context) ([]*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(zoneColumns...).
		From("zones").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	zones := make([]*domain.Zone, 0)
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		zones = append(zones, z)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return zones, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanZone(row rowScanner) (*domain.Zone, error) {
	var z domain.Zone
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&z.ID,
		&z.Name,
		&z.HourlyRate,
		&z.TotalSlots,
		&z.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	z.CreatedAt = createdAt.Time
	z.UpdatedAt = updatedAt.Time

	return &z, nil
}
