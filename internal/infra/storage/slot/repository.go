package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/parkwise/PW-SessionService/internal/domain"
	"github.com/parkwise/PW-SessionService/pkg/dbmetrics"
	"github.com/parkwise/PW-SessionService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"zone_id",
	"slot_number",
	"occupied",
	"reserved",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
// Внутри транзакции добавляет FOR UPDATE для блокировки строки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// ClaimFree находит свободный слот зоны с блокировкой строки
// Вызывается только внутри транзакции: блокировка FOR UPDATE защищает
// от выдачи одного слота двум параллельным бронированиям
func (r *Repository) ClaimFree(ctx context.Context, zoneID int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"zone_id": zoneID, "occupied": false, "reserved": false, "active": true}).
		OrderBy("slot_number ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimFree - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoFreeSlot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimFree - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// Reserve помечает слот забронированным (free -> reserved)
func (r *Repository) Reserve(ctx context.Context, id int64) error {
	return r.setFlags(ctx, id, false, true, "Reserve")
}

// MarkOccupied помечает слот занятым (reserved -> occupied)
func (r *Repository) MarkOccupied(ctx context.Context, id int64) error {
	return r.setFlags(ctx, id, true, false, "MarkOccupied")
}

// Release освобождает слот (любое состояние -> free)
func (r *Repository) Release(ctx context.Context, id int64) error {
	return r.setFlags(ctx, id, false, false, "Release")
}

// CountStatesByZone возвращает количество свободных/забронированных/занятых
// активных слотов зоны
func (r *Repository) CountStatesByZone(ctx context.Context, zoneID int64) (free, reserved, occupied int, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*) FILTER (WHERE NOT occupied AND NOT reserved)",
		"COUNT(*) FILTER (WHERE reserved)",
		"COUNT(*) FILTER (WHERE occupied)",
	).
		From("slots").
		Where(squirrel.Eq{"zone_id": zoneID, "active": true}).
		ToSql()

	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: CountStatesByZone - build select query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&free, &reserved, &occupied)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: CountStatesByZone - scan counts: %v", ErrScanRow, err)
	}

	return free, reserved, occupied, nil
}

// setFlags обновляет флаги занятости слота
func (r *Repository) setFlags(ctx context.Context, id int64, occupied, reserved bool, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("occupied", occupied).
		Set("reserved", reserved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.ZoneID,
		&s.SlotNumber,
		&s.Occupied,
		&s.Reserved,
		&s.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
