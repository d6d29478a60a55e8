package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/parkwise/PW-SessionService/internal/domain"
	"github.com/parkwise/PW-SessionService/pkg/dbmetrics"
	"github.com/parkwise/PW-SessionService/pkg/psqlbuilder"
)

// Колонки parking_sessions в порядке сканирования
var sessionColumns = []string{
	"id",
	"token",
	"vehicle_id",
	"zone_id",
	"slot_id",
	"status",
	"entry_time",
	"exit_time",
	"booking_expiry_time",
	"initial_amount_paid",
	"final_amount_paid",
	"total_amount_paid",
	"payment_status",
	"cancellation_reason",
	"cancellation_type",
	"cancelled_at",
	"refund_amount",
	"refund_status",
	"extension_count",
	"expiry_warning_sent",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с парковочными сессиями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, s *domain.ParkingSession) (*domain.ParkingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_sessions").
		Columns(
			"token",
			"vehicle_id",
			"zone_id",
			"slot_id",
			"status",
			"booking_expiry_time",
			"initial_amount_paid",
			"final_amount_paid",
			"total_amount_paid",
			"payment_status",
			"refund_amount",
			"refund_status",
		).
		Values(
			s.Token,
			s.VehicleID,
			s.ZoneID,
			s.SlotID,
			s.Status,
			s.BookingExpiryTime,
			s.InitialAmountPaid,
			s.FinalAmountPaid,
			s.TotalAmountPaid,
			s.PaymentStatus,
			s.RefundAmount,
			s.RefundStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrDuplicateToken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сессию по ID
// Внутри транзакции добавляет FOR UPDATE для блокировки строки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingSession, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByToken получает сессию по QR-токену
// Внутри транзакции добавляет FOR UPDATE для блокировки строки
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.ParkingSession, error) {
	return r.getOne(ctx, squirrel.Eq{"token": token}, "GetByToken")
}

// GetOpenByVehicle получает незавершённые (reserved/active) сессии автомобиля
// Используется для проверки дубликатов при бронировании
func (r *Repository) GetOpenByVehicle(ctx context.Context, vehicleID int64) ([]*domain.ParkingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	openStatuses := make([]string, len(domain.OpenStatuses))
	for i, s := range domain.OpenStatuses {
		openStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("parking_sessions").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		Where(squirrel.Eq{"status": openStatuses})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByVehicle - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByVehicle - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// GetByVehicle получает историю сессий автомобиля (новые первыми)
func (r *Repository) GetByVehicle(ctx context.Context, vehicleID int64) ([]*domain.ParkingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("parking_sessions").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByVehicle - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVehicle - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// GetExpired получает reserved-сессии с истёкшим сроком брони
// Используется sweep'ом автоотмены; внутри транзакции блокирует строки FOR UPDATE
func (r *Repository) GetExpired(ctx context.Context, now time.Time, limit uint64) ([]*domain.ParkingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("parking_sessions").
		Where(squirrel.Eq{"status": domain.StatusReserved}).
		Where(squirrel.LtOrEq{"booking_expiry_time": now}).
		OrderBy("booking_expiry_time ASC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpired - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpired - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// GetAwaitingExpiryWarning получает reserved-сессии, срок которых истекает
// до threshold и по которым предупреждение ещё не отправлялось
func (r *Repository) GetAwaitingExpiryWarning(ctx context.Context, threshold time.Time) ([]*domain.ParkingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("parking_sessions").
		Where(squirrel.Eq{"status": domain.StatusReserved}).
		Where(squirrel.Eq{"expiry_warning_sent": false}).
		Where(squirrel.LtOrEq{"booking_expiry_time": threshold}).
		OrderBy("booking_expiry_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAwaitingExpiryWarning - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAwaitingExpiryWarning - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// Update сохраняет изменяемые поля сессии
// Инвариант total_amount_paid = initial + final восстанавливается перед каждым сохранением
func (r *Repository) Update(ctx context.Context, s *domain.ParkingSession) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	s.RecalculateTotal()

	query, args, err := psqlbuilder.Update("parking_sessions").
		Set("slot_id", s.SlotID).
		Set("status", s.Status).
		Set("entry_time", s.EntryTime).
		Set("exit_time", s.ExitTime).
		Set("booking_expiry_time", s.BookingExpiryTime).
		Set("initial_amount_paid", s.InitialAmountPaid).
		Set("final_amount_paid", s.FinalAmountPaid).
		Set("total_amount_paid", s.TotalAmountPaid).
		Set("payment_status", s.PaymentStatus).
		Set("cancellation_reason", s.CancellationReason).
		Set("cancellation_type", s.CancellationType).
		Set("cancelled_at", s.CancelledAt).
		Set("refund_amount", s.RefundAmount).
		Set("refund_status", s.RefundStatus).
		Set("extension_count", s.ExtensionCount).
		Set("expiry_warning_sent", s.ExpiryWarningSent).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// getOne получает одну сессию по условию
func (r *Repository) getOne(ctx context.Context, pred squirrel.Eq, op string) (*domain.ParkingSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("parking_sessions").
		Where(pred)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan session: %v", ErrScanRow, op, err)
	}

	return s, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSession сканирует одну строку в доменную модель
func scanSession(row rowScanner) (*domain.ParkingSession, error) {
	var s domain.ParkingSession
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.Token,
		&s.VehicleID,
		&s.ZoneID,
		&s.SlotID,
		&s.Status,
		&s.EntryTime,
		&s.ExitTime,
		&s.BookingExpiryTime,
		&s.InitialAmountPaid,
		&s.FinalAmountPaid,
		&s.TotalAmountPaid,
		&s.PaymentStatus,
		&s.CancellationReason,
		&s.CancellationType,
		&s.CancelledAt,
		&s.RefundAmount,
		&s.RefundStatus,
		&s.ExtensionCount,
		&s.ExpiryWarningSent,
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

// scanSessions сканирует результаты запроса в слайс сессий
func (r *Repository) scanSessions(rows *sql.Rows) ([]*domain.ParkingSession, error) {
	sessions := make([]*domain.ParkingSession, 0)

	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
