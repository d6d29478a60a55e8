package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/parkwise/PW-SessionService/internal/domain"
	"github.com/parkwise/PW-SessionService/pkg/dbmetrics"
	"github.com/parkwise/PW-SessionService/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"session_id",
	"amount",
	"method",
	"type",
	"status",
	"transaction_id",
	"created_at",
}

// Repository репозиторий для работы с платежами
// Таблица append-only: платежи создаются один раз и никогда не изменяются
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает платёж в журнал
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"session_id",
			"amount",
			"method",
			"type",
			"status",
			"transaction_id",
		).
		Values(
			p.SessionID,
			p.Amount,
			p.Method,
			p.Type,
			p.Status,
			p.TransactionID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time

	return p, nil
}

// GetBySession получает все платежи сессии (старые первыми)
func (r *Repository) GetBySession(ctx context.Context, sessionID int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySession - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		var createdAt sql.NullTime

		err := rows.Scan(
			&p.ID,
			&p.SessionID,
			&p.Amount,
			&p.Method,
			&p.Type,
			&p.Status,
			&p.TransactionID,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBySession - scan row: %v", ErrScanRow, err)
		}

		p.CreatedAt = createdAt.Time
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySession - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
