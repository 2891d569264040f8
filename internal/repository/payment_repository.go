package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/arriendo/lease-engine/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, contract_id, total_amount, paid_amount, state, expected_date,
		actual_payment_date, created_at, updated_at`

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, contract_id, total_amount, paid_amount, state, expected_date,
			actual_payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		payment.ID,
		payment.ContractID,
		payment.TotalAmount,
		payment.PaidAmount,
		payment.State,
		payment.ExpectedDate,
		payment.ActualPaymentDate,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var payment domain.Payment
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &payment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) FindByContractAndDate(ctx context.Context, contractID uuid.UUID, date time.Time) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE contract_id = $1 AND expected_date = $2`

	var payment domain.Payment
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &payment, query, contractID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE contract_id = $1 ORDER BY expected_date`
	return r.selectMany(ctx, query, contractID)
}

func (r *paymentRepository) ListByState(ctx context.Context, state string) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE state = $1 ORDER BY expected_date DESC`
	return r.selectMany(ctx, query, state)
}

func (r *paymentRepository) ListOlderThan(ctx context.Context, cutoff time.Time, excludedStates []string) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE expected_date <= $1 AND state <> ALL($2)
		ORDER BY expected_date
	`
	return r.selectMany(ctx, query, cutoff, pq.Array(excludedStates))
}

func (r *paymentRepository) ListDueOn(ctx context.Context, date time.Time) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE expected_date = $1 AND state = $2
		ORDER BY contract_id
	`
	return r.selectMany(ctx, query, date, domain.PaymentStatePending)
}

func (r *paymentRepository) ListByExpectedDateRange(ctx context.Context, from, to time.Time) ([]*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE expected_date BETWEEN $1 AND $2
		ORDER BY expected_date
	`
	return r.selectMany(ctx, query, from, to)
}

func (r *paymentRepository) Search(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.ContractID != uuid.Nil {
		addCondition("contract_id = $%d", filter.ContractID)
	}
	if filter.State != "" {
		addCondition("state = $%d", filter.State)
	}
	if !filter.DateFrom.IsZero() {
		addCondition("expected_date >= $%d", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		addCondition("expected_date <= $%d", filter.DateTo)
	}

	query := `SELECT ` + paymentColumns + ` FROM payments`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY expected_date DESC"

	return r.selectMany(ctx, query, args...)
}

func (r *paymentRepository) selectMany(ctx context.Context, query string, args ...interface{}) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &payments, query, args...); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET total_amount = $2, paid_amount = $3, state = $4, expected_date = $5,
			actual_payment_date = $6, updated_at = $7
		WHERE id = $1
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		payment.ID,
		payment.TotalAmount,
		payment.PaidAmount,
		payment.State,
		payment.ExpectedDate,
		payment.ActualPaymentDate,
		time.Now().UTC(),
	)

	return err
}
