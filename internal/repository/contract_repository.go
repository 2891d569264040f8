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

	"github.com/arriendo/lease-engine/internal/domain"
)

type contractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) ContractRepository {
	return &contractRepository{db: db}
}

// contractRow carries a contract together with its joined tenant and
// property, scanned via prefixed column aliases.
type contractRow struct {
	domain.Contract
	Tenant   domain.Tenant   `db:"tenant"`
	Property domain.Property `db:"property"`
}

func (row *contractRow) toDomain() *domain.Contract {
	contract := row.Contract
	tenant := row.Tenant
	property := row.Property
	contract.Tenant = &tenant
	contract.Property = &property
	return &contract
}

const contractJoinedSelect = `
	SELECT c.id, c.tenant_id, c.property_id, c.start_date, c.end_date, c.monthly_rent,
		c.state, c.created_at, c.updated_at,
		t.id AS "tenant.id", t.national_id AS "tenant.national_id",
		t.first_names AS "tenant.first_names", t.last_names AS "tenant.last_names",
		t.phone AS "tenant.phone", t.email AS "tenant.email",
		t.address AS "tenant.address", t.city AS "tenant.city",
		t.emergency_contact AS "tenant.emergency_contact",
		t.available_for_lease AS "tenant.available_for_lease", t.active AS "tenant.active",
		t.created_at AS "tenant.created_at", t.updated_at AS "tenant.updated_at",
		p.id AS "property.id", p.address AS "property.address",
		p.water_account_code AS "property.water_account_code",
		p.gas_account_code AS "property.gas_account_code",
		p.power_account_code AS "property.power_account_code",
		p.available AS "property.available", p.description AS "property.description",
		p.created_at AS "property.created_at", p.updated_at AS "property.updated_at"
	FROM contracts c
	JOIN tenants t ON t.id = c.tenant_id
	JOIN properties p ON p.id = c.property_id
`

func (r *contractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	query := `
		INSERT INTO contracts (id, tenant_id, property_id, start_date, end_date, monthly_rent,
			state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		contract.ID,
		contract.TenantID,
		contract.PropertyID,
		contract.StartDate,
		contract.EndDate,
		contract.MonthlyRent,
		contract.State,
		contract.CreatedAt,
		contract.UpdatedAt,
	)

	return err
}

func (r *contractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	query := contractJoinedSelect + ` WHERE c.id = $1`

	var row contractRow
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.toDomain(), nil
}

func (r *contractRepository) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) (*domain.Contract, error) {
	query := `
		SELECT id, tenant_id, property_id, start_date, end_date, monthly_rent, state, created_at, updated_at
		FROM contracts
		WHERE property_id = $1 AND state = $2
	`

	return r.findOne(ctx, query, propertyID, domain.ContractStateActive)
}

func (r *contractRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.Contract, error) {
	query := `
		SELECT id, tenant_id, property_id, start_date, end_date, monthly_rent, state, created_at, updated_at
		FROM contracts
		WHERE tenant_id = $1 AND state = $2
		LIMIT 1
	`

	return r.findOne(ctx, query, tenantID, domain.ContractStateActive)
}

func (r *contractRepository) findOne(ctx context.Context, query string, args ...interface{}) (*domain.Contract, error) {
	var contract domain.Contract
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &contract, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &contract, nil
}

func (r *contractRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Contract, error) {
	query := contractJoinedSelect + ` WHERE c.tenant_id = $1 ORDER BY c.created_at DESC`
	return r.selectJoined(ctx, query, tenantID)
}

func (r *contractRepository) ListActive(ctx context.Context) ([]*domain.Contract, error) {
	query := contractJoinedSelect + ` WHERE c.state = $1 ORDER BY c.created_at DESC`
	return r.selectJoined(ctx, query, domain.ContractStateActive)
}

func (r *contractRepository) ListExpiringWithin(ctx context.Context, from, to time.Time) ([]*domain.Contract, error) {
	query := contractJoinedSelect + `
		WHERE c.state = $1 AND c.end_date BETWEEN $2 AND $3
		ORDER BY c.end_date
	`
	return r.selectJoined(ctx, query, domain.ContractStateActive, from, to)
}

func (r *contractRepository) List(ctx context.Context, filter domain.ContractFilter, offset, limit int) ([]*domain.Contract, int, error) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 8)

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.State != "" {
		addCondition("c.state = $%d", filter.State)
	}
	if filter.TenantID != uuid.Nil {
		addCondition("c.tenant_id = $%d", filter.TenantID)
	}
	if filter.PropertyID != uuid.Nil {
		addCondition("c.property_id = $%d", filter.PropertyID)
	}
	if !filter.StartFrom.IsZero() && !filter.StartTo.IsZero() {
		args = append(args, filter.StartFrom, filter.StartTo)
		conditions = append(conditions, fmt.Sprintf("c.start_date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}
	if !filter.EndFrom.IsZero() && !filter.EndTo.IsZero() {
		args = append(args, filter.EndFrom, filter.EndTo)
		conditions = append(conditions, fmt.Sprintf("c.end_date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM contracts c` + where

	var total int
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	listQuery := contractJoinedSelect + where +
		fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	contracts, err := r.selectJoined(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	return contracts, total, nil
}

func (r *contractRepository) selectJoined(ctx context.Context, query string, args ...interface{}) ([]*domain.Contract, error) {
	var rows []contractRow
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, err
	}

	contracts := make([]*domain.Contract, 0, len(rows))
	for i := range rows {
		contracts = append(contracts, rows[i].toDomain())
	}

	return contracts, nil
}

func (r *contractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	query := `
		UPDATE contracts
		SET tenant_id = $2, property_id = $3, start_date = $4, end_date = $5,
			monthly_rent = $6, state = $7, updated_at = $8
		WHERE id = $1
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		contract.ID,
		contract.TenantID,
		contract.PropertyID,
		contract.StartDate,
		contract.EndDate,
		contract.MonthlyRent,
		contract.State,
		time.Now().UTC(),
	)

	return err
}

func (r *contractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM contracts WHERE id = $1`

	_, err := ext(ctx, r.db).ExecContext(ctx, query, id)
	return err
}
