package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/arriendo/lease-engine/internal/domain"
)

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) TenantRepository {
	return &tenantRepository{db: db}
}

const tenantColumns = `id, national_id, first_names, last_names, phone, email, address, city,
		emergency_contact, available_for_lease, active, created_at, updated_at`

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (id, national_id, first_names, last_names, phone, email, address, city,
			emergency_contact, available_for_lease, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		tenant.ID,
		tenant.NationalID,
		tenant.FirstNames,
		tenant.LastNames,
		tenant.Phone,
		tenant.Email,
		tenant.Address,
		tenant.City,
		tenant.EmergencyContact,
		tenant.AvailableForLease,
		tenant.Active,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)

	return err
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *tenantRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE national_id = $1`
	return r.getOne(ctx, query, nationalID)
}

func (r *tenantRepository) GetByEmail(ctx context.Context, email string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *tenantRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &tenant, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &tenant, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		UPDATE tenants
		SET national_id = $2, first_names = $3, last_names = $4, phone = $5, email = $6,
			address = $7, city = $8, emergency_contact = $9, updated_at = $10
		WHERE id = $1
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		tenant.ID,
		tenant.NationalID,
		tenant.FirstNames,
		tenant.LastNames,
		tenant.Phone,
		tenant.Email,
		tenant.Address,
		tenant.City,
		tenant.EmergencyContact,
		time.Now().UTC(),
	)

	return err
}

func (r *tenantRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `UPDATE tenants SET available_for_lease = $2, updated_at = $3 WHERE id = $1`

	_, err := ext(ctx, r.db).ExecContext(ctx, query, id, available, time.Now().UTC())
	return err
}

func (r *tenantRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE tenants SET active = $2, updated_at = $3 WHERE id = $1`

	_, err := ext(ctx, r.db).ExecContext(ctx, query, id, active, time.Now().UTC())
	return err
}
