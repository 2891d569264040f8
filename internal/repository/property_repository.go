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

type propertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `
		INSERT INTO properties (id, address, water_account_code, gas_account_code, power_account_code,
			available, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		property.ID,
		property.Address,
		property.WaterAccountCode,
		property.GasAccountCode,
		property.PowerAccountCode,
		property.Available,
		property.Description,
		property.CreatedAt,
		property.UpdatedAt,
	)

	return err
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := `
		SELECT id, address, water_account_code, gas_account_code, power_account_code,
			available, description, created_at, updated_at
		FROM properties
		WHERE id = $1
	`

	var property domain.Property
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &property, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &property, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	query := `
		UPDATE properties
		SET address = $2, water_account_code = $3, gas_account_code = $4, power_account_code = $5,
			description = $6, updated_at = $7
		WHERE id = $1
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		property.ID,
		property.Address,
		property.WaterAccountCode,
		property.GasAccountCode,
		property.PowerAccountCode,
		property.Description,
		time.Now().UTC(),
	)

	return err
}

func (r *propertyRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `UPDATE properties SET available = $2, updated_at = $3 WHERE id = $1`

	_, err := ext(ctx, r.db).ExecContext(ctx, query, id, available, time.Now().UTC())
	return err
}
