package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/repository"
	customError "github.com/arriendo/lease-engine/pkg/errors"
)

// PropertyService handles property records. The availability flag belongs to
// the contract lifecycle and is not patchable here.
type PropertyService struct {
	PropertyRepo repository.PropertyRepository
	Log          zerolog.Logger
}

func NewPropertyService(propertyRepo repository.PropertyRepository, log zerolog.Logger) *PropertyService {
	return &PropertyService{PropertyRepo: propertyRepo, Log: log}
}

func (s *PropertyService) Create(ctx context.Context, request *domain.CreatePropertyRequest) (*domain.Property, error) {
	now := time.Now().UTC()
	property := &domain.Property{
		ID:               uuid.New(),
		Address:          request.Address,
		WaterAccountCode: request.WaterAccountCode,
		GasAccountCode:   request.GasAccountCode,
		PowerAccountCode: request.PowerAccountCode,
		Available:        true,
		Description:      request.Description,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.PropertyRepo.Create(ctx, property); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.Log.Info().Str("property_id", property.ID.String()).Msg("property created")
	return property, nil
}

func (s *PropertyService) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	property, err := s.PropertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if property == nil {
		return nil, customError.WrapPropertyNotFound(id.String())
	}
	return property, nil
}

func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, patch *domain.UpdatePropertyRequest) (*domain.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Address != nil {
		property.Address = *patch.Address
	}
	if patch.WaterAccountCode != nil {
		property.WaterAccountCode = *patch.WaterAccountCode
	}
	if patch.GasAccountCode != nil {
		property.GasAccountCode = *patch.GasAccountCode
	}
	if patch.PowerAccountCode != nil {
		property.PowerAccountCode = *patch.PowerAccountCode
	}
	if patch.Description != nil {
		property.Description = *patch.Description
	}

	if err := s.PropertyRepo.Update(ctx, property); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return property, nil
}
