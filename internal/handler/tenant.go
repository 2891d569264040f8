package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/service"
	"github.com/arriendo/lease-engine/pkg/response"
)

type TenantHandler struct {
	tenants  *service.TenantService
	validate *validator.Validate
}

func NewTenantHandler(tenants *service.TenantService) *TenantHandler {
	return &TenantHandler{
		tenants:  tenants,
		validate: validator.New(),
	}
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body domain.CreateTenantRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	tenant, err := h.tenants.Create(r.Context(), &body)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, tenant)
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	tenant, err := h.tenants.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, tenant)
}

func (h *TenantHandler) GetByNationalID(w http.ResponseWriter, r *http.Request) {
	nationalID := muxVar(r, "nationalId")
	if nationalID == "" {
		response.BadRequest(w, "national id is required")
		return
	}

	tenant, err := h.tenants.GetByNationalID(r.Context(), nationalID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, tenant)
}

func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	var body domain.UpdateTenantRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	tenant, err := h.tenants.Update(r.Context(), id, &body)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, tenant)
}

func (h *TenantHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "invalid tenant id")
		return
	}

	var body domain.ActivateTenantRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	tenant, err := h.tenants.Activate(r.Context(), id, *body.Active)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, tenant)
}
