package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/service"
	"github.com/arriendo/lease-engine/pkg/response"
)

type ContractHandler struct {
	contracts  *service.ContractService
	schedules  *service.ScheduleService
	expireDays int
	validate   *validator.Validate
}

func NewContractHandler(
	contracts *service.ContractService,
	schedules *service.ScheduleService,
	expireDays int,
) *ContractHandler {
	return &ContractHandler{
		contracts:  contracts,
		schedules:  schedules,
		expireDays: expireDays,
		validate:   validator.New(),
	}
}

type createContractRequest struct {
	TenantID    string          `json:"tenant_id" validate:"required,uuid"`
	PropertyID  string          `json:"property_id" validate:"required,uuid"`
	StartDate   string          `json:"start_date" validate:"required"`
	EndDate     string          `json:"end_date" validate:"required"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" validate:"required"`
	State       string          `json:"state"`
}

type updateContractRequest struct {
	TenantID    *string          `json:"tenant_id,omitempty" validate:"omitempty,uuid"`
	PropertyID  *string          `json:"property_id,omitempty" validate:"omitempty,uuid"`
	StartDate   *string          `json:"start_date,omitempty"`
	EndDate     *string          `json:"end_date,omitempty"`
	MonthlyRent *decimal.Decimal `json:"monthly_rent,omitempty"`
	State       *string          `json:"state,omitempty"`
}

type generatePaymentsRequest struct {
	Months int `json:"months" validate:"required,gt=0"`
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createContractRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	tenantID, err := uuid.Parse(body.TenantID)
	if err != nil {
		response.BadRequest(w, "invalid tenant_id")
		return
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		response.BadRequest(w, "invalid property_id")
		return
	}
	startDate, err := parseDate(body.StartDate)
	if err != nil {
		response.BadRequest(w, "start_date must be YYYY-MM-DD")
		return
	}
	endDate, err := parseDate(body.EndDate)
	if err != nil {
		response.BadRequest(w, "end_date must be YYYY-MM-DD")
		return
	}

	contract, err := h.contracts.Create(r.Context(), &domain.CreateContractRequest{
		TenantID:    tenantID,
		PropertyID:  propertyID,
		StartDate:   startDate,
		EndDate:     endDate,
		MonthlyRent: body.MonthlyRent,
		State:       body.State,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, contract)
}

func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contractId")
	if err != nil {
		response.BadRequest(w, "invalid contract id")
		return
	}

	var body updateContractRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	patch := &domain.UpdateContractRequest{
		MonthlyRent: body.MonthlyRent,
		State:       body.State,
	}

	if body.TenantID != nil {
		tenantID, err := uuid.Parse(*body.TenantID)
		if err != nil {
			response.BadRequest(w, "invalid tenant_id")
			return
		}
		patch.TenantID = &tenantID
	}
	if body.PropertyID != nil {
		propertyID, err := uuid.Parse(*body.PropertyID)
		if err != nil {
			response.BadRequest(w, "invalid property_id")
			return
		}
		patch.PropertyID = &propertyID
	}
	if body.StartDate != nil {
		startDate, err := parseDate(*body.StartDate)
		if err != nil {
			response.BadRequest(w, "start_date must be YYYY-MM-DD")
			return
		}
		patch.StartDate = &startDate
	}
	if body.EndDate != nil {
		endDate, err := parseDate(*body.EndDate)
		if err != nil {
			response.BadRequest(w, "end_date must be YYYY-MM-DD")
			return
		}
		patch.EndDate = &endDate
	}

	contract, err := h.contracts.Update(r.Context(), id, patch)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, contract)
}

func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contractId")
	if err != nil {
		response.BadRequest(w, "invalid contract id")
		return
	}

	if err := h.contracts.Remove(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contractId")
	if err != nil {
		response.BadRequest(w, "invalid contract id")
		return
	}

	contract, err := h.contracts.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, contract)
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := domain.ContractFilter{State: query.Get("state")}
	if raw := query.Get("tenant_id"); raw != "" {
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid tenant_id")
			return
		}
		filter.TenantID = tenantID
	}
	if raw := query.Get("property_id"); raw != "" {
		propertyID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid property_id")
			return
		}
		filter.PropertyID = propertyID
	}
	if from, to := query.Get("start_from"), query.Get("start_to"); from != "" && to != "" {
		startFrom, err1 := parseDate(from)
		startTo, err2 := parseDate(to)
		if err1 != nil || err2 != nil {
			response.BadRequest(w, "start date range must be YYYY-MM-DD")
			return
		}
		filter.StartFrom, filter.StartTo = startFrom, startTo
	}
	if from, to := query.Get("end_from"), query.Get("end_to"); from != "" && to != "" {
		endFrom, err1 := parseDate(from)
		endTo, err2 := parseDate(to)
		if err1 != nil || err2 != nil {
			response.BadRequest(w, "end date range must be YYYY-MM-DD")
			return
		}
		filter.EndFrom, filter.EndTo = endFrom, endTo
	}

	contracts, err := h.contracts.List(r.Context(), filter, page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, contracts)
}

func (h *ContractHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.contracts.ListActive(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, contracts)
}

func (h *ContractHandler) ListExpiring(w http.ResponseWriter, r *http.Request) {
	days := h.expireDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "days must be an integer")
			return
		}
		days = parsed
	}

	contracts, err := h.contracts.ListExpiringWithin(r.Context(), days)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, contracts)
}

func (h *ContractHandler) GeneratePayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "contractId")
	if err != nil {
		response.BadRequest(w, "invalid contract id")
		return
	}

	var body generatePaymentsRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	created, err := h.schedules.GenerateMonthly(r.Context(), id, body.Months)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, created)
}
