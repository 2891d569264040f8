package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/service"
	"github.com/arriendo/lease-engine/pkg/response"
)

type PaymentHandler struct {
	payments *service.PaymentService
	debts    *service.DebtService
	validate *validator.Validate
}

func NewPaymentHandler(payments *service.PaymentService, debts *service.DebtService) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		debts:    debts,
		validate: validator.New(),
	}
}

type createPaymentRequest struct {
	ContractID   string           `json:"contract_id" validate:"required,uuid"`
	ExpectedDate string           `json:"expected_date" validate:"required"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
}

type recordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate *string         `json:"payment_date,omitempty"`
}

type updatePaymentRequest struct {
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	ExpectedDate *string          `json:"expected_date,omitempty"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createPaymentRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	contractID, err := uuid.Parse(body.ContractID)
	if err != nil {
		response.BadRequest(w, "invalid contract_id")
		return
	}
	expectedDate, err := parseDate(body.ExpectedDate)
	if err != nil {
		response.BadRequest(w, "expected_date must be YYYY-MM-DD")
		return
	}

	payment, err := h.payments.Create(r.Context(), &domain.CreatePaymentRequest{
		ContractID:   contractID,
		ExpectedDate: expectedDate,
		TotalAmount:  body.TotalAmount,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, payment)
}

// RecordAbono applies a partial or full payment against an installment.
func (h *PaymentHandler) RecordAbono(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.BadRequest(w, "invalid payment id")
		return
	}

	var body recordPaymentRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	request := &domain.RecordPaymentRequest{Amount: body.Amount}
	if body.PaymentDate != nil {
		paymentDate, err := parseDate(*body.PaymentDate)
		if err != nil {
			response.BadRequest(w, "payment_date must be YYYY-MM-DD")
			return
		}
		request.PaymentDate = &paymentDate
	}

	payment, err := h.payments.RecordPayment(r.Context(), id, request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.BadRequest(w, "invalid payment id")
		return
	}

	var body updatePaymentRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	patch := &domain.UpdatePaymentRequest{TotalAmount: body.TotalAmount}
	if body.ExpectedDate != nil {
		expectedDate, err := parseDate(*body.ExpectedDate)
		if err != nil {
			response.BadRequest(w, "expected_date must be YYYY-MM-DD")
			return
		}
		patch.ExpectedDate = &expectedDate
	}

	payment, err := h.payments.Update(r.Context(), id, patch)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.BadRequest(w, "invalid payment id")
		return
	}

	payment, err := h.payments.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}

func (h *PaymentHandler) ListByContract(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r, "contractId")
	if err != nil {
		response.BadRequest(w, "invalid contract id")
		return
	}

	payments, err := h.payments.ListByContract(r.Context(), contractID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payments)
}

func (h *PaymentHandler) ListByState(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListByState(r.Context(), muxVar(r, "state"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payments)
}

// Search filters payments by contract, state and expected-date range.
func (h *PaymentHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.PaymentFilter{State: query.Get("state")}
	if raw := query.Get("contract_id"); raw != "" {
		contractID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid contract_id")
			return
		}
		filter.ContractID = contractID
	}
	if raw := query.Get("date_from"); raw != "" {
		dateFrom, err := parseDate(raw)
		if err != nil {
			response.BadRequest(w, "date_from must be YYYY-MM-DD")
			return
		}
		filter.DateFrom = dateFrom
	}
	if raw := query.Get("date_to"); raw != "" {
		dateTo, err := parseDate(raw)
		if err != nil {
			response.BadRequest(w, "date_to must be YYYY-MM-DD")
			return
		}
		filter.DateTo = dateTo
	}

	payments, err := h.payments.Search(r.Context(), filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payments)
}

func (h *PaymentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	contractID := uuid.Nil
	if raw := r.URL.Query().Get("contract_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid contract_id")
			return
		}
		contractID = parsed
	}

	stats, err := h.payments.Stats(r.Context(), contractID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, stats)
}

// RunSweep triggers the overdue sweep on demand, mirroring the daily cron.
func (h *PaymentHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.payments.RunOverdueSweep(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *PaymentHandler) DebtByNationalID(w http.ResponseWriter, r *http.Request) {
	nationalID := muxVar(r, "nationalId")
	if nationalID == "" {
		response.BadRequest(w, "national id is required")
		return
	}

	report, err := h.debts.DebtByNationalID(r.Context(), nationalID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, report)
}
