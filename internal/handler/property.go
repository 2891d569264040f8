package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/arriendo/lease-engine/internal/domain"
	"github.com/arriendo/lease-engine/internal/service"
	"github.com/arriendo/lease-engine/pkg/response"
)

type PropertyHandler struct {
	properties *service.PropertyService
	validate   *validator.Validate
}

func NewPropertyHandler(properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		validate:   validator.New(),
	}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body domain.CreatePropertyRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	property, err := h.properties.Create(r.Context(), &body)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, property)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "propertyId")
	if err != nil {
		response.BadRequest(w, "invalid property id")
		return
	}

	property, err := h.properties.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, property)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "propertyId")
	if err != nil {
		response.BadRequest(w, "invalid property id")
		return
	}

	var body domain.UpdatePropertyRequest
	if !decodeAndValidate(w, r, h.validate, &body) {
		return
	}

	property, err := h.properties.Update(r.Context(), id, &body)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, property)
}
