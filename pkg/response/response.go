package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	customError "github.com/arriendo/lease-engine/pkg/errors"
)

type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type ErrorResponse struct {
	Success   bool      `json:"success"`
	Code      string    `json:"code,omitempty"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success:   statusCode >= 200 && statusCode < 300,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// Success sends a successful JSON response
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Created sends a created JSON response
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// NoContent sends an empty 204 response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error sends an error JSON response
func Error(w http.ResponseWriter, statusCode int, code, message string) {
	response := ErrorResponse{
		Success:   false,
		Code:      code,
		Error:     message,
		Timestamp: time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// BadRequest sends a 400 bad request response
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, "BAD_REQUEST", message)
}

// FromError maps a service error to its HTTP status by error class:
// NotFound to 404, Conflict to 409, InvalidArgument to 400, anything else
// to 500.
func FromError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, customError.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, customError.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, customError.ErrInvalidArgument):
		status = http.StatusBadRequest
	}

	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		message := businessErr.Message
		if status == http.StatusInternalServerError {
			// Internal details stay out of the payload.
			message = "internal error"
		}
		Error(w, status, businessErr.Code, message)
		return
	}

	Error(w, status, "INTERNAL_ERROR", "internal error")
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(recorder, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recorder.statusCode).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *responseRecorder) WriteHeader(statusCode int) {
	rec.statusCode = statusCode
	rec.ResponseWriter.WriteHeader(statusCode)
}
