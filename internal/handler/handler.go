package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/arriendo/lease-engine/pkg/response"
)

// Calendar dates travel as plain YYYY-MM-DD strings on the wire.
const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

func muxVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// decodeAndValidate unmarshals the request body into dst and runs struct
// validation. Returns false after writing the error response.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		response.BadRequest(w, err.Error())
		return false
	}

	return true
}
