package utils

import (
	"encoding/json"
	"net/http"

	"board-backend/internal/apperr"
)

// JSON writes data as an application/json response.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error maps an apperr kind to its HTTP status and writes the failure
// envelope. Unclassified errors become a generic 500 so internals never
// leak to the caller.
func Error(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch kind {
	case apperr.KindNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	case apperr.KindForbidden:
		status = http.StatusForbidden
		msg = err.Error()
	case apperr.KindConflict:
		status = http.StatusConflict
		msg = err.Error()
	case apperr.KindValidation:
		status = http.StatusBadRequest
		msg = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: msg, Kind: kind.String()})
}
