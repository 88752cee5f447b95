package calc

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Abutment/internal/formula"
)

type ErrorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind,omitempty"`
	Params []string `json:"params,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// Error kinds for failures outside the evaluator.
const (
	KindBadRequest   = "bad_request"
	KindUnauthorized = "unauthorized"
	KindUnavailable  = "unavailable"
	KindInternal     = "internal"
)

// WriteMessage writes a JSON error body that does not come from the evaluator.
func WriteMessage(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}

// WriteError maps evaluator errors to HTTP statuses. Anything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, formula.ErrUnknownFormula):
		status = http.StatusNotFound
	case errors.Is(err, formula.ErrMissingParameter):
		status = http.StatusBadRequest
	case errors.Is(err, formula.ErrInvalidValue), errors.Is(err, formula.ErrUnimplemented):
		status = http.StatusUnprocessableEntity
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("calc: %v", err)
		msg = "Internal error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: formula.Kind(err), Params: formula.ErrorParams(err)})
}
