package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kasjer/internal/database"
	"kasjer/internal/validation"
)

const (
	codeValidation   = "validation_error"
	codeConflict     = "conflict"
	codeUnauthorized = "unauthorized"
	codeForbidden    = "forbidden"
	codeNotFound     = "not_found"
	codeInternal     = "internal"
	codeUnavailable  = "unavailable"
)

type ErrorResponse struct {
	Error  string            `json:"error" example:"Invalid input"`
	Code   string            `json:"code" example:"validation_error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func writeValidation(w http.ResponseWriter, message string, fields validation.Errors) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:  message,
		Code:   codeValidation,
		Fields: fields,
	})
}

// writeStoreError logs the full cause and answers with a generic message.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Not found")
	case errors.Is(err, database.ErrConflict):
		writeError(w, http.StatusBadRequest, codeConflict, "User already exists")
	case errors.Is(err, database.ErrUnavailable):
		log.Printf("ERROR: %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, codeUnavailable, "Database not available")
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, codeInternal, "Internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// flexAmount accepts an amount sent either as a JSON number or as a string.
type flexAmount string

func (a *flexAmount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = flexAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = flexAmount(n.String())
	return nil
}
