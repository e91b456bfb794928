package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest writes a 400 with a structured error payload
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, Error{Error: msg})
}

// Internal writes a 500 with a structured error payload
func Internal(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, Error{Error: "internal error"})
}
