package utils

import (
	"encoding/json"
	"net/http"
)

type Payload struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"` // field -> description
}

// JSONResponse sends a JSON response with given status, success flag, and payload
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ValidationError sends a 400 with per-field descriptions.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSONResponse(w, http.StatusBadRequest, Payload{
		Success: false,
		Message: "Invalid input",
		Errors:  fields,
	})
}
