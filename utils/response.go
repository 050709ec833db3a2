package utils

import (
	"encoding/json"
	"net/http"

	"github.com/malwarebo/balancegate/models"
)

// WriteJSON encodes v before touching w, so an unencodable value still
// yields a clean 500 instead of a half-written response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, models.ErrorResponse{Error: message})
}
