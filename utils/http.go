package utils

import (
	"encoding/json"
	"net/http"

	"go-parcel/models"
)

// MaxBodyBytes caps decoded request bodies
const MaxBodyBytes = 1 << 20

// WriteJSON writes v as a JSON body with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {"message": ...} body
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, models.MessageResponse{Message: message})
}

// DecodeJSON decodes the request body into v
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(v)
}
