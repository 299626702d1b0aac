package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorBody is the error envelope shared by every endpoint.
type errorBody struct {
	Message string `json:"message"`
}

// JSON writes a success payload as-is.
func JSON(w http.ResponseWriter, status int, payload any) {
	write(w, status, payload)
}

// Error writes the standard {"message": ...} error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, errorBody{Message: message})
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}
