package handler

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes a fixed error payload. Messages here are the only
// failure detail clients ever see.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
