package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON encodes v as the JSON response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("write JSON response: %w", err)
	}

	return nil
}
