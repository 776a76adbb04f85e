// Package respond writes the API's response envelope. Every JSON body is
// {"message": ..., "data": ...} with both fields optional.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type envelope struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Data writes a success envelope carrying the payload under data.
func Data(w http.ResponseWriter, status int, data any) {
	write(w, status, envelope{Data: data})
}

// Error writes a failure envelope carrying a human readable message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Message: message})
}

func write(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
