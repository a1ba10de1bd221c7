package httpapi

import (
	"encoding/json"
	"net/http"
)

// writeAck sends the JSON acknowledgment shape {"status":"ok","message":...}.
func writeAck(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": message})
}

// writeErr sends JSON {"status":"error","message":...} with the given code.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"status": "error", "message": message})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
