package server

import (
	"encoding/json"
	"net/http"
)

// HealthResponse is the /health payload
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleHealth handles the /health endpoint. A disabled model is reported but
// is not unhealthy: generation still succeeds with fallback content.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"llm": "enabled"}
	if !s.planner.Enabled() {
		checks["llm"] = "disabled"
	}

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Checks: checks,
	})
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes a JSON error envelope
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"status":  status,
			"message": message,
		},
	})
}
