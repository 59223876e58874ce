package api

import (
	"net/http"

	"github.com/ubugingoapp/ubugingo-server/internal/http/response"
)

// healthBody is the health check payload.
type healthBody struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// handleHealthCheck reports server and database health.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	body := healthBody{Status: "healthy", Database: "healthy"}
	status := http.StatusOK

	// A cheap read proves the database is reachable.
	if _, err := s.store.ListBooks(r.Context(), "new"); err != nil {
		body.Status = "unhealthy"
		body.Database = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	response.JSON(w, status, body, s.logger)
}
