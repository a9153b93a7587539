package api

import (
	"net/http"

	"github.com/phrazzld/shelf-api/internal/api/shared"
)

// Root handles GET /.
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: MessageWelcome})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: MessageHealthy})
}
