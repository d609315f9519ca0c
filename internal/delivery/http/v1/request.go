package v1

import (
	"io"
	"net/http"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/utils"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 16

// requireSession returns the session resolved by the session middleware.
func requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := domain.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Session required")
		return "", false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}
