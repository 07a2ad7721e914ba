package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/models"
)

const apiKeyHeader = "X-API-Key"

// issueToken exchanges the X-API-Key header for a bearer token. The body is
// optional and may name the client.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, "*Handler.issueToken", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	token, err := h.services.AuthService.IssueToken(r.Context(), r.Header.Get(apiKeyHeader), req.ClientID)
	if err != nil {
		writeError(w, r, "*Handler.issueToken", err)
		return
	}

	log.Info().Str("client_id", token.ClientID).Msg("token issued")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}
