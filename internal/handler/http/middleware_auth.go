package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/utils"
)

// apiKeyClientID is stored as the client id of requests authenticated by
// the API key itself.
const apiKeyClientID = "api-key"

// auth accepts either "Authorization: Bearer <jwt>" or "X-API-Key". The
// bearer token wins when both are present.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var clientID string
		switch authorization, apiKey := r.Header.Get("Authorization"), r.Header.Get(apiKeyHeader); {
		case authorization != "":
			tokenString, err := utils.ParseBearerToken(authorization)
			if err != nil {
				writeError(w, r, "*Handler.auth", err)
				return
			}
			token, err := h.services.AuthService.ParseToken(ctx, tokenString)
			if err != nil {
				writeError(w, r, "*Handler.auth", err)
				return
			}
			clientID = token.ClientID
		case apiKey != "":
			if err := h.services.AuthService.CheckAPIKey(ctx, apiKey); err != nil {
				writeError(w, r, "*Handler.auth", err)
				return
			}
			clientID = apiKeyClientID
		default:
			writeError(w, r, "*Handler.auth", ErrMissingCredentials)
			return
		}

		l := logger.FromRequest(r).WithField("client_id", clientID)

		ctx = context.WithValue(ctx, utils.ClientIDCtxKey, clientID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}
