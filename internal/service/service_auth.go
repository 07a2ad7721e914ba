package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/deep-video-discovery/internal/config"
	"github.com/MKhiriev/deep-video-discovery/internal/logger"
	"github.com/MKhiriev/deep-video-discovery/internal/utils"
	"github.com/MKhiriev/deep-video-discovery/models"
)

// DefaultClientID is the token subject when the caller does not name itself.
const DefaultClientID = "dvd-client"

// authService is the concrete implementation of AuthService.
// Every client shares the single server API key. The key is exchanged for a
// short-lived JWT so that the key itself travels as rarely as possible.
type authService struct {
	// apiKey is the shared secret clients present in X-API-Key.
	apiKey string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		apiKey:        cfg.APIKey,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// CheckAPIKey compares apiKey with the configured key in constant time.
//
// Returns ErrWrongAPIKey when the key is empty or does not match.
func (a *authService) CheckAPIKey(ctx context.Context, apiKey string) error {
	if apiKey == "" || a.apiKey == "" || !utils.EqualSecrets(apiKey, a.apiKey, a.tokenSignKey) {
		logger.FromContext(ctx).Warn().Msg("rejected API key")
		return ErrWrongAPIKey
	}
	return nil
}

// IssueToken checks apiKey and issues a signed JWT whose subject is
// clientID (DefaultClientID when empty).
//
// Returns ErrWrongAPIKey for a bad key or ErrTokenCreationFailed when
// signing fails.
func (a *authService) IssueToken(ctx context.Context, apiKey, clientID string) (models.Token, error) {
	if err := a.CheckAPIKey(ctx, apiKey); err != nil {
		return models.Token{}, err
	}

	if clientID == "" {
		clientID = DefaultClientID
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, clientID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
