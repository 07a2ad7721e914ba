package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT bearer token issued in exchange for the API key.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// ClientID is the "sub" claim: the name the caller gave when it
	// exchanged the API key.
	ClientID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenRequest is the optional body of a token request.
type TokenRequest struct {
	// ClientID becomes the subject of the issued token.
	ClientID string `json:"client_id,omitempty"`
}
