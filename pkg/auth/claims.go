package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID string
	Name   string
	Email  string
	Admin  bool
}

// AccessTokenClaims represents the typed JWT issued by the hosted auth
// provider. The storefront only reads these; it never signs users in or out.
type AccessTokenClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}
