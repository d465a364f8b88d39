package dto

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims of the signed session cookie.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
