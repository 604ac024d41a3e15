package types

import "github.com/google/uuid"

// TokenClaims represents the claims carried by a validated access token.
type TokenClaims struct {
	UserID uuid.UUID
}
