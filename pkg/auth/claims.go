package auth

import (
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uint64
	Username string
	Role     enums.Role
	// JTI doubles as the session id stored in Redis. Empty generates one.
	JTI string
}

// AccessTokenClaims represents the typed JWT issued to clients. Role is a hint
// for clients only; authorization always reloads the user.
type AccessTokenClaims struct {
	UserID   uint64     `json:"uid"`
	Username string     `json:"username"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}
