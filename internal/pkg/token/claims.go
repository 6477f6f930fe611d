package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a session token. The token is self-verifiable, but a
// request is only authenticated when the presented token also matches the
// one stored on the identity row.
type Claims struct {
	IdentityID int64  `json:"identity_id"`
	Email      string `json:"email"`
	RoleID     int64  `json:"role_id"`
	jwt.RegisteredClaims
}
