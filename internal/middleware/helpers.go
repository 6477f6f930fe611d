package middleware

import (
	"workhub-service/internal/domain/identity"

	"github.com/gin-gonic/gin"
)

// GetIdentity gets the resolved identity from context.
func GetIdentity(c *gin.Context) (*identity.Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}

	id, ok := val.(*identity.Identity)
	return id, ok
}

// MustGetIdentity gets the resolved identity from context or panics.
func MustGetIdentity(c *gin.Context) *identity.Identity {
	id, ok := GetIdentity(c)
	if !ok {
		panic("identity not found in context")
	}
	return id
}

// IsAuthenticated checks if the request carries a resolved identity.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := GetIdentity(c)
	return ok
}
