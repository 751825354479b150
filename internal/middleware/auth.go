package middleware

import (
	"errors"
	"log"

	"github.com/rehanFauzan/uangbro-api/internal/auth"
	"github.com/rehanFauzan/uangbro-api/internal/models"
	"github.com/rehanFauzan/uangbro-api/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUserKey is where the resolved user lives in the gin context.
const currentUserKey = "currentUser"

// Identify resolves the caller in soft mode: a missing or unknown token
// just leaves the request anonymous. Ledger reads and writes run behind
// this so the app keeps working before login.
func Identify(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c, auth.Soft)
		if err != nil {
			log.Printf("resolve token: %v", err)
			util.Fail(c, util.KindStorage)
			c.Abort()
			return
		}
		if user != nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// RequireAuth resolves the caller in strict mode and rejects the request
// before any handler runs when no identity resolves.
func RequireAuth(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c, auth.Strict)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				util.Fail(c, util.KindUnauthenticated)
			} else {
				log.Printf("resolve token: %v", err)
				util.Fail(c, util.KindStorage)
			}
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the resolved caller, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
