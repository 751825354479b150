// Package auth turns an inbound request into an identity (or no identity).
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rehanFauzan/uangbro-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Mode controls how a missing or unknown credential is treated.
type Mode int

const (
	// Soft degrades to an anonymous caller when no identity resolves.
	// Ledger reads and writes use this: the app works before login.
	Soft Mode = iota
	// Strict rejects the request when no identity resolves.
	Strict
)

// ErrUnauthenticated is returned in Strict mode when the request carries no
// resolvable credential.
var ErrUnauthenticated = errors.New("auth: no resolvable credential")

// Resolver resolves opaque API tokens against the users table.
type Resolver struct {
	DB *gorm.DB
	// AllowQueryToken additionally accepts ?token= as a credential source,
	// for clients that cannot set headers (e.g. download links). Headers
	// are always consulted first.
	AllowQueryToken bool
}

func NewResolver(db *gorm.DB, allowQueryToken bool) *Resolver {
	return &Resolver{DB: db, AllowQueryToken: allowQueryToken}
}

// ExtractToken pulls the credential out of the request without resolving it.
// Order: Authorization header (Bearer prefix or the bare token, which old
// app builds send), then X-API-Token, then optionally ?token=.
func (r *Resolver) ExtractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return strings.TrimSpace(authHeader)
	}

	if token := c.GetHeader("X-API-Token"); token != "" {
		return token
	}

	if r.AllowQueryToken {
		if token := c.Query("token"); token != "" {
			return token
		}
	}

	return ""
}

// Resolve maps the request's credential to a user.
//
// Soft mode never fails: an absent or unknown token yields (nil, nil) and the
// caller proceeds as anonymous. Strict mode returns ErrUnauthenticated
// instead. Resolution is a single read; it mutates nothing.
func (r *Resolver) Resolve(c *gin.Context, mode Mode) (*models.User, error) {
	token := r.ExtractToken(c)
	if token == "" {
		if mode == Strict {
			return nil, ErrUnauthenticated
		}
		return nil, nil
	}

	var user models.User
	err := r.DB.Where("api_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if mode == Strict {
				return nil, ErrUnauthenticated
			}
			return nil, nil
		}
		return nil, fmt.Errorf("lookup token: %w", err)
	}

	return &user, nil
}
